package errors

var ErrInvalidInput = &Exception{
	Message:  "invalid input",
	ExitCode: 2,
}
