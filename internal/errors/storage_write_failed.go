package errors

var ErrStorageWriteFailed = &Exception{
	Message:  "failed to write task storage",
	ExitCode: 5,
}
