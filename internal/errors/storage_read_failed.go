package errors

var ErrStorageReadFailed = &Exception{
	Message:  "failed to read task storage",
	ExitCode: 6,
}
