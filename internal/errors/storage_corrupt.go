package errors

var ErrStorageCorrupt = &Exception{
	Message:  "task storage is corrupt",
	ExitCode: 4,
}
