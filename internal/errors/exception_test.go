package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestWrap_KeepsSentinelAndCause(t *testing.T) {
	err := Wrap(ErrStorageWriteFailed, fs.ErrPermission)

	if !errors.Is(err, ErrStorageWriteFailed) {
		t.Fatalf("errors.Is(%v, ErrStorageWriteFailed)=false, want true", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("errors.Is(%v, fs.ErrPermission)=false, want true", err)
	}
	if errors.Is(err, ErrStorageCorrupt) {
		t.Fatalf("errors.Is(%v, ErrStorageCorrupt)=true, want false", err)
	}
}

func TestWrap_NilCause(t *testing.T) {
	if err := Wrap(ErrInvalidInput, nil); err != ErrInvalidInput {
		t.Fatalf("Wrap(nil)=%v, want sentinel", err)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{ErrInvalidInput, 2},
		{fmt.Errorf("%w: id 4", ErrTaskNotFound), 3},
		{Wrap(ErrStorageCorrupt, errors.New("bad json")), 4},
		{ErrStorageWriteFailed, 5},
		{ErrStorageReadFailed, 6},
		{errors.New("boom"), 1},
	}

	for _, tc := range cases {
		if got := ExitCode(tc.err); got != tc.want {
			t.Errorf("ExitCode(%v)=%d, want %d", tc.err, got, tc.want)
		}
	}
}
