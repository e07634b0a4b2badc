//go:build windows

package invoke

import (
	"errors"
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	loadOp   = "LoadLibrary"
	lookupOp = "GetProcAddress"
)

func loadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, newPlatformError(loadOp, err)
	}
	if handle == 0 {
		return 0, &PlatformError{Op: loadOp, Message: "returned a null handle"}
	}
	return uintptr(handle), nil
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	proc, err := windows.GetProcAddress(windows.Handle(handle), symbol)
	if err != nil {
		return 0, newPlatformError(lookupOp, err)
	}
	return proc, nil
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}

// newPlatformError keeps the GetLastError value so it can be reported as-is.
func newPlatformError(op string, err error) *PlatformError {
	pe := &PlatformError{Op: op, Message: err.Error()}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		pe.Code = uint32(errno)
	}
	return pe
}
