//go:build !windows

package invoke

import (
	"github.com/ebitengine/purego"
)

const (
	loadOp   = "dlopen"
	lookupOp = "dlsym"
)

func loadLibrary(path string) (uintptr, error) {
	libHandle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, newPlatformError(loadOp, err)
	}
	if libHandle == 0 {
		return 0, &PlatformError{Op: loadOp, Message: "returned a nil handle"}
	}
	return libHandle, nil
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	addr, err := purego.Dlsym(handle, symbol)
	if err != nil {
		return 0, newPlatformError(lookupOp, err)
	}
	return addr, nil
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

// dlerror(3) reports text only, so Code stays zero on Unix.
func newPlatformError(op string, err error) *PlatformError {
	return &PlatformError{Op: op, Message: err.Error()}
}
