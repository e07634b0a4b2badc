package invoke

import (
	"errors"
	"fmt"
)

var (
	// ErrModuleLoad is matched by every error returned from a failed Load.
	ErrModuleLoad = errors.New("module load failed")
	// ErrSymbolNotFound is matched by every error returned from a failed Lookup.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrLibraryClosed is returned when a library or one of its symbols is used after Close.
	ErrLibraryClosed = errors.New("library is closed")
	// ErrUnsupportedSignature is returned by Bind when F cannot describe a foreign function.
	ErrUnsupportedSignature = errors.New("unsupported foreign function signature")
)

// PlatformError is the diagnostic reported by the operating system loader.
// Code holds the GetLastError value on Windows. On Unix the loader reports
// text only and Code is zero.
type PlatformError struct {
	Op      string
	Code    uint32
	Message string
}

func (e *PlatformError) Error() string {
	switch {
	case e.Code != 0 && e.Message != "":
		return fmt.Sprintf("%s failed: %d (%s)", e.Op, e.Code, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("%s failed: %d", e.Op, e.Code)
	case e.Message != "":
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	default:
		return fmt.Sprintf("%s failed", e.Op)
	}
}

// ModuleLoadError reports that the library at Path could not be opened.
type ModuleLoadError struct {
	Path string
	Err  error
}

func (e *ModuleLoadError) Error() string {
	return fmt.Sprintf("failed to load library %q: %v", e.Path, e.Err)
}

func (e *ModuleLoadError) Unwrap() []error {
	return []error{ErrModuleLoad, e.Err}
}

// SymbolNotFoundError reports that Library at Path has no export named Name.
type SymbolNotFoundError struct {
	Path string
	Name string
	Err  error
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %q not found in %q: %v", e.Name, e.Path, e.Err)
}

func (e *SymbolNotFoundError) Unwrap() []error {
	return []error{ErrSymbolNotFound, e.Err}
}

// PlatformCode returns the platform diagnostic code carried by err, if any.
func PlatformCode(err error) (uint32, bool) {
	var pe *PlatformError
	if !errors.As(err, &pe) {
		return 0, false
	}
	return pe.Code, true
}

// diagnosticLine is the single console line printed for a failed stage.
func diagnosticLine(err error) string {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	return err.Error()
}
