// Package invoke loads a shared library at runtime, resolves an exported
// function by name and calls it, without linking against the library at
// build time and without cgo.
//
// The sequence is always Load, Lookup, then Invoke (or Bind). A Library is a
// scoped resource: callers must Close it, and every Symbol obtained from it
// becomes unusable once it is closed.
package invoke

import (
	"fmt"
	"sync"
)

// platformLoader is the set of OS primitives a Library is built on.
type platformLoader struct {
	open   func(path string) (uintptr, error)
	lookup func(handle uintptr, name string) (uintptr, error)
	close  func(handle uintptr) error
}

var systemLoader = platformLoader{
	open:   loadLibrary,
	lookup: getSymbol,
	close:  closeLibrary,
}

// Library is an open shared library owned by the caller.
type Library struct {
	mu     sync.RWMutex
	path   string
	handle uintptr
	sys    platformLoader
}

// Load opens the shared library at path. The path is handed to the platform
// loader unchanged, so relative paths follow the loader's own rules and the
// process working directory.
//
// On failure the returned error is a *ModuleLoadError.
func Load(path string) (*Library, error) {
	return systemLoader.load(path)
}

func (p platformLoader) load(path string) (*Library, error) {
	if path == "" {
		return nil, &ModuleLoadError{Path: path, Err: fmt.Errorf("library path is empty")}
	}

	handle, err := p.open(path)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Err: err}
	}
	if handle == 0 {
		return nil, &ModuleLoadError{Path: path, Err: &PlatformError{Op: loadOp, Message: "returned a nil handle"}}
	}

	return &Library{path: path, handle: handle, sys: p}, nil
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// IsOpen returns true until Close has been called.
func (l *Library) IsOpen() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.handle != 0
}

// Lookup resolves the export with exactly the given name. Matching is
// case-sensitive and there is no fallback.
//
// On failure the returned error is a *SymbolNotFoundError, or ErrLibraryClosed
// if the library has already been closed.
func (l *Library) Lookup(name string) (Symbol, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.handle == 0 {
		return Symbol{}, fmt.Errorf("lookup %q in %q: %w", name, l.path, ErrLibraryClosed)
	}
	if name == "" {
		return Symbol{}, &SymbolNotFoundError{Path: l.path, Name: name, Err: fmt.Errorf("symbol name is empty")}
	}

	addr, err := l.sys.lookup(l.handle, name)
	if err != nil {
		return Symbol{}, &SymbolNotFoundError{Path: l.path, Name: name, Err: err}
	}
	if addr == 0 {
		return Symbol{}, &SymbolNotFoundError{Path: l.path, Name: name, Err: &PlatformError{Op: lookupOp, Message: "resolved to a nil address"}}
	}

	return Symbol{lib: l, name: name, addr: addr}, nil
}

// Close unloads the library. It waits for in-flight invocations to return
// and is safe to call more than once.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return nil
	}

	handle := l.handle
	l.handle = 0
	if err := l.sys.close(handle); err != nil {
		return fmt.Errorf("failed to close library %q: %w", l.path, err)
	}
	return nil
}

// Symbol is the resolved address of an export. It is only valid while the
// Library it came from is open.
type Symbol struct {
	lib  *Library
	name string
	addr uintptr
}

// Name returns the export name the symbol was resolved with.
func (s Symbol) Name() string {
	return s.name
}

// Addr returns the raw address of the export.
func (s Symbol) Addr() uintptr {
	return s.addr
}

// Library returns the library that owns the symbol.
func (s Symbol) Library() *Library {
	return s.lib
}

// checkLocked must be called with s.lib.mu held for reading.
func (s Symbol) checkLocked() error {
	if s.lib.handle == 0 {
		return fmt.Errorf("symbol %q: %w", s.name, ErrLibraryClosed)
	}
	return nil
}
