package invoke

import (
	"runtime"
	"testing"

	"github.com/ebitengine/purego"
)

// fakeLoader stands in for the OS loader and records every call made to it.
type fakeLoader struct {
	libraries map[string]map[string]uintptr
	handles   map[uintptr]string
	next      uintptr
	closeErr  error

	opened  []string
	lookups []string
	closed  []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		libraries: make(map[string]map[string]uintptr),
		handles:   make(map[uintptr]string),
	}
}

func (f *fakeLoader) add(path string, exports map[string]uintptr) {
	f.libraries[path] = exports
}

func (f *fakeLoader) platform() platformLoader {
	return platformLoader{
		open: func(path string) (uintptr, error) {
			f.opened = append(f.opened, path)
			if _, ok := f.libraries[path]; !ok {
				return 0, &PlatformError{Op: loadOp, Code: 126, Message: path + ": cannot open shared object file"}
			}
			f.next++
			f.handles[f.next] = path
			return f.next, nil
		},
		lookup: func(handle uintptr, name string) (uintptr, error) {
			f.lookups = append(f.lookups, name)
			addr, ok := f.libraries[f.handles[handle]][name]
			if !ok {
				return 0, &PlatformError{Op: lookupOp, Code: 127, Message: "undefined symbol: " + name}
			}
			return addr, nil
		},
		close: func(handle uintptr) error {
			f.closed = append(f.closed, f.handles[handle])
			delete(f.handles, handle)
			return f.closeErr
		},
	}
}

// newTestCallback returns a native function pointer that calls fn.
func newTestCallback(t *testing.T, fn func() uintptr) uintptr {
	t.Helper()

	switch runtime.GOOS + "/" + runtime.GOARCH {
	case "darwin/amd64", "darwin/arm64", "linux/amd64", "linux/arm64", "windows/amd64", "windows/arm64":
	default:
		t.Skipf("native callbacks are not supported on %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	return purego.NewCallback(fn)
}

// systemLibrary returns a library that is always present on the host and a
// zero-argument export it provides.
func systemLibrary(t *testing.T) (string, string) {
	t.Helper()

	switch runtime.GOOS {
	case "linux":
		return "libc.so.6", "getpid"
	case "darwin":
		return "/usr/lib/libSystem.B.dylib", "getpid"
	case "windows":
		return "kernel32.dll", "GetCurrentProcessId"
	default:
		t.Skipf("no known system library on %s", runtime.GOOS)
		return "", ""
	}
}

func loadSystemLibrary(t *testing.T) (*Library, string) {
	t.Helper()

	path, symbol := systemLibrary(t)
	lib, err := Load(path)
	if err != nil {
		t.Skipf("system library %q is not loadable here: %v", path, err)
	}
	t.Cleanup(func() {
		if err := lib.Close(); err != nil {
			t.Errorf("failed to close %q: %v", path, err)
		}
	})
	return lib, symbol
}
