package invoke

import (
	"errors"
	"testing"
)

func TestSymbolInvokeCallsExportOnce(t *testing.T) {
	calls := 0
	addr := newTestCallback(t, func() uintptr {
		calls++
		return 0
	})

	loader := newFakeLoader()
	loader.add("libping.so", map[string]uintptr{"ping": addr})

	lib, err := loader.platform().load("libping.so")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer lib.Close()

	sym, err := lib.Lookup("ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sym.Invoke(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestBindTypedSignature(t *testing.T) {
	addr := newTestCallback(t, func() uintptr {
		return 42
	})

	loader := newFakeLoader()
	loader.add("libanswer.so", map[string]uintptr{"answer": addr})

	lib, err := loader.platform().load("libanswer.so")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer lib.Close()

	sym, err := lib.Lookup("answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answer, err := Bind[func() uintptr](sym)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := answer(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestBindSystemExport(t *testing.T) {
	lib, symbol := loadSystemLibrary(t)

	sym, err := lib.Lookup(symbol)
	if err != nil {
		t.Fatalf("failed to resolve %q: %v", symbol, err)
	}

	// getpid and GetCurrentProcessId both take no arguments.
	pid, err := Bind[func() int32](sym)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pid(); got <= 0 {
		t.Errorf("expected a positive process id, got %d", got)
	}
}

func TestBindRejectsUnsupportedSignatures(t *testing.T) {
	loader := newFakeLoader()
	loader.add("libping.so", map[string]uintptr{"ping": 1})

	lib, err := loader.platform().load("libping.so")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer lib.Close()

	sym, err := lib.Lookup("ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("not a function", func(t *testing.T) {
		if _, err := Bind[int](sym); !errors.Is(err, ErrUnsupportedSignature) {
			t.Fatalf("expected ErrUnsupportedSignature, got %v", err)
		}
	})

	t.Run("multiple results", func(t *testing.T) {
		fn, err := Bind[func() (int32, int32)](sym)
		if !errors.Is(err, ErrUnsupportedSignature) {
			t.Fatalf("expected ErrUnsupportedSignature, got %v", err)
		}
		if fn != nil {
			t.Error("expected a nil function on failure")
		}
	})
}

func TestUnresolvedSymbol(t *testing.T) {
	var sym Symbol

	if err := sym.Invoke(); err == nil {
		t.Error("expected Invoke on a zero Symbol to fail")
	}
	if _, err := Bind[VoidFunc](sym); err == nil {
		t.Error("expected Bind on a zero Symbol to fail")
	}
}
