package invoke

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"github.com/ebitengine/purego"
)

// VoidFunc is the signature of an export that takes no arguments and
// returns nothing.
type VoidFunc = func()

var errUnresolvedSymbol = errors.New("symbol is not resolved")

// Bind interprets sym as a foreign function of type F. The loader cannot
// verify the signature of an export, so F is an assertion made by the
// caller. A wrong F is undefined behavior, not an error.
//
// The returned function must not be called after the owning library is
// closed. Use Symbol.Invoke for calls that are checked against Close.
func Bind[F any](sym Symbol) (F, error) {
	var zero F
	if sym.lib == nil {
		return zero, errUnresolvedSymbol
	}

	sym.lib.mu.RLock()
	defer sym.lib.mu.RUnlock()

	if err := sym.checkLocked(); err != nil {
		return zero, err
	}
	return bind[F](sym.name, sym.addr)
}

func bind[F any](name string, addr uintptr) (fn F, err error) {
	if t := reflect.TypeOf((*F)(nil)).Elem(); t.Kind() != reflect.Func {
		return fn, fmt.Errorf("%w: %s is not a function type", ErrUnsupportedSignature, t)
	}

	// RegisterFunc panics on argument or result kinds it cannot marshal.
	defer func() {
		if r := recover(); r != nil {
			var zero F
			fn = zero
			err = fmt.Errorf("%w: symbol %q as %s: %v", ErrUnsupportedSignature, name, reflect.TypeOf((*F)(nil)).Elem(), r)
		}
	}()

	purego.RegisterFunc(&fn, addr)
	return fn, nil
}

// Invoke calls the symbol as a VoidFunc on the calling OS thread and returns
// once the call does. Close blocks until Invoke has returned.
//
// The returned error only reports misuse (a closed library or an unresolved
// symbol). Failures inside the called function are not observable here.
func (s Symbol) Invoke() error {
	if s.lib == nil {
		return errUnresolvedSymbol
	}

	s.lib.mu.RLock()
	defer s.lib.mu.RUnlock()

	if err := s.checkLocked(); err != nil {
		return err
	}

	fn, err := bind[VoidFunc](s.name, s.addr)
	if err != nil {
		return err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	fn()
	return nil
}
