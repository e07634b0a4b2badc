package invoke

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

const (
	// EnvLibraryPath overrides the default library path.
	EnvLibraryPath = "PURE_INVOKE_LIB_PATH"
	// EnvSymbolName overrides the default export name.
	EnvSymbolName = "PURE_INVOKE_SYMBOL"

	defaultBeforeMarker = "before"
	defaultAfterMarker  = "after"
)

// RunOption configures Run.
type RunOption func(*runConfig) error

type runConfig struct {
	libraryPath string
	symbolName  string
	stdout      io.Writer
	before      string
	after       string
	loader      platformLoader
}

// WithLibraryPath sets the shared library to load. It takes precedence over
// PURE_INVOKE_LIB_PATH.
func WithLibraryPath(path string) RunOption {
	return func(cfg *runConfig) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("library path cannot be empty")
		}
		cfg.libraryPath = path
		return nil
	}
}

// WithSymbolName sets the export to call. The name is used exactly as given.
// It takes precedence over PURE_INVOKE_SYMBOL.
func WithSymbolName(name string) RunOption {
	return func(cfg *runConfig) error {
		if name == "" {
			return fmt.Errorf("symbol name cannot be empty")
		}
		cfg.symbolName = name
		return nil
	}
}

// WithOutput sets where status and diagnostic lines are written.
// The default is os.Stdout.
func WithOutput(w io.Writer) RunOption {
	return func(cfg *runConfig) error {
		if w == nil {
			return fmt.Errorf("output writer cannot be nil")
		}
		cfg.stdout = w
		return nil
	}
}

// WithMarkers replaces the lines printed immediately before and after the call.
func WithMarkers(before, after string) RunOption {
	return func(cfg *runConfig) error {
		cfg.before = before
		cfg.after = after
		return nil
	}
}

func withLoader(loader platformLoader) RunOption {
	return func(cfg *runConfig) error {
		if loader.open == nil || loader.lookup == nil || loader.close == nil {
			return fmt.Errorf("loader is incomplete")
		}
		cfg.loader = loader
		return nil
	}
}

// Run loads the configured library, resolves the configured export and calls
// it as a VoidFunc, printing a marker line before and after the call.
//
// A load or lookup failure prints a single diagnostic line with the platform
// error and stops the run. The library is closed before Run returns whenever
// it was loaded.
func Run(opts ...RunOption) Outcome {
	cfg, err := resolveRunConfig(opts...)
	if err != nil {
		return Outcome{State: StateUnloaded, Err: err}
	}
	return cfg.run()
}

func (cfg runConfig) run() Outcome {
	lib, err := cfg.loader.load(cfg.libraryPath)
	if err != nil {
		return cfg.fail(StageLoad, err)
	}
	defer func() {
		if closeErr := lib.Close(); closeErr != nil {
			log.Printf("WARNING: %v", closeErr)
		}
	}()

	sym, err := lib.Lookup(cfg.symbolName)
	if err != nil {
		return cfg.fail(StageResolve, err)
	}

	fmt.Fprintln(cfg.stdout, cfg.before)
	if err := sym.Invoke(); err != nil {
		return Outcome{State: StateResolved, Err: err}
	}
	fmt.Fprintln(cfg.stdout, cfg.after)

	return Outcome{State: StateInvoked}
}

func (cfg runConfig) fail(stage Stage, err error) Outcome {
	fmt.Fprintln(cfg.stdout, diagnosticLine(err))
	return Outcome{State: StateFailed, Stage: stage, Err: err}
}

func resolveRunConfig(opts ...RunOption) (runConfig, error) {
	cfg := runConfig{
		libraryPath: strings.TrimSpace(os.Getenv(EnvLibraryPath)),
		symbolName:  os.Getenv(EnvSymbolName),
		stdout:      os.Stdout,
		before:      defaultBeforeMarker,
		after:       defaultAfterMarker,
		loader:      systemLoader,
	}

	if cfg.libraryPath == "" {
		cfg.libraryPath = DefaultLibraryPath()
	}
	if cfg.symbolName == "" {
		cfg.symbolName = DefaultSymbolName
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return runConfig{}, err
		}
	}

	return cfg, nil
}
