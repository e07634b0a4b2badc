package invoke

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

const (
	// DefaultSymbolName is the export called when no symbol is configured.
	DefaultSymbolName = "cast128_generate_key"

	defaultLibraryName = "crypto"
	defaultLibraryDir  = "../target/debug"
)

// LibraryFileName returns the platform file name of a shared library called
// name, for example libcrypto.so, libcrypto.dylib or crypto.dll.
func LibraryFileName(goos, name string) string {
	switch goos {
	case "windows":
		return fmt.Sprintf("%s.dll", name)
	case "darwin", "ios":
		return fmt.Sprintf("lib%s.dylib", name)
	default:
		return fmt.Sprintf("lib%s.so", name)
	}
}

// DefaultLibraryPath returns the library path used when none is configured.
// It is relative to the working directory.
func DefaultLibraryPath() string {
	return defaultLibraryPathFor(runtime.GOOS)
}

func defaultLibraryPathFor(goos string) string {
	p := path.Join(defaultLibraryDir, LibraryFileName(goos, defaultLibraryName))
	if goos == "windows" {
		// LoadLibrary expects backslashes.
		return strings.ReplaceAll(p, "/", `\`)
	}
	return p
}
