// Package libload locates and loads the prebuilt zip4j-abi shared library.
//
// The library is produced by an external pipeline as one artifact per
// platform; this package only finds a usable copy and hands its dlopen handle
// to the caller. With the "bundled" build tag the artifact is embedded in the
// binary and extracted to disk on first use.
package libload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// errNotBundled is reported by bundledLibraryPath in builds without the
// "bundled" tag.
var errNotBundled = errors.New("binary was not built with the bundled tag")

// EnvLibrary names the environment variable that, when set, must point at the
// shared library file to load. It takes priority over every other location.
const EnvLibrary = "ZIP4GO_LIBRARY"

// LibraryName returns the platform's file name for the zip4j-abi shared
// library.
func LibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "zip4j-abi.dll"
	case "darwin":
		return "libzip4j-abi.dylib"
	default:
		return "libzip4j-abi.so"
	}
}

// PlatformKey returns the upstream artifact directory key for the running
// platform, e.g. "linux-x86_64-musl" or "darwin-aarch64".
func PlatformKey() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}

	key := runtime.GOOS + "-" + arch
	if runtime.GOOS == "linux" && isMusl() {
		key += "-musl"
	}
	return key
}

// GlibcFallbackKey returns the glibc artifact key a musl key falls back to,
// or "" if key has no fallback.
func GlibcFallbackKey(key string) string {
	if n := len(key) - len("-musl"); n > 0 && key[n:] == "-musl" {
		return key[:n]
	}
	return ""
}

// isMusl reports whether the running linux system uses musl as its libc. The
// musl dynamic loader lives at a fixed, arch-suffixed path.
func isMusl() bool {
	matches, _ := filepath.Glob("/lib/ld-musl-*.so.1")
	return len(matches) > 0
}

// Locate returns a loadable path (or bare soname) for the shared library.
//
// Resolution order: the EnvLibrary environment variable, the bundled artifact
// (when built with the "bundled" tag), the running executable's directory, the
// working directory, and finally the bare library name so the system dynamic
// loader searches its own paths.
func Locate() (string, error) {
	if p := os.Getenv(EnvLibrary); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s is set but not usable: %w", EnvLibrary, err)
		}
		return p, nil
	}

	if p, err := bundledLibraryPath(); err == nil {
		return p, nil
	} else if !errors.Is(err, errNotBundled) {
		return "", fmt.Errorf("extract bundled library: %w", err)
	}

	name := LibraryName()

	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), name)
		if _, err = os.Stat(p); err == nil {
			return p, nil
		}
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Leave it to the system search path.
	return name, nil
}
