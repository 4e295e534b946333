//go:build bundled

package libload

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// The bundled artifacts live under libs/<platform-key>/<library-name>; see
// libs/README.md for the expected layout. The build producing a bundled
// binary must place the artifacts there first.
//
//go:embed all:libs
var embeddedLibs embed.FS

var (
	extractOnce sync.Once
	extractPath string
	extractErr  error
)

// bundledLibraryPath extracts the embedded shared library for the running
// platform and returns the extracted file's path. Extraction happens at most
// once per process: first into the executable's own directory, falling back
// to a temp directory whose path is prepended to the dynamic loader's search
// variable so transitive loads still resolve.
func bundledLibraryPath() (string, error) {
	extractOnce.Do(func() {
		extractPath, extractErr = extract()
	})
	return extractPath, extractErr
}

func extract() (string, error) {
	name := LibraryName()

	key := PlatformKey()
	data, err := fs.ReadFile(embeddedLibs, "libs/"+key+"/"+name)
	if err != nil {
		if fallback := GlibcFallbackKey(key); fallback != "" {
			data, err = fs.ReadFile(embeddedLibs, "libs/"+fallback+"/"+name)
		}
		if err != nil {
			return "", fmt.Errorf("no bundled library for platform %s: %w", key, err)
		}
	}

	// Prefer the executable's directory: the loader finds the file without
	// any environment changes and the copy persists across runs.
	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), name)
		if err = os.WriteFile(p, data, 0o755); err == nil {
			return p, nil
		}
	}

	dir, err := os.MkdirTemp("", "zip4go-")
	if err != nil {
		return "", err
	}

	p := filepath.Join(dir, name)
	if err = os.WriteFile(p, data, 0o755); err != nil {
		return "", err
	}

	prependSearchPath(dir)
	return p, nil
}

// prependSearchPath puts dir in front of the platform's dynamic loader search
// variable so the extracted library stays discoverable.
func prependSearchPath(dir string) {
	var env string
	switch runtime.GOOS {
	case "windows":
		env = "PATH"
	case "darwin":
		env = "DYLD_LIBRARY_PATH"
	default:
		env = "LD_LIBRARY_PATH"
	}

	v := os.Getenv(env)
	if v == "" {
		v = dir
	} else {
		v = dir + string(os.PathListSeparator) + v
	}
	_ = os.Setenv(env, v)
}
