//go:build !windows

package libload

import "github.com/ebitengine/purego"

// Open loads the shared library at path (or by soname through the system
// search path) and returns its handle.
func Open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
