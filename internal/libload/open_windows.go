//go:build windows

package libload

import "golang.org/x/sys/windows"

// Open loads the shared library at path (or by name through the system search
// path) and returns its handle.
func Open(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	return uintptr(h), err
}
