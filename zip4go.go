// Package zip4go exposes the zip4j native library (a GraalVM Native Image of
// the zip4j Java ZIP library) through a memory-safe Go API.
//
// All ZIP format logic, compression and encryption run inside the opaque
// shared library; this package loads it at runtime, marshals values across
// its C ABI and wraps the raw archive and entry handles in objects with
// explicit lifetimes. Every handle must be released exactly once, via
// [Archive.Close] and [Entry.Release]; both are safe to call more than once.
//
// A single process-wide GraalVM isolate executes all native calls. [Init]
// creates it idempotently and is called automatically by the archive
// constructors; the package performs no serialization beyond that, so access
// to archives must be serialized by the caller.
package zip4go

import (
	"errors"

	"github.com/Ran-Mewo/zip4go/internal/ffi"
)

// Init loads the native library and creates the process-wide isolate. It is
// safe to call multiple times; only the first call does any work and its
// outcome is returned ever after. The archive constructors call Init
// themselves, so calling it explicitly is only useful to surface load errors
// early. Once [Cleanup] has run, Init and the constructors report
// ErrNotInitialized; the isolate is never recreated.
func Init() error {
	if err := ffi.Init(); err != nil {
		if errors.Is(err, ffi.ErrClosed) {
			return ErrNotInitialized
		}
		var ce *ffi.CodeError
		if errors.As(err, &ce) {
			return fromCode(ce.Code)
		}
		return err
	}
	return nil
}

// Cleanup shuts the native library down and tears down the isolate,
// typically at application shutdown. Safe to call multiple times. No archive
// or entry may be used afterwards.
func Cleanup() error {
	if err := ffi.Cleanup(); err != nil {
		var ce *ffi.CodeError
		if errors.As(err, &ce) {
			return fromCode(ce.Code)
		}
		return err
	}
	return nil
}

// IsInitialized reports whether the native library is loaded and the isolate
// is up.
func IsInitialized() bool {
	return ffi.Initialized()
}

// lastError fetches the native library's message for the most recent failure
// on handle, or "" when no detail is available. This path never errors.
func lastError(handle int64) string {
	buf := make([]byte, bufSize)
	var n int32

	if rc := ffi.Funcs().GetLastError(ffi.Thread(), handle, &buf[0], bufSize, &n); rc < 0 {
		return ""
	}

	s, err := bufString(buf, n)
	if err != nil {
		return ""
	}
	return s
}
