package zip4go

import (
	"fmt"

	"github.com/Ran-Mewo/zip4go/internal/ffi"
)

// Code identifies the kind of failure reported by the native library.
// Negative values are the library's own status codes; values below the ABI
// range are produced by this wrapper.
type Code int32

const (
	CodeInvalidHandle    = Code(ffi.CodeInvalidHandle)
	CodeFileNotFound     = Code(ffi.CodeFileNotFound)
	CodeZip              = Code(ffi.CodeZipException)
	CodeIO               = Code(ffi.CodeIOException)
	CodeInvalidParameter = Code(ffi.CodeInvalidParameter)
	CodeOutOfMemory      = Code(ffi.CodeOutOfMemory)
	CodeEntryNotFound    = Code(ffi.CodeEntryNotFound)
	CodeBufferTooSmall   = Code(ffi.CodeBufferTooSmall)
	CodeCancelled        = Code(ffi.CodeOperationCancelled)
	CodeUnsupported      = Code(ffi.CodeUnsupportedOperation)
	CodeNullPointer      = Code(ffi.CodeNullPointer)
	CodePermissionDenied = Code(ffi.CodePermissionDenied)
	CodeDiskFull         = Code(ffi.CodeDiskFull)

	// Wrapper-side codes, outside the ABI range.
	CodeConversion     Code = -100
	CodeNotInitialized Code = -101
)

// Error is the error type returned by every operation in this package. Two
// Errors match under [errors.Is] when their codes are equal, so callers can
// compare against the exported sentinels.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors, one per failure kind the native library reports plus the
// wrapper's own conversion and initialization failures.
var (
	ErrInvalidHandle    = &Error{Code: CodeInvalidHandle, Message: "invalid handle"}
	ErrFileNotFound     = &Error{Code: CodeFileNotFound, Message: "file not found"}
	ErrZip              = &Error{Code: CodeZip, Message: "zip operation failed"}
	ErrIO               = &Error{Code: CodeIO, Message: "i/o operation failed"}
	ErrInvalidParameter = &Error{Code: CodeInvalidParameter, Message: "invalid parameter"}
	ErrOutOfMemory      = &Error{Code: CodeOutOfMemory, Message: "out of memory"}
	ErrEntryNotFound    = &Error{Code: CodeEntryNotFound, Message: "entry not found in archive"}
	ErrBufferTooSmall   = &Error{Code: CodeBufferTooSmall, Message: "buffer too small"}
	ErrCancelled        = &Error{Code: CodeCancelled, Message: "operation was cancelled"}
	ErrUnsupported      = &Error{Code: CodeUnsupported, Message: "unsupported operation"}
	ErrNullPointer      = &Error{Code: CodeNullPointer, Message: "null pointer"}
	ErrPermissionDenied = &Error{Code: CodePermissionDenied, Message: "permission denied"}
	ErrDiskFull         = &Error{Code: CodeDiskFull, Message: "disk full"}
	ErrConversion       = &Error{Code: CodeConversion, Message: "string conversion failed"}
	ErrNotInitialized   = &Error{Code: CodeNotInitialized, Message: "library not initialized"}
)

// fromCode maps a native status code to its sentinel. Codes outside the
// declared set are never dropped: they map to an Error carrying the raw code.
func fromCode(code int32) error {
	switch code {
	case ffi.CodeInvalidHandle:
		return ErrInvalidHandle
	case ffi.CodeFileNotFound:
		return ErrFileNotFound
	case ffi.CodeZipException:
		return ErrZip
	case ffi.CodeIOException:
		return ErrIO
	case ffi.CodeInvalidParameter:
		return ErrInvalidParameter
	case ffi.CodeOutOfMemory:
		return ErrOutOfMemory
	case ffi.CodeEntryNotFound:
		return ErrEntryNotFound
	case ffi.CodeBufferTooSmall:
		return ErrBufferTooSmall
	case ffi.CodeOperationCancelled:
		return ErrCancelled
	case ffi.CodeUnsupportedOperation:
		return ErrUnsupported
	case ffi.CodeNullPointer:
		return ErrNullPointer
	case ffi.CodePermissionDenied:
		return ErrPermissionDenied
	case ffi.CodeDiskFull:
		return ErrDiskFull
	default:
		return &Error{Code: Code(code), Message: fmt.Sprintf("unknown error (code %d)", code)}
	}
}

// conversionError wraps a marshaling failure with the conversion code.
func conversionError(msg string) error {
	return &Error{Code: CodeConversion, Message: "string conversion failed: " + msg}
}
