package zip4go

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// bufSize is the fixed capacity used for string-returning ABI calls. Native
// strings (entry names, comments, error messages) are capped well below this
// by the library itself.
const bufSize = 1024

// cString marshals s into a NUL-terminated buffer for the ABI. Strings with
// interior NUL bytes cannot be represented and report ErrConversion.
func cString(s string) (*byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, conversionError("interior NUL byte")
	}

	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0], nil
}

// cStringOrNil marshals s like cString but maps the empty string to a NULL
// pointer, which the ABI reads as "not provided".
func cStringOrNil(s string) (*byte, error) {
	if s == "" {
		return nil, nil
	}
	return cString(s)
}

// bufString decodes the n bytes the native side wrote into buf. A
// non-positive n decodes to the empty string; a stray terminator inside the
// reported length ends the string early.
func bufString(buf []byte, n int32) (string, error) {
	if n <= 0 {
		return "", nil
	}

	if int64(n) < int64(len(buf)) {
		buf = buf[:n]
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}

	if !utf8.Valid(buf) {
		return "", conversionError("invalid UTF-8 from native library")
	}
	return string(buf), nil
}
