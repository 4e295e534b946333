package zip4go

import (
	"io"

	"github.com/Ran-Mewo/zip4go/internal/ffi"
)

// OpenEntry opens the given entry for streaming reads, decompressing (and
// decrypting) on the fly inside the native library. The returned reader must
// be closed; closing releases the native stream handle exactly once.
//
// The reader shares the archive's handle and the process-wide isolate, so it
// follows the same serialization rules as every other operation.
func (a *Archive) OpenEntry(entry *Entry) (io.ReadCloser, error) {
	if a.closed {
		return nil, ErrInvalidHandle
	}
	if entry.released {
		return nil, ErrInvalidHandle
	}

	var stream int64
	if rc := ffi.Funcs().CreateInputStream(ffi.Thread(), a.handle, entry.handle, &stream); rc < 0 {
		return nil, a.opErr(rc)
	}

	return &entryReader{stream: stream}, nil
}

type entryReader struct {
	stream int64
	closed bool
}

// Read fills p straight from the native stream. A zero-length native read
// signals end of stream.
func (r *entryReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, ErrInvalidHandle
	}
	if len(p) == 0 {
		return 0, nil
	}

	var n int32
	if rc := ffi.Funcs().StreamRead(ffi.Thread(), r.stream, &p[0], int32(len(p)), &n); rc < 0 {
		return 0, fromCode(rc)
	}

	if n <= 0 {
		return 0, io.EOF
	}
	return int(n), nil
}

// Close releases the native stream handle. The first call releases; any
// further calls are no-ops returning nil.
func (r *entryReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if rc := ffi.Funcs().CloseInputStream(ffi.Thread(), r.stream); rc < 0 {
		return fromCode(rc)
	}
	return nil
}
