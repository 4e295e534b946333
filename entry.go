package zip4go

import "github.com/Ran-Mewo/zip4go/internal/ffi"

// Entry is a single file or directory within an archive, backed by a handle
// owned by the native library. The handle stays valid until Release; using an
// Entry after Release reports ErrInvalidHandle without touching the native
// side.
type Entry struct {
	handle   int64
	released bool
}

// newEntry wraps a native entry handle. The native side never hands out a
// zero handle for a live entry.
func newEntry(handle int64) (*Entry, error) {
	if handle == 0 {
		return nil, ErrInvalidHandle
	}
	return &Entry{handle: handle}, nil
}

// Release frees the native entry handle. The first call releases; any
// further calls are no-ops returning nil.
func (e *Entry) Release() error {
	if e.released {
		return nil
	}
	e.released = true

	if rc := ffi.Funcs().ReleaseEntry(ffi.Thread(), e.handle); rc < 0 {
		return fromCode(rc)
	}
	return nil
}

// Name returns the entry name, i.e. its full path within the archive.
func (e *Entry) Name() (string, error) {
	if e.released {
		return "", ErrInvalidHandle
	}

	buf := make([]byte, bufSize)
	var n int32
	if rc := ffi.Funcs().EntryGetName(ffi.Thread(), e.handle, &buf[0], bufSize, &n); rc < 0 {
		return "", fromCode(rc)
	}

	return bufString(buf, n)
}

// Size returns the uncompressed size in bytes.
func (e *Entry) Size() (int64, error) {
	return e.int64Query(ffi.Funcs().EntryGetSize)
}

// CompressedSize returns the compressed size in bytes.
func (e *Entry) CompressedSize() (int64, error) {
	return e.int64Query(ffi.Funcs().EntryGetCompressedSize)
}

// IsDirectory reports whether the entry is a directory.
func (e *Entry) IsDirectory() (bool, error) {
	return e.boolQuery(ffi.Funcs().EntryIsDirectory)
}

// IsEncrypted reports whether the entry is encrypted.
func (e *Entry) IsEncrypted() (bool, error) {
	return e.boolQuery(ffi.Funcs().EntryIsEncrypted)
}

// CRC32 returns the entry's CRC-32 checksum.
func (e *Entry) CRC32() (uint32, error) {
	v, err := e.int64Query(ffi.Funcs().EntryGetCRC)
	return uint32(v), err
}

// LastModified returns the entry's last-modified time in MS-DOS format.
func (e *Entry) LastModified() (uint32, error) {
	v, err := e.int64Query(ffi.Funcs().EntryGetLastModifiedTime)
	return uint32(v), err
}

// CompressionMethod returns the method the entry is stored with.
func (e *Entry) CompressionMethod() (CompressionMethod, error) {
	if e.released {
		return 0, ErrInvalidHandle
	}

	var out int32
	if rc := ffi.Funcs().EntryGetCompressionMethod(ffi.Thread(), e.handle, &out); rc < 0 {
		return 0, fromCode(rc)
	}

	return CompressionMethod(out), nil
}

// EncryptionMethod returns the encryption scheme applied to the entry.
func (e *Entry) EncryptionMethod() (EncryptionMethod, error) {
	if e.released {
		return 0, ErrInvalidHandle
	}

	var out int32
	if rc := ffi.Funcs().EntryGetEncryptionMethod(ffi.Thread(), e.handle, &out); rc < 0 {
		return 0, fromCode(rc)
	}

	return EncryptionMethod(out), nil
}

// CompressionRatio returns the space saved by compression as a percentage in
// [0, 100]. An empty entry has ratio 0.
func (e *Entry) CompressionRatio() (float64, error) {
	size, err := e.Size()
	if err != nil {
		return 0, err
	}
	compressed, err := e.CompressedSize()
	if err != nil {
		return 0, err
	}

	if size == 0 {
		return 0, nil
	}

	ratio := float64(size-compressed) / float64(size) * 100
	return min(max(ratio, 0), 100), nil
}

func (e *Entry) int64Query(fn func(uintptr, int64, *int64) int32) (int64, error) {
	if e.released {
		return 0, ErrInvalidHandle
	}

	var out int64
	if rc := fn(ffi.Thread(), e.handle, &out); rc < 0 {
		return 0, fromCode(rc)
	}
	return out, nil
}

func (e *Entry) boolQuery(fn func(uintptr, int64, *int32) int32) (bool, error) {
	if e.released {
		return false, ErrInvalidHandle
	}

	var out int32
	if rc := fn(ffi.Thread(), e.handle, &out); rc < 0 {
		return false, fromCode(rc)
	}
	return out != 0, nil
}
