package zip4go

import (
	"fmt"
	"iter"

	"github.com/Ran-Mewo/zip4go/internal/ffi"
)

// Archive is an open ZIP archive backed by a handle owned by the native
// library. The handle stays valid until Close releases it; using an Archive
// after Close reports ErrInvalidHandle without touching the native side.
//
// An Archive is not safe for concurrent use: the embedded managed runtime's
// thread-affinity rules are opaque, so callers must serialize access.
type Archive struct {
	handle int64
	path   string
	closed bool
}

// New creates a new ZIP archive at path, or opens the existing one. The
// native library is initialized on first use.
func New(path string) (*Archive, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	cPath, err := cString(path)
	if err != nil {
		return nil, err
	}

	var handle int64
	if rc := ffi.Funcs().Create(ffi.Thread(), cPath, &handle); rc < 0 {
		return nil, fromCode(rc)
	}

	return &Archive{handle: handle, path: path}, nil
}

// NewWithPassword is New for archives whose existing entries are protected by
// password.
func NewWithPassword(path, password string) (*Archive, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	cPath, err := cString(path)
	if err != nil {
		return nil, err
	}
	cPassword, err := cString(password)
	if err != nil {
		return nil, err
	}

	var handle int64
	if rc := ffi.Funcs().CreateWithPassword(ffi.Thread(), cPath, cPassword, &handle); rc < 0 {
		return nil, fromCode(rc)
	}

	return &Archive{handle: handle, path: path}, nil
}

// Close releases the native archive handle. The first call releases; any
// further calls are no-ops returning nil.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if rc := ffi.Funcs().Close(ffi.Thread(), a.handle); rc < 0 {
		return fromCode(rc)
	}
	return nil
}

// Path returns the archive path as reported by the native library.
func (a *Archive) Path() (string, error) {
	if a.closed {
		return "", ErrInvalidHandle
	}

	buf := make([]byte, bufSize)
	var n int32
	if rc := ffi.Funcs().GetFilePath(ffi.Thread(), a.handle, &buf[0], bufSize, &n); rc < 0 {
		return "", a.opErr(rc)
	}

	return bufString(buf, n)
}

// IsValid reports whether the archive on disk is a readable ZIP file. A newly
// created archive is not valid until at least one entry has been added.
func (a *Archive) IsValid() (bool, error) {
	if a.closed {
		return false, ErrInvalidHandle
	}

	var valid int32
	rc := ffi.Funcs().IsValid(ffi.Thread(), a.handle, &valid)
	// An invalid-parameter response just means "not a valid archive yet".
	if rc < 0 && rc != ffi.CodeInvalidParameter {
		return false, a.opErr(rc)
	}

	return valid != 0, nil
}

// IsEncrypted reports whether the archive has encrypted entries.
func (a *Archive) IsEncrypted() (bool, error) {
	return a.boolQuery(ffi.Funcs().IsEncrypted)
}

// IsSplitArchive reports whether the archive is split across multiple files.
func (a *Archive) IsSplitArchive() (bool, error) {
	return a.boolQuery(ffi.Funcs().IsSplitArchive)
}

// Comment returns the archive comment. Empty or not-yet-valid archives have
// no comment; both normalize to the empty string, never an error.
func (a *Archive) Comment() (string, error) {
	if a.closed {
		return "", ErrInvalidHandle
	}

	if valid, err := a.IsValid(); err != nil || !valid {
		return "", err
	}

	buf := make([]byte, bufSize)
	var n int32
	if rc := ffi.Funcs().GetComment(ffi.Thread(), a.handle, &buf[0], bufSize, &n); rc < 0 {
		return "", nil
	}

	return bufString(buf, n)
}

// SetComment sets the archive comment. The archive must already have entries;
// setting a comment on an empty archive reports ErrInvalidParameter.
func (a *Archive) SetComment(comment string) error {
	if a.closed {
		return ErrInvalidHandle
	}

	if valid, err := a.IsValid(); err != nil {
		return err
	} else if !valid {
		return fmt.Errorf("%w: cannot set comment on an empty archive", ErrInvalidParameter)
	}

	cComment, err := cString(comment)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().SetComment(ffi.Thread(), a.handle, cComment); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// SetPassword sets or changes the password used to read the archive's
// encrypted entries.
func (a *Archive) SetPassword(password string) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cPassword, err := cString(password)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().SetPassword(ffi.Thread(), a.handle, cPassword); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// EntryCount returns the number of entries. Empty or not-yet-valid archives
// normalize to 0, never an error.
func (a *Archive) EntryCount() (int, error) {
	if a.closed {
		return 0, ErrInvalidHandle
	}

	var count int64
	if rc := ffi.Funcs().GetEntryCount(ffi.Thread(), a.handle, &count); rc < 0 {
		return 0, nil
	}

	return int(count), nil
}

// EntryAt returns the entry at the zero-based index. The caller owns the
// returned entry and must release it with [Entry.Release].
func (a *Archive) EntryAt(index int) (*Entry, error) {
	if a.closed {
		return nil, ErrInvalidHandle
	}

	var entry int64
	if rc := ffi.Funcs().GetEntryByIndex(ffi.Thread(), a.handle, int64(index), &entry); rc < 0 {
		return nil, a.opErr(rc)
	}

	return newEntry(entry)
}

// Entry returns the entry with the given name (the full path within the
// archive). The caller owns the returned entry and must release it with
// [Entry.Release].
func (a *Archive) Entry(name string) (*Entry, error) {
	if a.closed {
		return nil, ErrInvalidHandle
	}

	cName, err := cString(name)
	if err != nil {
		return nil, err
	}

	var entry int64
	if rc := ffi.Funcs().GetEntryByName(ffi.Thread(), a.handle, cName, &entry); rc < 0 {
		return nil, a.opErr(rc)
	}

	return newEntry(entry)
}

// Entries iterates over all entries in index order. Each entry is released
// when its loop iteration ends; keep any metadata you need, not the *Entry.
func (a *Archive) Entries() iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		n, err := a.EntryCount()
		if err != nil {
			yield(nil, err)
			return
		}

		for i := 0; i < n; i++ {
			e, err := a.EntryAt(i)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}

			ok := yield(e, nil)
			_ = e.Release()
			if !ok {
				return
			}
		}
	}
}

// AddFile adds the file at path to the archive. A nil params adds with
// DefaultParameters.
func (a *Archive) AddFile(path string, params *Parameters) error {
	return a.addPath(path, params, ffi.Funcs().AddFile, ffi.Funcs().AddFileWithParams)
}

// AddDirectory recursively adds the directory at path to the archive. A nil
// params adds with DefaultParameters.
func (a *Archive) AddDirectory(path string, params *Parameters) error {
	return a.addPath(path, params, ffi.Funcs().AddDirectory, ffi.Funcs().AddDirectoryWithParams)
}

// AddData adds an entry named name with the given in-memory content. A nil
// params adds with DefaultParameters.
func (a *Archive) AddData(name string, data []byte, params *Parameters) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cName, err := cString(name)
	if err != nil {
		return err
	}

	if params == nil {
		params = DefaultParameters()
	}
	cPassword, err := cStringOrNil(params.Password)
	if err != nil {
		return err
	}

	var p *byte
	if len(data) > 0 {
		p = &data[0]
	}

	rc := ffi.Funcs().AddData(ffi.Thread(), a.handle, cName, p, int32(len(data)),
		int32(params.CompressionLevel), int32(params.CompressionMethod),
		int32(params.EncryptionMethod), int32(params.AESKeyStrength), cPassword)
	if rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// ExtractAll extracts every entry into the destination directory.
func (a *Archive) ExtractAll(dest string) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cDest, err := cString(dest)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().ExtractAll(ffi.Thread(), a.handle, cDest); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// ExtractFile extracts the named entry into the destination directory.
func (a *Archive) ExtractFile(name, dest string) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cName, err := cString(name)
	if err != nil {
		return err
	}
	cDest, err := cString(dest)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().ExtractFile(ffi.Thread(), a.handle, cName, cDest); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// ExtractEntry extracts the given entry into the destination directory.
func (a *Archive) ExtractEntry(entry *Entry, dest string) error {
	if a.closed {
		return ErrInvalidHandle
	}
	if entry.released {
		return ErrInvalidHandle
	}

	cDest, err := cString(dest)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().ExtractEntry(ffi.Thread(), a.handle, entry.handle, cDest); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// ExtractData extracts the given entry into memory and returns its content.
//
// The buffer starts at the entry's reported uncompressed size; if the native
// side reports it too small (the entry grew or the size was unknown), the
// buffer is resized to the reported required length and the call retried
// once.
func (a *Archive) ExtractData(entry *Entry) ([]byte, error) {
	if a.closed {
		return nil, ErrInvalidHandle
	}
	if entry.released {
		return nil, ErrInvalidHandle
	}

	size, err := entry.Size()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		size = bufSize
	}

	buf := make([]byte, size)
	var n int32

	rc := ffi.Funcs().ExtractData(ffi.Thread(), a.handle, entry.handle, &buf[0], int32(len(buf)), &n)
	if rc == ffi.CodeBufferTooSmall && n > 0 {
		buf = make([]byte, n)
		rc = ffi.Funcs().ExtractData(ffi.Thread(), a.handle, entry.handle, &buf[0], int32(len(buf)), &n)
	}
	if rc < 0 {
		return nil, a.opErr(rc)
	}

	return buf[:n], nil
}

// RemoveFile removes the named entry from the archive.
func (a *Archive) RemoveFile(name string) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cName, err := cString(name)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().RemoveFile(ffi.Thread(), a.handle, cName); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// RemoveEntry removes the given entry from the archive. The entry itself
// must still be released by the caller.
func (a *Archive) RemoveEntry(entry *Entry) error {
	if a.closed {
		return ErrInvalidHandle
	}
	if entry.released {
		return ErrInvalidHandle
	}

	if rc := ffi.Funcs().RemoveEntry(ffi.Thread(), a.handle, entry.handle); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// RenameEntry renames the given entry within the archive.
func (a *Archive) RenameEntry(entry *Entry, newName string) error {
	if a.closed {
		return ErrInvalidHandle
	}
	if entry.released {
		return ErrInvalidHandle
	}

	cName, err := cString(newName)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().RenameEntry(ffi.Thread(), a.handle, entry.handle, cName); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// addPath is the shared body of AddFile and AddDirectory.
func (a *Archive) addPath(path string, params *Parameters,
	plain func(uintptr, int64, *byte) int32,
	withParams func(uintptr, int64, *byte, int32, int32, int32, int32, *byte) int32) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cPath, err := cString(path)
	if err != nil {
		return err
	}

	var rc int32
	if params == nil {
		rc = plain(ffi.Thread(), a.handle, cPath)
	} else {
		cPassword, err := cStringOrNil(params.Password)
		if err != nil {
			return err
		}
		rc = withParams(ffi.Thread(), a.handle, cPath,
			int32(params.CompressionLevel), int32(params.CompressionMethod),
			int32(params.EncryptionMethod), int32(params.AESKeyStrength), cPassword)
	}

	if rc < 0 {
		return a.opErr(rc)
	}
	return nil
}

// boolQuery is the shared body of the int-out flag queries.
func (a *Archive) boolQuery(fn func(uintptr, int64, *int32) int32) (bool, error) {
	if a.closed {
		return false, ErrInvalidHandle
	}

	var out int32
	if rc := fn(ffi.Thread(), a.handle, &out); rc < 0 {
		return false, a.opErr(rc)
	}

	return out != 0, nil
}

// opErr maps a native status code, attaching the library's own message for
// the failure when one is available.
func (a *Archive) opErr(rc int32) error {
	err := fromCode(rc)
	if detail := lastError(a.handle); detail != "" {
		return fmt.Errorf("%w: %s", err, detail)
	}
	return err
}
