package zip4go

import (
	"bytes"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/Ran-Mewo/zip4go/internal/ffi"
)

// fakeLib is an in-memory stand-in for the native library so the wrapper's
// own contracts (handle lifetimes, code mapping, buffer retries) can be
// tested without the shared library.
type fakeLib struct {
	archives map[int64]*fakeArchive
	entries  map[int64]*fakeEntryRef
	streams  map[int64]*fakeStream
	next     int64

	closeCalls   map[int64]int
	releaseCalls map[int64]int
	extractCalls int
	lastErr      map[int64]string
}

type fakeArchive struct {
	path      string
	password  string
	comment   string
	splitSize int64
	mergedTo  string
	entries   []*fakeEntry
	progress  fakeProgress
}

type fakeProgress struct {
	percent   int32
	finished  int32
	cancelled bool
}

type fakeEntry struct {
	name       string
	data       []byte
	dir        bool
	encryption int32
	method     int32
	crc        int64
	mtime      int64

	// sizeOverride, when non-zero, misreports the uncompressed size to
	// force the caller's resize-and-retry path.
	sizeOverride int64

	// badLength makes extraction report buffer-too-small with a required
	// length of zero.
	badLength bool
}

type fakeEntryRef struct {
	archive *fakeArchive
	entry   *fakeEntry
}

type fakeStream struct {
	data []byte
	off  int
}

func newFakeLib() *fakeLib {
	return &fakeLib{
		archives:     map[int64]*fakeArchive{},
		entries:      map[int64]*fakeEntryRef{},
		streams:      map[int64]*fakeStream{},
		closeCalls:   map[int64]int{},
		releaseCalls: map[int64]int{},
		lastErr:      map[int64]string{},
	}
}

func (f *fakeLib) handle() int64 {
	f.next++
	return f.next
}

func (f *fakeLib) archive(h int64) *fakeArchive {
	return f.archives[h]
}

// goString reads a NUL-terminated C string.
func goString(p *byte) string {
	if p == nil {
		return ""
	}

	var b []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(p), i))
		if c == 0 {
			return string(b)
		}
		b = append(b, c)
	}
}

// writeString writes s NUL-terminated into the sized buffer, reporting
// buffer-too-small with the required length like the native side does.
func writeString(s string, buf *byte, bufCap int32, n *int32) int32 {
	if int32(len(s))+1 > bufCap {
		*n = int32(len(s)) + 1
		return ffi.CodeBufferTooSmall
	}

	dst := unsafe.Slice(buf, bufCap)
	copy(dst, s)
	dst[len(s)] = 0
	*n = int32(len(s))
	return ffi.Success
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (f *fakeLib) addFromDisk(handle int64, path string, method, encryption int32) int32 {
	a := f.archive(handle)
	if a == nil {
		return ffi.CodeInvalidHandle
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ffi.CodeFileNotFound
		}
		return ffi.CodeIOException
	}

	a.entries = append(a.entries, &fakeEntry{
		name:       filepath.Base(path),
		data:       data,
		method:     method,
		encryption: encryption,
	})
	return ffi.Success
}

func writeToDisk(e *fakeEntry, dest string) int32 {
	if e.dir {
		if os.MkdirAll(filepath.Join(dest, e.name), 0o755) != nil {
			return ffi.CodeIOException
		}
		return ffi.Success
	}

	p := filepath.Join(dest, filepath.FromSlash(e.name))
	if os.MkdirAll(filepath.Dir(p), 0o755) != nil {
		return ffi.CodeIOException
	}
	if os.WriteFile(p, e.data, 0o644) != nil {
		return ffi.CodeIOException
	}
	return ffi.Success
}

// table builds an ffi.Table backed by the fake.
func (f *fakeLib) table() *ffi.Table {
	return &ffi.Table{
		Cleanup: func(_ uintptr) int32 {
			return ffi.Success
		},
		TearDownIsolate: func(_ uintptr) int32 {
			return 0
		},
		Create: func(_ uintptr, path *byte, handle *int64) int32 {
			h := f.handle()
			f.archives[h] = &fakeArchive{path: goString(path)}
			*handle = h
			return ffi.Success
		},
		CreateWithPassword: func(_ uintptr, path, password *byte, handle *int64) int32 {
			h := f.handle()
			f.archives[h] = &fakeArchive{path: goString(path), password: goString(password)}
			*handle = h
			return ffi.Success
		},
		CreateSplitZip: func(_ uintptr, path *byte, splitSize int64, handle *int64) int32 {
			if splitSize < MinSplitSize {
				return ffi.CodeInvalidParameter
			}
			h := f.handle()
			f.archives[h] = &fakeArchive{path: goString(path), splitSize: splitSize}
			*handle = h
			return ffi.Success
		},
		SetPassword: func(_ uintptr, handle int64, password *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			a.password = goString(password)
			return ffi.Success
		},
		Close: func(_ uintptr, handle int64) int32 {
			if f.archive(handle) == nil {
				return ffi.CodeInvalidHandle
			}
			f.closeCalls[handle]++
			delete(f.archives, handle)
			return ffi.Success
		},
		IsValid: func(_ uintptr, handle int64, out *int32) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			*out = boolToInt32(len(a.entries) > 0)
			return ffi.Success
		},
		IsEncrypted: func(_ uintptr, handle int64, out *int32) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			for _, e := range a.entries {
				if e.encryption != ffi.EncryptionNone {
					*out = 1
				}
			}
			return ffi.Success
		},
		IsSplitArchive: func(_ uintptr, handle int64, out *int32) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			*out = boolToInt32(a.splitSize > 0)
			return ffi.Success
		},
		GetFilePath: func(_ uintptr, handle int64, buf *byte, bufCap int32, n *int32) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			return writeString(a.path, buf, bufCap, n)
		},
		GetComment: func(_ uintptr, handle int64, buf *byte, bufCap int32, n *int32) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			return writeString(a.comment, buf, bufCap, n)
		},
		SetComment: func(_ uintptr, handle int64, comment *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			a.comment = goString(comment)
			return ffi.Success
		},
		GetEntryCount: func(_ uintptr, handle int64, out *int64) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			// The native library rejects metadata queries on archives
			// that have never been written.
			if len(a.entries) == 0 {
				return ffi.CodeInvalidParameter
			}
			*out = int64(len(a.entries))
			return ffi.Success
		},
		GetEntryByIndex: func(_ uintptr, handle, index int64, entry *int64) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			if index < 0 || index >= int64(len(a.entries)) {
				return ffi.CodeEntryNotFound
			}
			h := f.handle()
			f.entries[h] = &fakeEntryRef{archive: a, entry: a.entries[index]}
			*entry = h
			return ffi.Success
		},
		GetEntryByName: func(_ uintptr, handle int64, name *byte, entry *int64) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			want := goString(name)
			for _, e := range a.entries {
				if e.name == want {
					h := f.handle()
					f.entries[h] = &fakeEntryRef{archive: a, entry: e}
					*entry = h
					return ffi.Success
				}
			}
			f.lastErr[handle] = "no entry named " + want
			return ffi.CodeEntryNotFound
		},
		ReleaseEntry: func(_ uintptr, entry int64) int32 {
			if f.entries[entry] == nil {
				return ffi.CodeInvalidHandle
			}
			f.releaseCalls[entry]++
			delete(f.entries, entry)
			return ffi.Success
		},
		EntryGetName: func(_ uintptr, entry int64, buf *byte, bufCap int32, n *int32) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			return writeString(ref.entry.name, buf, bufCap, n)
		},
		EntryGetSize: func(_ uintptr, entry int64, out *int64) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			if ref.entry.sizeOverride != 0 {
				*out = ref.entry.sizeOverride
			} else {
				*out = int64(len(ref.entry.data))
			}
			return ffi.Success
		},
		EntryGetCompressedSize: func(_ uintptr, entry int64, out *int64) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			// Pretend deflate halves everything.
			*out = int64(len(ref.entry.data)) / 2
			return ffi.Success
		},
		EntryIsDirectory: func(_ uintptr, entry int64, out *int32) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			*out = boolToInt32(ref.entry.dir)
			return ffi.Success
		},
		EntryIsEncrypted: func(_ uintptr, entry int64, out *int32) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			*out = boolToInt32(ref.entry.encryption != ffi.EncryptionNone)
			return ffi.Success
		},
		EntryGetCRC: func(_ uintptr, entry int64, out *int64) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			*out = ref.entry.crc
			return ffi.Success
		},
		EntryGetLastModifiedTime: func(_ uintptr, entry int64, out *int64) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			*out = ref.entry.mtime
			return ffi.Success
		},
		EntryGetCompressionMethod: func(_ uintptr, entry int64, out *int32) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			*out = ref.entry.method
			return ffi.Success
		},
		EntryGetEncryptionMethod: func(_ uintptr, entry int64, out *int32) int32 {
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			*out = ref.entry.encryption
			return ffi.Success
		},
		AddFile: func(_ uintptr, handle int64, path *byte) int32 {
			return f.addFromDisk(handle, goString(path), ffi.CompressionDeflate, ffi.EncryptionNone)
		},
		AddFileWithParams: func(_ uintptr, handle int64, path *byte, _, method, encryption, _ int32, _ *byte) int32 {
			return f.addFromDisk(handle, goString(path), method, encryption)
		},
		ExtractAll: func(_ uintptr, handle int64, dest *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			for _, e := range a.entries {
				if rc := writeToDisk(e, goString(dest)); rc != ffi.Success {
					return rc
				}
			}
			return ffi.Success
		},
		ExtractFile: func(_ uintptr, handle int64, name, dest *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			want := goString(name)
			for _, e := range a.entries {
				if e.name == want {
					return writeToDisk(e, goString(dest))
				}
			}
			return ffi.CodeEntryNotFound
		},
		ExtractEntry: func(_ uintptr, handle, entry int64, dest *byte) int32 {
			if f.archive(handle) == nil {
				return ffi.CodeInvalidHandle
			}
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			return writeToDisk(ref.entry, goString(dest))
		},
		AddData: func(_ uintptr, handle int64, name, data *byte, dataLen, _, method, encryption, _ int32, _ *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			var content []byte
			if data != nil && dataLen > 0 {
				content = bytes.Clone(unsafe.Slice(data, dataLen))
			}
			a.entries = append(a.entries, &fakeEntry{
				name:       goString(name),
				data:       content,
				method:     method,
				encryption: encryption,
			})
			return ffi.Success
		},
		ExtractData: func(_ uintptr, handle, entry int64, buf *byte, bufCap int32, n *int32) int32 {
			f.extractCalls++
			if f.archive(handle) == nil {
				return ffi.CodeInvalidHandle
			}
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			if ref.entry.badLength {
				*n = 0
				return ffi.CodeBufferTooSmall
			}
			if int32(len(ref.entry.data)) > bufCap {
				*n = int32(len(ref.entry.data))
				return ffi.CodeBufferTooSmall
			}
			copy(unsafe.Slice(buf, bufCap), ref.entry.data)
			*n = int32(len(ref.entry.data))
			return ffi.Success
		},
		RemoveFile: func(_ uintptr, handle int64, name *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			want := goString(name)
			for i, e := range a.entries {
				if e.name == want {
					a.entries = append(a.entries[:i], a.entries[i+1:]...)
					return ffi.Success
				}
			}
			return ffi.CodeEntryNotFound
		},
		RemoveEntry: func(_ uintptr, handle, entry int64) int32 {
			a := f.archive(handle)
			ref := f.entries[entry]
			if a == nil || ref == nil {
				return ffi.CodeInvalidHandle
			}
			for i, e := range a.entries {
				if e == ref.entry {
					a.entries = append(a.entries[:i], a.entries[i+1:]...)
					return ffi.Success
				}
			}
			return ffi.CodeEntryNotFound
		},
		RenameEntry: func(_ uintptr, handle, entry int64, newName *byte) int32 {
			if f.archive(handle) == nil {
				return ffi.CodeInvalidHandle
			}
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			ref.entry.name = goString(newName)
			return ffi.Success
		},
		MergeSplitFiles: func(_ uintptr, handle int64, dest *byte) int32 {
			a := f.archive(handle)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			if a.splitSize == 0 {
				return ffi.CodeUnsupportedOperation
			}
			a.mergedTo = goString(dest)
			return ffi.Success
		},
		CreateInputStream: func(_ uintptr, handle, entry int64, stream *int64) int32 {
			if f.archive(handle) == nil {
				return ffi.CodeInvalidHandle
			}
			ref := f.entries[entry]
			if ref == nil {
				return ffi.CodeInvalidHandle
			}
			h := f.handle()
			f.streams[h] = &fakeStream{data: ref.entry.data}
			*stream = h
			return ffi.Success
		},
		StreamRead: func(_ uintptr, stream int64, buf *byte, bufCap int32, n *int32) int32 {
			s := f.streams[stream]
			if s == nil {
				return ffi.CodeInvalidHandle
			}
			remaining := len(s.data) - s.off
			if remaining == 0 {
				*n = 0
				return ffi.Success
			}
			c := copy(unsafe.Slice(buf, bufCap), s.data[s.off:])
			s.off += c
			*n = int32(c)
			return ffi.Success
		},
		CloseInputStream: func(_ uintptr, stream int64) int32 {
			if f.streams[stream] == nil {
				return ffi.CodeInvalidHandle
			}
			delete(f.streams, stream)
			return ffi.Success
		},
		GetProgressMonitor: func(_ uintptr, handle int64, monitor *int64) int32 {
			if f.archive(handle) == nil {
				return ffi.CodeInvalidHandle
			}
			*monitor = handle
			return ffi.Success
		},
		GetProgressPercentage: func(_ uintptr, monitor int64, out *int32) int32 {
			a := f.archive(monitor)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			*out = a.progress.percent
			return ffi.Success
		},
		IsOperationFinished: func(_ uintptr, monitor int64, out *int32) int32 {
			a := f.archive(monitor)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			*out = a.progress.finished
			return ffi.Success
		},
		CancelOperation: func(_ uintptr, monitor int64) int32 {
			a := f.archive(monitor)
			if a == nil {
				return ffi.CodeInvalidHandle
			}
			a.progress.cancelled = true
			return ffi.Success
		},
		GetLastError: func(_ uintptr, handle int64, buf *byte, bufCap int32, n *int32) int32 {
			return writeString(f.lastErr[handle], buf, bufCap, n)
		},
	}
}
