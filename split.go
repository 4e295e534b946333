package zip4go

import "github.com/Ran-Mewo/zip4go/internal/ffi"

// MinSplitSize is the smallest split size the ZIP format permits, 64 KiB.
const MinSplitSize = 65536

// NewSplit creates an archive at path that is split into parts of at most
// splitSize bytes as entries are added. splitSize must be at least
// MinSplitSize.
func NewSplit(path string, splitSize int64) (*Archive, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	cPath, err := cString(path)
	if err != nil {
		return nil, err
	}

	var handle int64
	if rc := ffi.Funcs().CreateSplitZip(ffi.Thread(), cPath, splitSize, &handle); rc < 0 {
		return nil, fromCode(rc)
	}

	return &Archive{handle: handle, path: path}, nil
}

// MergeSplitFiles merges a split archive into the single ZIP file at dest.
func (a *Archive) MergeSplitFiles(dest string) error {
	if a.closed {
		return ErrInvalidHandle
	}

	cDest, err := cString(dest)
	if err != nil {
		return err
	}

	if rc := ffi.Funcs().MergeSplitFiles(ffi.Thread(), a.handle, cDest); rc < 0 {
		return a.opErr(rc)
	}
	return nil
}
