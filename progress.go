package zip4go

import "github.com/Ran-Mewo/zip4go/internal/ffi"

// ProgressMonitor reports on and cancels the archive's current long-running
// operation. The native library owns the monitor alongside the archive; the
// monitor needs no release of its own but becomes unusable once its archive
// is closed.
type ProgressMonitor struct {
	archive *Archive
	handle  int64
}

// Progress returns the archive's progress monitor.
func (a *Archive) Progress() (*ProgressMonitor, error) {
	if a.closed {
		return nil, ErrInvalidHandle
	}

	var monitor int64
	if rc := ffi.Funcs().GetProgressMonitor(ffi.Thread(), a.handle, &monitor); rc < 0 {
		return nil, a.opErr(rc)
	}

	return &ProgressMonitor{archive: a, handle: monitor}, nil
}

// Percent returns the current operation's completion percentage in [0, 100].
func (m *ProgressMonitor) Percent() (int, error) {
	if m.archive.closed {
		return 0, ErrInvalidHandle
	}

	var pct int32
	if rc := ffi.Funcs().GetProgressPercentage(ffi.Thread(), m.handle, &pct); rc < 0 {
		return 0, fromCode(rc)
	}

	return int(pct), nil
}

// Done reports whether the current operation has finished.
func (m *ProgressMonitor) Done() (bool, error) {
	if m.archive.closed {
		return false, ErrInvalidHandle
	}

	var finished int32
	if rc := ffi.Funcs().IsOperationFinished(ffi.Thread(), m.handle, &finished); rc < 0 {
		return false, fromCode(rc)
	}

	return finished != 0, nil
}

// Cancel requests cancellation of the current operation. The operation
// itself then fails with ErrCancelled.
func (m *ProgressMonitor) Cancel() error {
	if m.archive.closed {
		return ErrInvalidHandle
	}

	if rc := ffi.Funcs().CancelOperation(ffi.Thread(), m.handle); rc < 0 {
		return fromCode(rc)
	}
	return nil
}
