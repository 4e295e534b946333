// Package ffi manages the process-wide GraalVM isolate that executes calls
// into the zip4j-abi shared library, along with the table of registered ABI
// functions.
//
// The isolate and its thread handle are created at most once per process; all
// ABI calls must go through the thread handle returned by Thread. The managed
// runtime's thread-affinity rules are opaque to this package, so callers are
// responsible for serializing access.
package ffi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Ran-Mewo/zip4go/internal/libload"
)

// ErrClosed is reported by Init once Cleanup has torn the isolate down. The
// isolate is created at most once per process and is never brought back.
var ErrClosed = errors.New("native library has been shut down")

// Status codes returned by every ABI function.
const (
	Success                   int32 = 0
	CodeInvalidHandle         int32 = -1
	CodeFileNotFound          int32 = -2
	CodeZipException          int32 = -3
	CodeIOException           int32 = -4
	CodeInvalidParameter      int32 = -5
	CodeOutOfMemory           int32 = -6
	CodeEntryNotFound         int32 = -7
	CodeBufferTooSmall        int32 = -8
	CodeOperationCancelled    int32 = -9
	CodeUnsupportedOperation  int32 = -10
	CodeNullPointer           int32 = -11
	CodePermissionDenied      int32 = -12
	CodeDiskFull              int32 = -13
)

// Compression methods.
const (
	CompressionStore   int32 = 0
	CompressionDeflate int32 = 8
)

// Compression levels.
const (
	CompressionLevelNone    int32 = 0
	CompressionLevelFastest int32 = 1
	CompressionLevelNormal  int32 = 6
	CompressionLevelMaximum int32 = 9
)

// Encryption methods.
const (
	EncryptionNone     int32 = 0
	EncryptionStandard int32 = 1
	EncryptionAES128   int32 = 2
	EncryptionAES256   int32 = 3
)

// AES key strengths.
const (
	AESKeyStrength128 int32 = 1
	AESKeyStrength192 int32 = 2
	AESKeyStrength256 int32 = 3
)

// CodeError reports an ABI status code from initialization or teardown, for
// callers that map codes to their own error types.
type CodeError struct {
	Op   string
	Code int32
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("%s failed with code %d", e.Op, e.Code)
}

var (
	mu          sync.Mutex
	initOnce    sync.Once
	initErr     error
	table       *Table
	isolate     uintptr
	thread      uintptr
	initialized bool
	cleanedUp   bool
)

// Init loads the zip4j-abi shared library, creates the GraalVM isolate and
// initializes the library. It runs at most once per process; subsequent calls
// return the outcome of the first. A failed Init stays failed, and once
// Cleanup has run every later Init reports ErrClosed: the isolate is never
// retried.
func Init() error {
	mu.Lock()
	if initialized {
		mu.Unlock()
		return nil
	}
	if cleanedUp {
		mu.Unlock()
		return ErrClosed
	}
	mu.Unlock()

	initOnce.Do(func() {
		path, err := libload.Locate()
		if err != nil {
			initErr = fmt.Errorf("locate native library: %w", err)
			return
		}

		lib, err := libload.Open(path)
		if err != nil {
			initErr = fmt.Errorf(`load native library "%s": %w`, path, err)
			return
		}

		t := &Table{}
		register(t, lib)

		var iso, thr uintptr
		if rc := t.CreateIsolate(0, &iso, &thr); rc != 0 {
			initErr = fmt.Errorf("create isolate: %w", &CodeError{Op: "graal_create_isolate", Code: rc})
			return
		}

		if rc := t.Init(thr); rc != Success {
			initErr = &CodeError{Op: "zip4j_init", Code: rc}
			return
		}

		mu.Lock()
		table, isolate, thread, initialized = t, iso, thr, true
		mu.Unlock()
	})

	return initErr
}

// Cleanup shuts down the library and tears down the isolate. It is a no-op if
// Init never succeeded or Cleanup already ran. A zip4j_cleanup failure does
// not stop the isolate teardown.
func Cleanup() error {
	mu.Lock()
	defer mu.Unlock()

	if !initialized {
		return nil
	}

	var err error
	if rc := table.Cleanup(thread); rc != Success {
		err = &CodeError{Op: "zip4j_cleanup", Code: rc}
	}
	if rc := table.TearDownIsolate(thread); rc != 0 {
		return &CodeError{Op: "graal_tear_down_isolate", Code: rc}
	}

	table, isolate, thread, initialized, cleanedUp = nil, 0, 0, false, true
	return err
}

// Initialized reports whether Init has succeeded and Cleanup has not run.
func Initialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return initialized
}

// Funcs returns the registered function table. It is nil until Init succeeds.
func Funcs() *Table {
	mu.Lock()
	defer mu.Unlock()
	return table
}

// Thread returns the isolate thread handle every ABI call must be made with.
func Thread() uintptr {
	mu.Lock()
	defer mu.Unlock()
	return thread
}

// Install replaces the active function table and marks the package
// initialized, bypassing the native library entirely. It exists so the
// wrapper's contracts can be tested without the native artifact. The returned
// function restores the previous state.
func Install(t *Table) (restore func()) {
	mu.Lock()
	prevTable, prevThread, prevInit, prevCleaned := table, thread, initialized, cleanedUp
	table, thread, initialized, cleanedUp = t, 0, true, false
	mu.Unlock()

	return func() {
		mu.Lock()
		table, thread, initialized, cleanedUp = prevTable, prevThread, prevInit, prevCleaned
		mu.Unlock()
	}
}
