package ffi

import "github.com/ebitengine/purego"

// Table holds one Go function variable per exported symbol of the zip4j-abi
// shared library. Every function takes the isolate thread handle as its first
// argument and returns a status code (0 on success, negative on error).
//
// Strings cross the boundary as NUL-terminated *byte so the caller controls
// the conversion (and its failure mode); sized output buffers are a *byte plus
// a capacity and a *int32 receiving the written length.
type Table struct {
	// GraalVM isolate lifecycle.
	CreateIsolate   func(params uintptr, isolate *uintptr, thread *uintptr) int32
	TearDownIsolate func(thread uintptr) int32

	// Library lifecycle.
	Init    func(thread uintptr) int32
	Cleanup func(thread uintptr) int32

	// Archive lifecycle.
	Create             func(thread uintptr, path *byte, handle *int64) int32
	CreateWithPassword func(thread uintptr, path, password *byte, handle *int64) int32
	CreateSplitZip     func(thread uintptr, path *byte, splitSize int64, handle *int64) int32
	SetPassword        func(thread uintptr, handle int64, password *byte) int32
	Close              func(thread uintptr, handle int64) int32

	// Archive queries.
	IsValid        func(thread uintptr, handle int64, out *int32) int32
	IsEncrypted    func(thread uintptr, handle int64, out *int32) int32
	IsSplitArchive func(thread uintptr, handle int64, out *int32) int32
	GetFilePath    func(thread uintptr, handle int64, buf *byte, bufCap int32, n *int32) int32
	GetComment     func(thread uintptr, handle int64, buf *byte, bufCap int32, n *int32) int32
	SetComment     func(thread uintptr, handle int64, comment *byte) int32
	GetEntryCount  func(thread uintptr, handle int64, out *int64) int32

	// Entry lookup and lifecycle.
	GetEntryByIndex func(thread uintptr, handle, index int64, entry *int64) int32
	GetEntryByName  func(thread uintptr, handle int64, name *byte, entry *int64) int32
	ReleaseEntry    func(thread uintptr, entry int64) int32

	// Entry metadata.
	EntryGetName              func(thread uintptr, entry int64, buf *byte, bufCap int32, n *int32) int32
	EntryGetSize              func(thread uintptr, entry int64, out *int64) int32
	EntryGetCompressedSize    func(thread uintptr, entry int64, out *int64) int32
	EntryIsDirectory          func(thread uintptr, entry int64, out *int32) int32
	EntryIsEncrypted          func(thread uintptr, entry int64, out *int32) int32
	EntryGetCRC               func(thread uintptr, entry int64, out *int64) int32
	EntryGetLastModifiedTime  func(thread uintptr, entry int64, out *int64) int32
	EntryGetCompressionMethod func(thread uintptr, entry int64, out *int32) int32
	EntryGetEncryptionMethod  func(thread uintptr, entry int64, out *int32) int32

	// Writing.
	AddFile                 func(thread uintptr, handle int64, path *byte) int32
	AddFileWithParams       func(thread uintptr, handle int64, path *byte, level, method, encryption, aesStrength int32, password *byte) int32
	AddDirectory            func(thread uintptr, handle int64, path *byte) int32
	AddDirectoryWithParams  func(thread uintptr, handle int64, path *byte, level, method, encryption, aesStrength int32, password *byte) int32
	AddData                 func(thread uintptr, handle int64, name, data *byte, dataLen, level, method, encryption, aesStrength int32, password *byte) int32
	RemoveFile              func(thread uintptr, handle int64, name *byte) int32
	RemoveEntry             func(thread uintptr, handle, entry int64) int32
	RenameEntry             func(thread uintptr, handle, entry int64, newName *byte) int32
	MergeSplitFiles         func(thread uintptr, handle int64, dest *byte) int32

	// Extraction.
	ExtractAll   func(thread uintptr, handle int64, dest *byte) int32
	ExtractFile  func(thread uintptr, handle int64, name, dest *byte) int32
	ExtractEntry func(thread uintptr, handle, entry int64, dest *byte) int32
	ExtractData  func(thread uintptr, handle, entry int64, buf *byte, bufCap int32, n *int32) int32

	// Entry streaming.
	CreateInputStream func(thread uintptr, handle, entry int64, stream *int64) int32
	StreamRead        func(thread uintptr, stream int64, buf *byte, bufCap int32, n *int32) int32
	CloseInputStream  func(thread uintptr, stream int64) int32

	// Progress monitoring.
	GetProgressMonitor    func(thread uintptr, handle int64, monitor *int64) int32
	GetProgressPercentage func(thread uintptr, monitor int64, out *int32) int32
	IsOperationFinished   func(thread uintptr, monitor int64, out *int32) int32
	CancelOperation       func(thread uintptr, monitor int64) int32

	// Diagnostics.
	GetLastError func(thread uintptr, handle int64, buf *byte, bufCap int32, n *int32) int32
}

// register binds every field of t to its symbol in the loaded library.
func register(t *Table, lib uintptr) {
	purego.RegisterLibFunc(&t.CreateIsolate, lib, "graal_create_isolate")
	purego.RegisterLibFunc(&t.TearDownIsolate, lib, "graal_tear_down_isolate")

	purego.RegisterLibFunc(&t.Init, lib, "zip4j_init")
	purego.RegisterLibFunc(&t.Cleanup, lib, "zip4j_cleanup")

	purego.RegisterLibFunc(&t.Create, lib, "zip4j_create")
	purego.RegisterLibFunc(&t.CreateWithPassword, lib, "zip4j_create_with_password")
	purego.RegisterLibFunc(&t.CreateSplitZip, lib, "zip4j_create_split_zip")
	purego.RegisterLibFunc(&t.SetPassword, lib, "zip4j_set_password")
	purego.RegisterLibFunc(&t.Close, lib, "zip4j_close")

	purego.RegisterLibFunc(&t.IsValid, lib, "zip4j_is_valid")
	purego.RegisterLibFunc(&t.IsEncrypted, lib, "zip4j_is_encrypted")
	purego.RegisterLibFunc(&t.IsSplitArchive, lib, "zip4j_is_split_archive")
	purego.RegisterLibFunc(&t.GetFilePath, lib, "zip4j_get_file_path")
	purego.RegisterLibFunc(&t.GetComment, lib, "zip4j_get_comment")
	purego.RegisterLibFunc(&t.SetComment, lib, "zip4j_set_comment")
	purego.RegisterLibFunc(&t.GetEntryCount, lib, "zip4j_get_entry_count")

	purego.RegisterLibFunc(&t.GetEntryByIndex, lib, "zip4j_get_entry_by_index")
	purego.RegisterLibFunc(&t.GetEntryByName, lib, "zip4j_get_entry_by_name")
	purego.RegisterLibFunc(&t.ReleaseEntry, lib, "zip4j_release_entry")

	purego.RegisterLibFunc(&t.EntryGetName, lib, "zip4j_entry_get_name")
	purego.RegisterLibFunc(&t.EntryGetSize, lib, "zip4j_entry_get_size")
	purego.RegisterLibFunc(&t.EntryGetCompressedSize, lib, "zip4j_entry_get_compressed_size")
	purego.RegisterLibFunc(&t.EntryIsDirectory, lib, "zip4j_entry_is_directory")
	purego.RegisterLibFunc(&t.EntryIsEncrypted, lib, "zip4j_entry_is_encrypted")
	purego.RegisterLibFunc(&t.EntryGetCRC, lib, "zip4j_entry_get_crc")
	purego.RegisterLibFunc(&t.EntryGetLastModifiedTime, lib, "zip4j_entry_get_last_modified_time")
	purego.RegisterLibFunc(&t.EntryGetCompressionMethod, lib, "zip4j_entry_get_compression_method")
	purego.RegisterLibFunc(&t.EntryGetEncryptionMethod, lib, "zip4j_entry_get_encryption_method")

	purego.RegisterLibFunc(&t.AddFile, lib, "zip4j_add_file")
	purego.RegisterLibFunc(&t.AddFileWithParams, lib, "zip4j_add_file_with_params")
	purego.RegisterLibFunc(&t.AddDirectory, lib, "zip4j_add_directory")
	purego.RegisterLibFunc(&t.AddDirectoryWithParams, lib, "zip4j_add_directory_with_params")
	purego.RegisterLibFunc(&t.AddData, lib, "zip4j_add_data")
	purego.RegisterLibFunc(&t.RemoveFile, lib, "zip4j_remove_file")
	purego.RegisterLibFunc(&t.RemoveEntry, lib, "zip4j_remove_entry")
	purego.RegisterLibFunc(&t.RenameEntry, lib, "zip4j_rename_entry")
	purego.RegisterLibFunc(&t.MergeSplitFiles, lib, "zip4j_merge_split_files")

	purego.RegisterLibFunc(&t.ExtractAll, lib, "zip4j_extract_all")
	purego.RegisterLibFunc(&t.ExtractFile, lib, "zip4j_extract_file")
	purego.RegisterLibFunc(&t.ExtractEntry, lib, "zip4j_extract_entry")
	purego.RegisterLibFunc(&t.ExtractData, lib, "zip4j_extract_data")

	purego.RegisterLibFunc(&t.CreateInputStream, lib, "zip4j_create_input_stream")
	purego.RegisterLibFunc(&t.StreamRead, lib, "zip4j_stream_read")
	purego.RegisterLibFunc(&t.CloseInputStream, lib, "zip4j_close_input_stream")

	purego.RegisterLibFunc(&t.GetProgressMonitor, lib, "zip4j_get_progress_monitor")
	purego.RegisterLibFunc(&t.GetProgressPercentage, lib, "zip4j_get_progress_percentage")
	purego.RegisterLibFunc(&t.IsOperationFinished, lib, "zip4j_is_operation_finished")
	purego.RegisterLibFunc(&t.CancelOperation, lib, "zip4j_cancel_operation")

	purego.RegisterLibFunc(&t.GetLastError, lib, "zip4j_get_last_error")
}
