// Package mmap provides read-only memory-mapped files for the local blob store.
//
//	m, err := mmap.Open("scores.bin")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix builds use golang.org/x/sys/unix and hint sequential access; Windows
// uses MapViewOfFile.
package mmap
