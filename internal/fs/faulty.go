package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("injected fault error")

// Fault defines failure behavior for files matching a rule.
type Fault struct {
	FailOnOpen     bool
	FailAfterBytes int64 // fail writes after this many bytes; -1 disables
	FailAfterRead  int64 // fail reads after this many bytes; -1 disables
	FailOnSync     bool
	FailOnClose    bool
	Err            error
}

// NoFault returns a Fault that never fires.
func NoFault() Fault {
	return Fault{FailAfterBytes: -1, FailAfterRead: -1}
}

// FaultyFS wraps a FileSystem and injects errors into matching files.
// It also counts open handles so tests can assert that every path-based
// operation released its file.
type FaultyFS struct {
	FS FileSystem

	mu     sync.Mutex
	rules  map[string]Fault // substring of name -> fault
	open   int
	closed int
}

// NewFaultyFS wraps fsys (or Default if nil).
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{
		FS:    fsys,
		rules: make(map[string]Fault),
	}
}

// AddRule injects fault into every file whose name contains pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// OpenHandles returns the number of files opened and not yet closed.
func (f *FaultyFS) OpenHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open - f.closed
}

func (f *FaultyFS) faultFor(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := NoFault()
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

func (f *FaultyFS) wrap(name string, open func(string) (File, error)) (File, error) {
	fault := f.faultFor(name)
	if fault.FailOnOpen {
		return nil, fault.Err
	}

	file, err := open(name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.open++
	f.mu.Unlock()

	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Open(name string) (File, error)   { return f.wrap(name, f.FS.Open) }
func (f *FaultyFS) Create(name string) (File, error) { return f.wrap(name, f.FS.Create) }

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
	read    int64
	closed  bool
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.FailAfterBytes >= 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		return 0, ff.fault.Err
	}
	n, err := ff.File.Write(p)
	ff.written += int64(n)
	return n, err
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.fault.FailAfterRead >= 0 {
		remaining := ff.fault.FailAfterRead - ff.read
		if remaining <= 0 {
			return 0, ff.fault.Err
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	n, err := ff.File.Read(p)
	ff.read += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.Err
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if !ff.closed {
		ff.closed = true
		ff.fs.mu.Lock()
		ff.fs.closed++
		ff.fs.mu.Unlock()
	}

	err := ff.File.Close()
	if ff.fault.FailOnClose {
		return ff.fault.Err
	}
	return err
}
