/*
Package templatetest exposes a mock fs.FS that implements basic file operations.
Used in unit tests for the purposes of avoiding the use of testdata/ directories when unit testing template rendering.

Cribbed from Mark Bates: https://www.gopherguides.com/articles/golang-1.16-io-fs-improve-test-performance
*/
package templatetest

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/xy-planning-network/switchback/http/template"
)

// NewEngine constructs a *template.Engine over the mocked files.
func NewEngine(files []*MockFile, opts ...template.EngineOptFn) *template.Engine {
	return template.NewEngine(NewMockFS(files...), opts...)
}

// A MockFS is an in-memory fs.FS.
type MockFS []*MockFile

var (
	_ fs.GlobFS     = MockFS{}
	_ fs.ReadFileFS = MockFS{}
)

func NewMockFS(files ...*MockFile) MockFS { return append(MockFS{}, files...) }

// Glob returns the names of files matching pattern.
func (mfs MockFS) Glob(pattern string) ([]string, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}

	matches := []string{}
	for _, f := range mfs {
		if ok, _ := path.Match(pattern, f.name); ok {
			matches = append(matches, f.name)
		}
	}

	return matches, nil
}

// Open returns a handle reading the named file from its start.
func (mfs MockFS) Open(name string) (fs.File, error) {
	for _, f := range mfs {
		if f.name == name {
			return &handle{MockFile: f, r: bytes.NewReader(f.data)}, nil
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile returns the contents of the named file.
func (mfs MockFS) ReadFile(name string) ([]byte, error) {
	for _, f := range mfs {
		if f.name == name {
			return append([]byte(nil), f.data...), nil
		}
	}

	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}

// A MockFile is a file held in a MockFS.
type MockFile struct {
	data    []byte
	modTime time.Time
	mode    fs.FileMode
	name    string
}

func NewMockFile(name string, data []byte) *MockFile {
	return &MockFile{data: data, name: name, modTime: time.Now()}
}

func (m *MockFile) IsDir() bool        { return false }
func (m *MockFile) Mode() os.FileMode  { return m.mode }
func (m *MockFile) ModTime() time.Time { return m.modTime }
func (m *MockFile) Name() string       { return path.Base(m.name) }
func (m *MockFile) Size() int64        { return int64(len(m.data)) }
func (m *MockFile) Sys() any           { return nil }

// handle is an open MockFile tracking its own read offset.
type handle struct {
	*MockFile
	r *bytes.Reader
}

func (h *handle) Close() error                              { return nil }
func (h *handle) Read(p []byte) (int, error)                { return h.r.Read(p) }
func (h *handle) Seek(off int64, whence int) (int64, error) { return h.r.Seek(off, whence) }
func (h *handle) Stat() (fs.FileInfo, error)                { return h.MockFile, nil }
