// Package billyfs opens stdio streams on a go-billy filesystem, such as
// osfs on disk or memfs in memory.
package billyfs

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/misachi/sostdio/stdio"
)

// FS adapts a billy.Filesystem to stdio.FS.
type FS struct {
	fs billy.Filesystem
}

var _ stdio.FS = (*FS)(nil)

// New wraps fs.
func New(fs billy.Filesystem) *FS {
	return &FS{fs: fs}
}

// Open implements stdio.FS. The stdio flags are the os flags, so they pass
// through unchanged.
//
//nolint:ireturn // stdio.FS returns the File interface.
func (b *FS) Open(path string, flag int, perm uint32) (stdio.File, error) {
	f, err := b.fs.OpenFile(path, flag, os.FileMode(perm))
	if err != nil {
		return nil, fmt.Errorf("billyfs: open %q: %w", path, err)
	}
	return &File{file: f}, nil
}

// File wraps a billy.File.
type File struct {
	file billy.File
}

// Name returns the name the file was opened with.
func (f *File) Name() string {
	return f.file.Name()
}

// Read implements stdio.File.Read.
func (f *File) Read(p []byte) (int, error) {
	n, err := f.file.Read(p)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, io.EOF
		}
		return n, fmt.Errorf("billyfs: read %q: %w", f.file.Name(), err)
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements stdio.File.Write.
func (f *File) Write(p []byte) (int, error) {
	n, err := f.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("billyfs: write %q: %w", f.file.Name(), err)
	}
	return n, nil
}

// Seek implements stdio.File.Seek.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	pos, err := f.file.Seek(offset, whence)
	if err != nil {
		return pos, fmt.Errorf("billyfs: seek %q off=%d whence=%d: %w", f.file.Name(), offset, whence, err)
	}
	return pos, nil
}

// Close implements stdio.File.Close.
func (f *File) Close() error {
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("billyfs: close %q: %w", f.file.Name(), err)
	}
	return nil
}
