package stdio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Open flags understood by every FS. They alias the os package values so
// that os and go-billy backed filesystems can take them unchanged.
const (
	O_RDONLY int = os.O_RDONLY
	O_WRONLY     = os.O_WRONLY
	O_RDWR       = os.O_RDWR
	O_APPEND     = os.O_APPEND
	O_CREATE     = os.O_CREATE
	O_TRUNC      = os.O_TRUNC
)

const accessMask = O_RDONLY | O_WRONLY | O_RDWR

// File is the set of raw primitives a Stream drives. Read must return
// (0, io.EOF) once the end of the file is reached.
type File interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}

// FS acquires Files. Each platform build provides one default, see DefaultFS.
type FS interface {
	Open(path string, flag int, perm uint32) (File, error)
}

// DefaultFS returns the FS selected for the target platform.
func DefaultFS() FS {
	return platformFS
}

// LocalFS opens *os.File handles. It works on every platform and is the
// default where no raw syscall implementation exists.
type LocalFS struct{}

func (LocalFS) Open(path string, flag int, perm uint32) (File, error) {
	f, err := os.OpenFile(path, flag, os.FileMode(perm))
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	return &localFile{f}, nil
}

type localFile struct {
	*os.File
}

func (f *localFile) Read(p []byte) (int, error) {
	n, err := f.File.Read(p)
	if n == 0 && err == nil && len(p) > 0 {
		return 0, io.EOF
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("Read: %w", err)
	}
	return n, err
}
