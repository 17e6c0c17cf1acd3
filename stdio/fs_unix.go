//go:build unix

package stdio

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

var platformFS FS = sysFS{}

// sysFS calls the POSIX primitives directly.
type sysFS struct{}

func (sysFS) Open(path string, flag int, perm uint32) (File, error) {
	var (
		fd  int
		err error
	)
	for {
		fd, err = unix.Open(path, flag|unix.O_CLOEXEC, perm)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &sysFile{fd: fd, name: path}, nil
}

type sysFile struct {
	fd   int
	name string
}

func (f *sysFile) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(f.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", f.name, err)
		}
		if n == 0 && len(p) > 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

func (f *sysFile) Write(p []byte) (int, error) {
	for {
		n, err := unix.Write(f.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("write %s: %w", f.name, err)
		}
		return n, nil
	}
}

func (f *sysFile) Seek(offset int64, whence int) (int64, error) {
	off, err := unix.Seek(f.fd, offset, whence)
	if err != nil {
		return 0, fmt.Errorf("seek %s: %w", f.name, err)
	}
	return off, nil
}

func (f *sysFile) Close() error {
	if err := unix.Close(f.fd); err != nil {
		return fmt.Errorf("close %s: %w", f.name, err)
	}
	f.fd = -1
	return nil
}

// Fd returns the raw descriptor.
func (f *sysFile) Fd() uintptr {
	return uintptr(f.fd)
}
