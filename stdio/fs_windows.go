//go:build windows

package stdio

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/windows"
)

var platformFS FS = sysFS{}

// sysFS calls the Win32 file handle primitives directly.
type sysFS struct{}

func (sysFS) Open(path string, flag int, perm uint32) (File, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var access uint32
	switch flag & accessMask {
	case O_RDONLY:
		access = windows.GENERIC_READ
	case O_WRONLY:
		access = windows.GENERIC_WRITE
	case O_RDWR:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	}
	if flag&O_APPEND != 0 {
		// Appending handles may only extend the file.
		access &^= windows.GENERIC_WRITE
		access |= windows.FILE_APPEND_DATA
	}

	var disposition uint32
	switch {
	case flag&O_CREATE != 0 && flag&O_TRUNC != 0:
		disposition = windows.CREATE_ALWAYS
	case flag&O_CREATE != 0:
		disposition = windows.OPEN_ALWAYS
	case flag&O_TRUNC != 0:
		disposition = windows.TRUNCATE_EXISTING
	default:
		disposition = windows.OPEN_EXISTING
	}

	attrs := uint32(windows.FILE_ATTRIBUTE_NORMAL)
	if perm&0o200 == 0 {
		attrs = windows.FILE_ATTRIBUTE_READONLY
	}

	h, err := windows.CreateFile(name, access, windows.FILE_SHARE_READ, nil, disposition, attrs, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &sysFile{h: h, name: path}, nil
}

type sysFile struct {
	h    windows.Handle
	name string
}

func (f *sysFile) Read(p []byte) (int, error) {
	var done uint32
	err := windows.ReadFile(f.h, p, &done, nil)
	switch {
	case errors.Is(err, windows.ERROR_HANDLE_EOF), errors.Is(err, windows.ERROR_BROKEN_PIPE):
		return 0, io.EOF
	case err != nil:
		return 0, fmt.Errorf("read %s: %w", f.name, err)
	case done == 0 && len(p) > 0:
		return 0, io.EOF
	}
	return int(done), nil
}

func (f *sysFile) Write(p []byte) (int, error) {
	var done uint32
	if err := windows.WriteFile(f.h, p, &done, nil); err != nil {
		return int(done), fmt.Errorf("write %s: %w", f.name, err)
	}
	return int(done), nil
}

func (f *sysFile) Seek(offset int64, whence int) (int64, error) {
	off, err := windows.Seek(f.h, offset, whence)
	if err != nil {
		return 0, fmt.Errorf("seek %s: %w", f.name, err)
	}
	return off, nil
}

func (f *sysFile) Close() error {
	if err := windows.CloseHandle(f.h); err != nil {
		return fmt.Errorf("close %s: %w", f.name, err)
	}
	f.h = windows.InvalidHandle
	return nil
}

// Fd returns the raw handle.
func (f *sysFile) Fd() uintptr {
	return uintptr(f.h)
}
