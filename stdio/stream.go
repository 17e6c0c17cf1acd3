package stdio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

type op uint8

const (
	opNone op = iota
	opRead
	opWrite
)

// Stream is a file handle with one fixed size block buffering each
// direction. A Stream has a single owner; it does no locking.
type Stream struct {
	file File
	name string

	rbuf *block
	wbuf *block

	// Offsets recorded by the byte operations, seek and flush. They are
	// bookkeeping only and can trail the OS file pointer.
	roff int64
	woff int64

	state    termState
	readOnly bool
	last     op
	log      *slog.Logger
}

var (
	_ io.Reader     = (*Stream)(nil)
	_ io.Writer     = (*Stream)(nil)
	_ io.ByteReader = (*Stream)(nil)
	_ io.ByteWriter = (*Stream)(nil)
	_ io.Seeker     = (*Stream)(nil)
	_ io.Closer     = (*Stream)(nil)
)

// Open opens path with one of the modes r, r+, w, w+, a, a+. An unknown
// mode fails with ErrInvalidMode before the filesystem is touched; a handle
// that cannot be acquired fails with ErrOpenFailed.
func Open(path, mode string, opts ...Option) (*Stream, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Stream{
		name:     path,
		rbuf:     newBlock(cfg.size),
		wbuf:     newBlock(cfg.size),
		readOnly: m.ReadOnly,
		log:      cfg.logger,
	}

	f, err := cfg.fs.Open(path, m.Flag, cfg.perm)
	if err != nil {
		s.release()
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}
	s.file = f

	s.log.Debug("opened stream", "path", path, "mode", mode, "bufsize", cfg.size)
	return s, nil
}

// Name returns the path the stream was opened with.
func (s *Stream) Name() string {
	return s.name
}

// File returns the underlying handle, or nil once the stream is closed.
// Platform handles also implement interface{ Fd() uintptr }.
func (s *Stream) File() File {
	return s.file
}

func (s *Stream) closed() bool {
	return s.file == nil
}

// Close flushes pending writes, then closes the handle. The buffers and the
// handle are released even when either step fails; both failures are
// reported.
func (s *Stream) Close() error {
	if s.closed() {
		return ErrClosed
	}

	var flushErr error
	if !s.wbuf.empty() {
		flushErr = s.Flush()
	}

	closeErr := s.file.Close()
	if closeErr != nil {
		closeErr = fmt.Errorf("%w: close: %w", ErrIO, closeErr)
	}
	s.release()

	err := errors.Join(flushErr, closeErr)
	if err != nil {
		s.log.Debug("close failed", "path", s.name, "err", err)
	}
	return err
}

func (s *Stream) release() {
	s.file = nil
	s.rbuf = nil
	s.wbuf = nil
}

// GetChar returns the next byte. When the read block is exhausted it is
// refilled by a single OS read; a read that yields nothing, for whatever
// reason, records end of stream and returns io.EOF.
func (s *Stream) GetChar() (byte, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	if s.rbuf.empty() {
		n, err := s.rbuf.fill(s.file.Read)
		if n == 0 {
			if err == nil {
				err = io.EOF
			}
			s.state.set(stateEOF, err)
			s.log.Debug("end of stream", "path", s.name, "offset", s.roff, "cause", err)
			return 0, io.EOF
		}
	}

	c := s.rbuf.next()
	s.roff++
	s.last = opRead
	return c, nil
}

// PutChar queues c. A full write block is written out first; if that fails
// the stream is marked failed and c is not queued.
func (s *Stream) PutChar(c byte) (byte, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	if s.wbuf.full() {
		if err := s.drain(); err != nil {
			s.state.set(stateFailed, err)
			s.log.Debug("writing full block failed", "path", s.name, "err", err)
			return 0, fmt.Errorf("%w: putchar: %w", ErrIO, err)
		}
	}

	s.wbuf.put(c)
	s.woff++
	s.last = opWrite
	return c, nil
}

// drain writes every pending byte, reissuing the write for whatever a
// partial write left behind. Bytes that reached the OS are dropped from the
// block even when a later write fails.
func (s *Stream) drain() error {
	for !s.wbuf.empty() {
		pending := s.wbuf.pending()
		n, err := s.file.Write(pending)
		if n > len(pending) {
			n = len(pending)
		}
		if n > 0 {
			s.wbuf.consume(n)
		}
		if err != nil {
			return err
		}
		if n <= 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// ReadBlock reads count elements of size bytes into dst and returns how many
// whole elements arrived. A trailing partial element is copied but not
// counted. count is clamped to the elements that fit in dst.
func (s *Stream) ReadBlock(dst []byte, size, count int) int {
	if s.closed() || size <= 0 || count <= 0 {
		return 0
	}
	if fit := len(dst) / size; count > fit {
		count = fit
	}

	want, got := size*count, 0
	for got < want {
		c, err := s.GetChar()
		if err != nil {
			s.state.set(stateEOF, err)
			break
		}
		dst[got] = c
		got++
	}
	return got / size
}

// WriteBlock is the PutChar counterpart of ReadBlock.
func (s *Stream) WriteBlock(src []byte, size, count int) int {
	if s.closed() || size <= 0 || count <= 0 {
		return 0
	}
	if fit := len(src) / size; count > fit {
		count = fit
	}

	want, put := size*count, 0
	for put < want {
		if _, err := s.PutChar(src[put]); err != nil {
			s.state.set(stateEOF, err)
			break
		}
		put++
	}
	return put / size
}

// Flush writes out the pending bytes. A successful flush that wrote
// anything also rewinds the read side, see resetAfterFlush.
func (s *Stream) Flush() error {
	if s.closed() {
		return ErrClosed
	}
	if s.wbuf.empty() {
		return nil
	}

	if err := s.drain(); err != nil {
		s.state.set(stateFailed, err)
		s.log.Debug("flush failed", "path", s.name, "pending", s.wbuf.n, "err", err)
		return fmt.Errorf("%w: flush: %w", ErrIO, err)
	}
	s.resetAfterFlush()
	return nil
}

// resetAfterFlush zeroes the read cursor and both offsets together with the
// write block. Only the cursor moves on the read side: unread bytes stay
// counted and are delivered again from the start of the block.
func (s *Stream) resetAfterFlush() {
	s.rbuf.rewind()
	s.wbuf.reset()
	s.roff = 0
	s.woff = 0
}

// Seek flushes pending writes and moves the OS file pointer, returning the
// new absolute position. If the last operation was a read the unread bytes
// are discarded. On success both offsets hold the position reported by the
// OS; on failure they are left alone.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	if !s.wbuf.empty() {
		if err := s.Flush(); err != nil {
			return 0, err
		}
	}
	if s.last == opRead {
		s.rbuf.discard()
	}

	pos, err := s.file.Seek(offset, whence)
	if err != nil {
		s.log.Debug("seek failed", "path", s.name, "offset", offset, "whence", whence, "err", err)
		return 0, fmt.Errorf("%w: seek: %w", ErrIO, err)
	}
	s.roff = pos
	s.woff = pos
	return pos, nil
}

// Tell reports the read offset for streams opened with mode r and the write
// offset otherwise. It does not adjust for buffered bytes: it is the last
// offset recorded by GetChar, PutChar, Seek or Flush.
func (s *Stream) Tell() int64 {
	if s.readOnly {
		return s.roff
	}
	return s.woff
}

// EOF reports whether any terminal condition, end of stream or failure, has
// been recorded. It stays true until the stream is closed.
func (s *Stream) EOF() bool {
	return s.state.kind != stateNone
}

// Failed reports whether a write, flush or put failure has been recorded.
// A failed stream also reports EOF.
func (s *Stream) Failed() bool {
	return s.state.kind == stateFailed
}

// Read implements io.Reader on top of ReadBlock.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed() {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if n := s.ReadBlock(p, 1, len(p)); n > 0 {
		return n, nil
	}
	return 0, io.EOF
}

// Write implements io.Writer on top of WriteBlock.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed() {
		return 0, ErrClosed
	}
	n := s.WriteBlock(p, 1, len(p))
	if n < len(p) {
		cause := s.state.cause
		if cause == nil {
			cause = io.ErrShortWrite
		}
		return n, fmt.Errorf("%w: write: %w", ErrIO, cause)
	}
	return n, nil
}

// ReadByte implements io.ByteReader.
func (s *Stream) ReadByte() (byte, error) {
	return s.GetChar()
}

// WriteByte implements io.ByteWriter.
func (s *Stream) WriteByte(c byte) error {
	_, err := s.PutChar(c)
	return err
}
