package stdio

import "errors"

var (
	// ErrInvalidMode is returned by Open for an unrecognised mode string.
	ErrInvalidMode = errors.New("stdio: invalid mode")
	// ErrOpenFailed wraps the reason a handle could not be acquired.
	ErrOpenFailed = errors.New("stdio: open failed")
	// ErrIO marks a failed write, flush or seek.
	ErrIO = errors.New("stdio: i/o error")
	// ErrClosed is returned by every operation on a closed Stream.
	ErrClosed = errors.New("stdio: stream closed")
)

type stateKind uint8

const (
	stateNone stateKind = iota
	stateEOF
	stateFailed
)

// termState is the terminal condition of a stream. Once set it only ever
// moves from none to eof/failed, or from eof to failed.
type termState struct {
	kind  stateKind
	cause error
}

func (t *termState) set(kind stateKind, cause error) {
	if kind > t.kind {
		t.kind, t.cause = kind, cause
	}
}
