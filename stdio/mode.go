package stdio

import "fmt"

// Mode is a parsed open mode string.
type Mode struct {
	Flag     int
	ReadOnly bool
	raw      string
}

func (m Mode) String() string { return m.raw }

var modes = map[string]Mode{
	"r":  {Flag: O_RDONLY, ReadOnly: true},
	"r+": {Flag: O_RDWR},
	"w":  {Flag: O_WRONLY | O_CREATE | O_TRUNC},
	"w+": {Flag: O_RDWR | O_CREATE | O_TRUNC},
	"a":  {Flag: O_WRONLY | O_CREATE | O_APPEND},
	"a+": {Flag: O_RDWR | O_CREATE | O_APPEND},
}

// ParseMode maps one of r, r+, w, w+, a, a+ to its open flags.
func ParseMode(mode string) (Mode, error) {
	m, ok := modes[mode]
	if !ok {
		return Mode{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	m.raw = mode
	return m, nil
}
