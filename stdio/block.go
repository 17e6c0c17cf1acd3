package stdio

import "github.com/misachi/sostdio/internal/check"

// BLOCKSIZE is the default capacity of each direction's buffer.
const BLOCKSIZE = 4096

// block is a fixed capacity byte buffer with a cursor. On the read side n
// counts the unread bytes starting at pos. On the write side the pending
// bytes are buf[:n] and pos always equals n.
type block struct {
	buf []byte
	pos int
	n   int
}

func newBlock(size int) *block {
	check.Checkf(size > 0, "block size=%d must be positive", size)
	return &block{buf: make([]byte, size)}
}

func (b *block) invariant() {
	check.Checkf(b.pos >= 0 && b.n >= 0 && b.pos+b.n <= len(b.buf),
		"block pos=%d n=%d exceeds capacity=%d", b.pos, b.n, len(b.buf))
}

// fill replaces the contents with one read of up to cap bytes.
func (b *block) fill(read func([]byte) (int, error)) (int, error) {
	n, err := read(b.buf)
	if n < 0 {
		n = 0
	}
	b.pos, b.n = 0, n
	b.invariant()
	return n, err
}

func (b *block) empty() bool { return b.n == 0 }

func (b *block) full() bool { return b.n == len(b.buf) }

// next delivers the byte under the cursor. The block must not be empty.
func (b *block) next() byte {
	check.Check(b.n > 0, "next on an empty block")
	c := b.buf[b.pos]
	b.pos++
	b.n--
	return c
}

// put appends c after the pending bytes. The block must not be full.
func (b *block) put(c byte) {
	check.Check(b.pos == b.n && !b.full(), "put on a full block")
	b.buf[b.pos] = c
	b.pos++
	b.n++
}

// pending returns the bytes queued by put.
func (b *block) pending() []byte { return b.buf[:b.n] }

// consume drops the first k pending bytes, keeping the rest queued.
func (b *block) consume(k int) {
	check.Checkf(k >= 0 && k <= b.n, "consume k=%d of n=%d", k, b.n)
	copy(b.buf, b.buf[k:b.n])
	b.n -= k
	b.pos = b.n
}

// discard throws away the unread bytes.
func (b *block) discard() { b.n = 0 }

// rewind moves the cursor back to the start without touching n.
func (b *block) rewind() {
	b.pos = 0
	b.invariant()
}

func (b *block) reset() { b.pos, b.n = 0, 0 }
