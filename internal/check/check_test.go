package check_test

import (
	"testing"

	"github.com/misachi/sostdio/internal/check"
	"gotest.tools/v3/assert"
)

func TestCheck(t *testing.T) {
	check.Check(true, "never fires")
	check.Checkf(true, "never fires %d", 1)

	assert.Assert(t, panics(func() { check.Check(false, "boom") }))
	assert.Assert(t, panics(func() { check.Checkf(false, "boom %d", 2) }))
}

func panics(f func()) (did bool) {
	defer func() {
		if r := recover(); r != nil {
			did = true
		}
	}()
	f()
	return false
}
