//go:build !unix && !windows

package stdio

var platformFS FS = LocalFS{}
