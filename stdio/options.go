package stdio

import "log/slog"

const defaultPerm = 0o644

type config struct {
	fs     FS
	size   int
	perm   uint32
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		fs:     DefaultFS(),
		size:   BLOCKSIZE,
		perm:   defaultPerm,
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Stream at Open.
type Option func(*config)

// WithFS opens the stream through fs instead of DefaultFS.
func WithFS(fs FS) Option {
	return func(c *config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithBufferSize sets the capacity of both the read and the write block.
// Sizes below one are ignored.
func WithBufferSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithPerm sets the permission bits used when a mode creates the file.
func WithPerm(perm uint32) Option {
	return func(c *config) { c.perm = perm }
}

// WithLogger sends the stream's debug records to logger. Streams are silent
// by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
