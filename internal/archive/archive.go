package archive

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Reader loads archive files through a filesystem abstraction. It holds no
// mutable state and is safe for concurrent use.
type Reader struct {
	fs     afero.Fs
	logger *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Reader over fsys. A nil fsys selects the OS filesystem.
func New(fsys afero.Fs, opts ...Option) *Reader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	r := &Reader{fs: fsys, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Fs returns the underlying filesystem.
func (r *Reader) Fs() afero.Fs { return r.fs }

// Exists reports whether path names a regular file.
func (r *Reader) Exists(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadAll returns the decompressed content of path. Missing or unreadable
// files wrap core.ErrFileAccess.
func (r *Reader) ReadAll(path string) ([]byte, error) {
	raw, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: not found", core.ErrFileAccess, path)
		}

		return nil, fmt.Errorf("%w: %s: %w", core.ErrFileAccess, path, err)
	}

	data, c, err := Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrFileAccess, path, err)
	}

	r.logger.Debug("read archive file",
		zap.String("path", path),
		zap.Stringer("compression", c),
		zap.Int("bytes", len(data)))

	return data, nil
}
