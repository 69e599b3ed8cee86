// Package file implements a local filesystem data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens a single file from the local disk. A missing file surfaces as
// an error satisfying errors.Is(err, os.ErrNotExist), which the pipeline
// treats as fatal for that entity only.
type Local struct{ path string }

// NewLocal binds a Local source to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the file. A canceled context returns immediately without
// touching the filesystem.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
