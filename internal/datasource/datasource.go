// Package datasource abstracts where a raw extract comes from. The pipeline
// only needs a byte stream per entity; the concrete source (local file
// today) stays behind this interface.
package datasource

import (
	"context"
	"io"
)

// Source opens a raw extract for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
