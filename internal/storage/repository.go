// Package storage contains storage-agnostic contracts and the ordered batch
// loader. Concrete backends (postgres, sqlite) live in subpackages and
// register themselves with the factory at init time.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Repository is the minimal sink contract: raw DDL execution plus bulk
// append of rows aligned to a column order.
type Repository interface {
	// Exec runs an arbitrary SQL statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// CopyRows appends rows to table using the backend's most efficient
	// bulk primitive and returns the number of rows inserted.
	CopyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// Opener constructs a backend Repository from a DSN and returns a cleanup
// function that releases the connection even on later failure.
type Opener func(ctx context.Context, dsn string) (Repository, func(), error)

// SchemaFn replaces the target schema: drop the four tables in reverse
// dependency order, then recreate them. Runs exactly once per run, before
// any load.
type SchemaFn func(ctx context.Context, repo Repository) error

type backend struct {
	open   Opener
	schema SchemaFn
}

var (
	regMu    sync.RWMutex
	backends = map[string]backend{}
)

// Register installs a backend under kind. Called from backend packages'
// init() functions.
func Register(kind string, open Opener, schema SchemaFn) {
	regMu.Lock()
	defer regMu.Unlock()
	backends[kind] = backend{open: open, schema: schema}
}

// Open constructs the Repository registered under kind.
func Open(ctx context.Context, kind, dsn string) (Repository, func(), error) {
	regMu.RLock()
	b, ok := backends[kind]
	regMu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("no storage backend registered for kind=%q", kind)
	}
	return b.open(ctx, dsn)
}

// ReplaceSchema invokes the registered schema bootstrapper for kind.
func ReplaceSchema(ctx context.Context, kind string, repo Repository) error {
	regMu.RLock()
	b, ok := backends[kind]
	regMu.RUnlock()
	if !ok {
		return fmt.Errorf("no storage backend registered for kind=%q", kind)
	}
	return b.schema(ctx, repo)
}
