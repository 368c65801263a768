package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/hexwalk/pkg/observability"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend  string // "sqlite", "mongo" or "none"
	Path     string // sqlite database file
	URI      string // mongo connection string
	Database string // mongo database
}

// Open returns the store for opts.Backend wrapped with observability
// hooks. The "none" backend keeps records in memory only.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch opts.Backend {
	case "sqlite", "":
		s, err = OpenSQLite(opts.Path)
	case "mongo":
		s, err = OpenMongo(ctx, opts.URI, opts.Database)
	case "none":
		s = NewMemory()
	default:
		return nil, fmt.Errorf("archive: unknown backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return &observed{Store: s, backend: opts.Backend}, nil
}

// observed reports writes to the registered archive hooks.
type observed struct {
	Store
	backend string
}

func (o *observed) Record(ctx context.Context, rec *Record) error {
	start := time.Now()
	err := o.Store.Record(ctx, rec)
	observability.Archive().OnRecord(ctx, o.backend, rec.Number, time.Since(start), err)
	return err
}
