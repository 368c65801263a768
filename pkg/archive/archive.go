// Package archive numbers exported drawings and keeps a record of each.
//
// Every export gets the next sequential number. The number is used in the
// file names and in the signature stamped on the drawing, so a plot can be
// traced back to its seed and parameters.
//
// Implementations:
//   - [SQLite]: a local database file, the default for the CLI
//   - [Mongo]: a shared collection for several machines feeding one plotter
//   - [Memory]: process-local, for tests and when archiving is disabled
package archive

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for archive operations.
var (
	// ErrNotFound is returned when no record has the requested number.
	ErrNotFound = errors.New("export not found")

	// ErrConflict is returned when a record's number is already taken.
	ErrConflict = errors.New("export number already taken")
)

// Record describes one exported drawing.
type Record struct {
	Number       int       `json:"number" bson:"number"`
	ID           string    `json:"id" bson:"id"`
	Seed         uint64    `json:"seed" bson:"-"` // stored as text by Mongo
	Signature    string    `json:"signature,omitempty" bson:"signature,omitempty"`
	Instructions int       `json:"instructions" bson:"instructions"`
	DrawLength   float64   `json:"draw_length" bson:"draw_length"`
	Files        []string  `json:"files" bson:"files"`
	Config       string    `json:"config,omitempty" bson:"config,omitempty"` // options as JSON
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Store persists export records.
type Store interface {
	// Next returns the number the next recorded export will receive.
	// Numbers start at 1.
	Next(ctx context.Context) (int, error)
	// Record stores rec. A zero Number is replaced by [Store.Next]; a zero
	// CreatedAt by the current time. Taken numbers return [ErrConflict].
	Record(ctx context.Context, rec *Record) error
	// Get returns the record with the given number or [ErrNotFound].
	Get(ctx context.Context, number int) (Record, error)
	// List returns up to limit records, newest first. A limit <= 0 returns
	// all records.
	List(ctx context.Context, limit int) ([]Record, error)
	// Close releases backend resources.
	Close() error
}

// prepare fills the defaults of rec before it is stored.
func prepare(ctx context.Context, s Store, rec *Record) error {
	if rec.Number == 0 {
		n, err := s.Next(ctx)
		if err != nil {
			return err
		}
		rec.Number = n
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	// Stores keep millisecond precision.
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Millisecond)
	if rec.Files == nil {
		rec.Files = []string{}
	}
	return nil
}
