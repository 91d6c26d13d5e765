package records

import (
	"context"
	"fmt"

	"github.com/dalemusser/strataministry/internal/domain/models"
)

// Client reads content collections from the record store.
//
// Records come back as loosely-typed field maps. The "active" field in
// particular is not guaranteed to be a native boolean, so callers must run
// every row through normalize.Active even when ActiveField is set.
type Client interface {
	FetchCollection(ctx context.Context, q Query) ([]models.Record, error)
}

// Order is a single sort key.
type Order struct {
	Field     string
	Ascending bool
}

// Query describes one filtered, ordered collection read.
type Query struct {
	Table string

	// Filters are equality filters (field == value).
	Filters map[string]any

	// OrderBy is optional. Ties keep store-native order.
	OrderBy *Order

	// Limit caps the number of rows returned; 0 means no limit.
	Limit int64

	// ActiveField, when set, asks the store to pre-filter to rows whose
	// field is true or "true". This is best effort only.
	ActiveField string
}

// FetchError wraps a failed collection read.
type FetchError struct {
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
