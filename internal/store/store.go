package store

import (
	"context"
	"errors"
)

// Document is a single persisted record: an arbitrary field map identified by
// a generated id. Implementations surface the id under the "id" key.
type Document map[string]any

var (
	ErrNotFound        = errors.New("document not found")
	ErrConditionFailed = errors.New("conditional write failed")
)

const (
	// DefaultPageSize mirrors the documented list default.
	DefaultPageSize = 2
	// DefaultSortField is used when no sort field is supplied.
	DefaultSortField = "fullName"
	// SearchField is the fixed field a search query matches and sorts on.
	SearchField = "name"
)

// ListQuery carries paging, sorting and prefix-search options for List.
type ListQuery struct {
	Limit      int
	SortField  string
	Descending bool
	Search     string
}

// Normalize applies the documented defaults. A search term overrides the sort
// field: results are ordered ascending on the search field.
func (q ListQuery) Normalize() ListQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.SortField == "" {
		q.SortField = DefaultSortField
	}
	if q.Search != "" {
		q.SortField = SearchField
		q.Descending = false
	}
	return q
}

// Store is the document store capability every domain entity is persisted
// through. Implementations must treat collections as independent namespaces
// and must not interpret document contents.
type Store interface {
	// List returns at most q.Limit documents ordered by q.SortField. A
	// non-empty q.Search restricts results to documents whose SearchField
	// value lies in [q.Search, q.Search+MaxRune). An empty result is not an
	// error.
	List(ctx context.Context, collection string, q ListQuery) ([]Document, error)

	// Insert persists doc under a generated id and returns the id.
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// FindByID returns the document or ErrNotFound.
	FindByID(ctx context.Context, collection, id string) (Document, error)

	// FindOneByField returns one document whose field equals value, or
	// ErrNotFound.
	FindOneByField(ctx context.Context, collection, field string, value any) (Document, error)

	// UpdateByID sets the given fields on the document, leaving the rest
	// untouched. Returns ErrNotFound when the id does not exist.
	UpdateByID(ctx context.Context, collection, id string, fields Document) error

	// DeleteByID removes the document or returns ErrNotFound.
	DeleteByID(ctx context.Context, collection, id string) error

	// DecrementField atomically subtracts n from a numeric field, but only
	// when the current value is at least n; otherwise ErrConditionFailed.
	DecrementField(ctx context.Context, collection, id, field string, n int) error

	// AdjustField adds delta to a numeric field with no precondition. Used to
	// compensate decrements that must be undone.
	AdjustField(ctx context.Context, collection, id, field string, delta int) error
}
