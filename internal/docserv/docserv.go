// Package docserv implements the collection-agnostic document service every
// domain controller is a thin specialization of. The create pipeline runs
// schema validation, then an optional business-rule hook, then persistence;
// the remaining operations are id-addressed reads and writes with an
// existence pre-check.
package docserv

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/arjunvn/shopstack/internal/schema"
	"github.com/arjunvn/shopstack/internal/store"
)

// HookResult is the verdict of a business-rule hook. Invalid carries a
// human-readable reason; valid may replace the candidate data entirely.
type HookResult struct {
	Valid   bool
	Message string
	Data    store.Document
}

// Hook is the extension point invoked between validation and persistence.
// A returned error means the hook itself failed (surfaced as internal), as
// opposed to rejecting the data.
type Hook func(ctx context.Context, data store.Document) (HookResult, error)

func Accept(data store.Document) HookResult {
	return HookResult{Valid: true, Data: data}
}

func Reject(message string) HookResult {
	return HookResult{Valid: false, Message: message}
}

// Result is the status-coded outcome of a document operation.
type Result struct {
	Status  int                 `json:"-"`
	ID      string              `json:"id,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []schema.FieldError `json:"-"`
	Data    store.Document      `json:"-"`
}

type Service struct {
	store store.Store
	log   *zap.Logger
}

func New(st store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log}
}

// List returns a page of documents. Nothing found is an empty page, not an
// error; only connectivity failures propagate.
func (s *Service) List(ctx context.Context, collection string, q store.ListQuery) ([]store.Document, error) {
	docs, err := s.store.List(ctx, collection, q.Normalize())
	if err != nil {
		s.log.Error("error fetching documents", zap.String("collection", collection), zap.Error(err))
		return nil, err
	}
	return docs, nil
}

// Create validates data against sch (when supplied), passes it through hook
// (when supplied), and persists the survivor. Validation failures and hook
// rejections never reach the store.
func (s *Service) Create(ctx context.Context, collection string, data store.Document, sch *schema.Schema, hook Hook) Result {
	if sch != nil {
		clean, ferrs := sch.Validate(data)
		if len(ferrs) > 0 {
			return Result{Status: 400, Errors: ferrs}
		}
		data = clean
	}

	if hook != nil {
		res, err := hook(ctx, data)
		if err != nil {
			s.log.Error("error running create hook", zap.String("collection", collection), zap.Error(err))
			return Result{Status: 500, Message: "Internal server error"}
		}
		if !res.Valid {
			return Result{Status: 400, Message: res.Message}
		}
		if res.Data != nil {
			data = res.Data
		}
	}

	id, err := s.store.Insert(ctx, collection, data)
	if err != nil {
		s.log.Error("error posting document", zap.String("collection", collection), zap.Error(err))
		return Result{Status: 500, Message: "Internal server error"}
	}

	return Result{
		Status:  201,
		ID:      id,
		Message: singular(collection) + " added successfully",
	}
}

// FindByID treats a missing document as a normal 404 outcome.
func (s *Service) FindByID(ctx context.Context, collection, id string) Result {
	doc, err := s.store.FindByID(ctx, collection, id)
	if err == store.ErrNotFound {
		return Result{Status: 404, Message: singular(collection) + " not found"}
	}
	if err != nil {
		s.log.Error("error finding document", zap.String("collection", collection), zap.Error(err))
		return Result{Status: 500, Message: "Internal server error"}
	}
	return Result{Status: 200, Data: doc}
}

// UpdateByID applies a partial field update after an existence check. Update
// payloads are not re-validated against the collection schema; callers that
// need tighter semantics validate before calling.
func (s *Service) UpdateByID(ctx context.Context, collection, id string, fields store.Document) Result {
	if _, err := s.store.FindByID(ctx, collection, id); err != nil {
		if err == store.ErrNotFound {
			return Result{Status: 404, Message: singular(collection) + " not found"}
		}
		s.log.Error("error updating document", zap.String("collection", collection), zap.Error(err))
		return Result{Status: 500, Message: "Internal server error"}
	}

	if err := s.store.UpdateByID(ctx, collection, id, fields); err != nil {
		if err == store.ErrNotFound {
			return Result{Status: 404, Message: singular(collection) + " not found"}
		}
		s.log.Error("error updating document", zap.String("collection", collection), zap.Error(err))
		return Result{Status: 500, Message: "Internal server error"}
	}
	return Result{Status: 200, Message: singular(collection) + " updated successfully."}
}

func (s *Service) DeleteByID(ctx context.Context, collection, id string) Result {
	if _, err := s.store.FindByID(ctx, collection, id); err != nil {
		if err == store.ErrNotFound {
			return Result{Status: 404, Message: singular(collection) + " not found"}
		}
		s.log.Error("error deleting document", zap.String("collection", collection), zap.Error(err))
		return Result{Status: 500, Message: "Internal server error"}
	}

	if err := s.store.DeleteByID(ctx, collection, id); err != nil {
		if err == store.ErrNotFound {
			return Result{Status: 404, Message: singular(collection) + " not found"}
		}
		s.log.Error("error deleting document", zap.String("collection", collection), zap.Error(err))
		return Result{Status: 500, Message: "Internal server error"}
	}
	return Result{Status: 200, Message: singular(collection) + " deleted successfully"}
}

// singular trims the plural s from a collection name for user-facing
// messages ("orders" -> "order").
func singular(collection string) string {
	return strings.TrimSuffix(collection, "s")
}
