package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Mem is an in-memory Store used by tests in place of a live database. It
// honors the same List, not-found and conditional-write semantics as the
// mongo implementation.
type Mem struct {
	mu   sync.Mutex
	next int
	data map[string]map[string]Document
}

func NewMem() *Mem {
	return &Mem{data: map[string]map[string]Document{}}
}

func (s *Mem) coll(name string) map[string]Document {
	c, ok := s.data[name]
	if !ok {
		c = map[string]Document{}
		s.data[name] = c
	}
	return c
}

func (s *Mem) List(_ context.Context, collection string, q ListQuery) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := []Document{}
	upper := q.Search + string(utf8.MaxRune)
	for id, doc := range s.coll(collection) {
		if q.Search != "" {
			name := cast.ToString(doc[SearchField])
			if name < q.Search || name >= upper {
				continue
			}
		}
		out := copyDoc(doc)
		out["id"] = id
		docs = append(docs, out)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		less := fieldLess(docs[i][q.SortField], docs[j][q.SortField])
		if q.Descending {
			return !less
		}
		return less
	})

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *Mem) Insert(_ context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := fmt.Sprintf("%024x", s.next)
	stored := copyDoc(doc)
	delete(stored, "id")
	s.coll(collection)[id] = stored
	return id, nil
}

func (s *Mem) FindByID(_ context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.coll(collection)[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyDoc(doc)
	out["id"] = id
	return out, nil
}

func (s *Mem) FindOneByField(_ context.Context, collection, field string, value any) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, doc := range s.coll(collection) {
		if doc[field] == value {
			out := copyDoc(doc)
			out["id"] = id
			return out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Mem) UpdateByID(_ context.Context, collection, id string, fields Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.coll(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		doc[k] = copyValue(v)
	}
	return nil
}

func (s *Mem) DeleteByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	if _, ok := c[id]; !ok {
		return ErrNotFound
	}
	delete(c, id)
	return nil
}

func (s *Mem) DecrementField(_ context.Context, collection, id, field string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.coll(collection)[id]
	if !ok {
		return ErrConditionFailed
	}
	cur := cast.ToInt(doc[field])
	if cur < n {
		return ErrConditionFailed
	}
	doc[field] = cur - n
	return nil
}

func (s *Mem) AdjustField(_ context.Context, collection, id, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.coll(collection)[id]
	if !ok {
		return ErrNotFound
	}
	doc[field] = cast.ToInt(doc[field]) + delta
	return nil
}

// fieldLess orders two field values numerically when both are numbers and
// lexicographically otherwise. Missing fields sort first.
func fieldLess(a, b any) bool {
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		return af < bf
	}
	return cast.ToString(a) < cast.ToString(b)
}

func copyDoc(doc Document) Document {
	out := Document{}
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case Document:
		return copyDoc(t)
	case map[string]any:
		return map[string]any(copyDoc(t))
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	case []Document:
		s := make([]Document, len(t))
		for i, e := range t {
			s[i] = copyDoc(e)
		}
		return s
	default:
		return v
	}
}
