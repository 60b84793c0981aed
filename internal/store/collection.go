package store

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medbill/m/internal/query"
)

// collection is a linear-scan document set. It is not safe for concurrent use;
// Store serialises access.
type collection[T any] struct {
	docs  []*T
	byID  map[string]*T
	idOf  func(*T) string
	clone func(T) T
	// less orders query results; nil keeps insertion order.
	less func(a, b *T) bool
}

func newCollection[T any](idOf func(*T) string, clone func(T) T, less func(a, b *T) bool) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{
		byID:  make(map[string]*T),
		idOf:  idOf,
		clone: clone,
		less:  less,
	}
}

// newID returns a fresh ObjectID hex string not yet used in the collection.
func (c *collection[T]) newID() string {
	for {
		id := primitive.NewObjectID().Hex()
		if _, taken := c.byID[id]; !taken {
			return id
		}
	}
}

func (c *collection[T]) insert(doc *T) {
	c.docs = append(c.docs, doc)
	c.byID[c.idOf(doc)] = doc
}

func (c *collection[T]) get(id string) (*T, bool) {
	doc, ok := c.byID[id]
	return doc, ok
}

func (c *collection[T]) matching(f query.Filter[T]) []*T {
	out := make([]*T, 0, len(c.docs))
	for _, doc := range c.docs {
		if f.Match(*doc) {
			out = append(out, doc)
		}
	}
	if c.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return c.less(out[i], out[j]) })
	}
	return out
}

func (c *collection[T]) find(f query.Filter[T], page query.Page) []T {
	window := query.Slice(c.matching(f), page)
	out := make([]T, len(window))
	for i, doc := range window {
		out[i] = c.clone(*doc)
	}
	return out
}

// findWithTotal is find plus the number of matches, from a single scan.
func (c *collection[T]) findWithTotal(f query.Filter[T], page query.Page) ([]T, int) {
	matched := c.matching(f)
	window := query.Slice(matched, page)
	out := make([]T, len(window))
	for i, doc := range window {
		out[i] = c.clone(*doc)
	}
	return out, len(matched)
}

func (c *collection[T]) count(f query.Filter[T]) int {
	n := 0
	for _, doc := range c.docs {
		if f.Match(*doc) {
			n++
		}
	}
	return n
}

// all returns every matching document, ordered, without paging.
func (c *collection[T]) all(f query.Filter[T]) []T {
	docs := c.matching(f)
	out := make([]T, len(docs))
	for i, doc := range docs {
		out[i] = c.clone(*doc)
	}
	return out
}
