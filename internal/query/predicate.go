// Package query holds the filter and pagination vocabulary shared by the
// document store and its callers. Predicates name the field they address so a
// backend other than a linear scan can translate them.
package query

import (
	"strings"
	"time"
)

// Field names a record attribute of type V and knows how to read it.
type Field[T, V any] struct {
	Name string
	Get  func(T) V
}

// Predicate is a single condition on a record. The set of implementations is
// closed: Equal, Contains, TextSearch, Between, TimeBetween and GreaterThan.
type Predicate[T any] interface {
	Match(rec T) bool
	isPredicate()
}

// Filter is a conjunction of predicates. The empty filter matches everything.
type Filter[T any] []Predicate[T]

func (f Filter[T]) Match(rec T) bool {
	for _, p := range f {
		if !p.Match(rec) {
			return false
		}
	}
	return true
}

// And returns a new filter with p appended.
func (f Filter[T]) And(p ...Predicate[T]) Filter[T] {
	out := make(Filter[T], 0, len(f)+len(p))
	out = append(out, f...)
	return append(out, p...)
}

// Equal matches records whose field equals Value exactly.
type Equal[T any, V comparable] struct {
	Field Field[T, V]
	Value V
}

func (p Equal[T, V]) Match(rec T) bool { return p.Field.Get(rec) == p.Value }
func (Equal[T, V]) isPredicate()       {}

// Contains matches when Substr occurs in the field, ignoring case.
type Contains[T any] struct {
	Field  Field[T, string]
	Substr string
}

func (p Contains[T]) Match(rec T) bool {
	return strings.Contains(strings.ToLower(p.Field.Get(rec)), strings.ToLower(p.Substr))
}
func (Contains[T]) isPredicate() {}

// TextSearch matches when Term occurs, ignoring case, in any of Fields.
// There is no ranking: matches keep the collection's natural order.
type TextSearch[T any] struct {
	Fields []Field[T, string]
	Term   string
}

func (p TextSearch[T]) Match(rec T) bool {
	term := strings.ToLower(p.Term)
	for _, f := range p.Fields {
		if strings.Contains(strings.ToLower(f.Get(rec)), term) {
			return true
		}
	}
	return false
}
func (TextSearch[T]) isPredicate() {}

// Between matches Min <= field <= Max. A nil bound is open.
type Between[T any] struct {
	Field Field[T, float64]
	Min   *float64
	Max   *float64
}

func (p Between[T]) Match(rec T) bool {
	v := p.Field.Get(rec)
	if p.Min != nil && v < *p.Min {
		return false
	}
	if p.Max != nil && v > *p.Max {
		return false
	}
	return true
}
func (Between[T]) isPredicate() {}

// TimeBetween matches From <= field <= To. A nil bound is open.
type TimeBetween[T any] struct {
	Field Field[T, time.Time]
	From  *time.Time
	To    *time.Time
}

func (p TimeBetween[T]) Match(rec T) bool {
	v := p.Field.Get(rec)
	if p.From != nil && v.Before(*p.From) {
		return false
	}
	if p.To != nil && v.After(*p.To) {
		return false
	}
	return true
}
func (TimeBetween[T]) isPredicate() {}

// GreaterThan matches field > Bound.
type GreaterThan[T any] struct {
	Field Field[T, float64]
	Bound float64
}

func (p GreaterThan[T]) Match(rec T) bool { return p.Field.Get(rec) > p.Bound }
func (GreaterThan[T]) isPredicate()       {}
