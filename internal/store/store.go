// Package store is the in-process document store behind the billing API. It
// keeps users, medicines and bills in memory and answers filtered, paginated
// queries plus the dashboard aggregates.
package store

import (
	"sync"
	"time"

	"medbill/m/domain"
)

// Store holds the three collections. All methods are safe for concurrent use;
// each runs under one mutex, so a multi-item bill is checked and applied as a
// single step with respect to other store calls.
type Store struct {
	mu sync.RWMutex

	users     *collection[domain.User]
	medicines *collection[domain.Medicine]
	bills     *collection[domain.Bill]

	billNumbers map[string]struct{}
	billSeq     int

	now     func() time.Time
	loc     *time.Location
	taxRate float64
}

type Option func(*Store)

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the zone that defines "today" and "this month" for the
// dashboard.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithTaxRate(rate float64) Option {
	return func(s *Store) { s.taxRate = rate }
}

// New returns an empty store. Seed data is loaded by the caller.
func New(opts ...Option) *Store {
	s := &Store{
		users: newCollection(
			func(u *domain.User) string { return u.ID },
			nil,
			nil,
		),
		medicines: newCollection(
			func(m *domain.Medicine) string { return m.ID },
			nil,
			nil,
		),
		bills: newCollection(
			func(b *domain.Bill) string { return b.ID },
			cloneBill,
			func(a, b *domain.Bill) bool { return a.CreatedAt.After(b.CreatedAt) },
		),
		billNumbers: make(map[string]struct{}),
		now:         time.Now,
		loc:         time.Local,
		taxRate:     domain.DefaultTaxRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() time.Time {
	return s.now().In(s.loc)
}

func cloneBill(b domain.Bill) domain.Bill {
	b.Items = append([]domain.BillItem(nil), b.Items...)
	return b
}
