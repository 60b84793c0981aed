package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type item struct {
	name   string
	notes  string
	price  float64
	active bool
	at     time.Time
}

var (
	itemName   = Field[item, string]{Name: "name", Get: func(i item) string { return i.name }}
	itemNotes  = Field[item, string]{Name: "notes", Get: func(i item) string { return i.notes }}
	itemPrice  = Field[item, float64]{Name: "price", Get: func(i item) float64 { return i.price }}
	itemActive = Field[item, bool]{Name: "active", Get: func(i item) bool { return i.active }}
	itemAt     = Field[item, time.Time]{Name: "at", Get: func(i item) time.Time { return i.at }}
)

func ptr[V any](v V) *V { return &v }

func TestFilterIsConjunction(t *testing.T) {
	rec := item{name: "Ibuprofen", price: 1.25, active: true}

	assert.True(t, Filter[item]{}.Match(rec), "empty filter matches everything")

	f := Filter[item]{
		Equal[item, bool]{Field: itemActive, Value: true},
		Between[item]{Field: itemPrice, Min: ptr(1.0), Max: ptr(2.0)},
	}
	assert.True(t, f.Match(rec))

	f = f.And(Contains[item]{Field: itemName, Substr: "aspirin"})
	assert.False(t, f.Match(rec))
}

func TestAndDoesNotAlias(t *testing.T) {
	base := make(Filter[item], 0, 4)
	base = append(base, Equal[item, bool]{Field: itemActive, Value: true})

	a := base.And(Contains[item]{Field: itemName, Substr: "a"})
	b := base.And(Contains[item]{Field: itemName, Substr: "b"})

	assert.Len(t, base, 1)
	assert.Equal(t, "a", a[1].(Contains[item]).Substr)
	assert.Equal(t, "b", b[1].(Contains[item]).Substr)
}

func TestContainsIgnoresCase(t *testing.T) {
	p := Contains[item]{Field: itemName, Substr: "PARA"}
	assert.True(t, p.Match(item{name: "Paracetamol 500mg"}))
	assert.False(t, p.Match(item{name: "Ibuprofen"}))
}

func TestTextSearchAnyField(t *testing.T) {
	p := TextSearch[item]{Fields: []Field[item, string]{itemName, itemNotes}, Term: "fever"}
	assert.True(t, p.Match(item{name: "Paracetamol", notes: "Pain reliever and Fever reducer"}))
	assert.True(t, p.Match(item{name: "Fever tabs"}))
	assert.False(t, p.Match(item{name: "Amoxicillin", notes: "Antibiotic"}))
}

func TestBetweenInclusiveAndOpen(t *testing.T) {
	cases := []struct {
		name     string
		min, max *float64
		price    float64
		want     bool
	}{
		{"inside", ptr(1.0), ptr(2.0), 1.25, true},
		{"at min", ptr(1.0), ptr(2.0), 1.0, true},
		{"at max", ptr(1.0), ptr(2.0), 2.0, true},
		{"below", ptr(1.0), ptr(2.0), 0.5, false},
		{"above", ptr(1.0), ptr(2.0), 2.5, false},
		{"open min", nil, ptr(2.0), 0.5, true},
		{"open max", ptr(1.0), nil, 99, true},
		{"open both", nil, nil, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Between[item]{Field: itemPrice, Min: tc.min, Max: tc.max}
			assert.Equal(t, tc.want, p.Match(item{price: tc.price}))
		})
	}
}

func TestTimeBetween(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	p := TimeBetween[item]{Field: itemAt, From: &from, To: &to}

	assert.True(t, p.Match(item{at: from}))
	assert.True(t, p.Match(item{at: to}))
	assert.True(t, p.Match(item{at: from.Add(48 * time.Hour)}))
	assert.False(t, p.Match(item{at: from.Add(-time.Second)}))
	assert.False(t, p.Match(item{at: to.Add(time.Second)}))

	assert.True(t, TimeBetween[item]{Field: itemAt}.Match(item{}))
}

func TestGreaterThan(t *testing.T) {
	p := GreaterThan[item]{Field: itemPrice, Bound: 0}
	assert.True(t, p.Match(item{price: 1}))
	assert.False(t, p.Match(item{price: 0}))
}

func TestNewPageDefaults(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: 10}, NewPage(0, 0))
	assert.Equal(t, Page{Number: 1, Limit: 10}, NewPage(-3, -1))
	assert.Equal(t, Page{Number: 3, Limit: 5}, NewPage(3, 5))
	assert.Equal(t, 10, NewPage(3, 5).Skip())
}

func TestPages(t *testing.T) {
	p := NewPage(1, 10)
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
	assert.Equal(t, Pagination{Current: 1, Pages: 3, Total: 25}, p.Summary(25))
}

func TestSliceCoversEveryRecordOnce(t *testing.T) {
	recs := make([]int, 23)
	for i := range recs {
		recs[i] = i
	}
	for _, limit := range []int{1, 4, 10, 23, 50} {
		var got []int
		pages := NewPage(1, limit).Pages(len(recs))
		for n := 1; n <= pages; n++ {
			window := Slice(recs, NewPage(n, limit))
			want := limit
			if rest := len(recs) - (n-1)*limit; rest < want {
				want = rest
			}
			assert.Len(t, window, want, "limit %d page %d", limit, n)
			got = append(got, window...)
		}
		assert.Equal(t, recs, got, "limit %d", limit)
	}
}

func TestSliceHugeLimit(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Slice([]int{1, 2, 3}, NewPage(1, math.MaxInt)))
}

func TestSlicePastTheEndIsEmpty(t *testing.T) {
	got := Slice([]int{1, 2, 3}, NewPage(5, 10))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
