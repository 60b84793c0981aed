package query

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page selects a window of a result set. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// NewPage applies the defaults to non-positive values.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// Pages is ceil(total / limit).
func (p Page) Pages(total int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// Pagination is the envelope returned next to a page of results.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

func (p Page) Summary(total int) Pagination {
	return Pagination{Current: p.Number, Pages: p.Pages(total), Total: total}
}

// Slice returns the window of recs selected by p; past the end it is empty.
func Slice[T any](recs []T, p Page) []T {
	p = NewPage(p.Number, p.Limit)
	skip := p.Skip()
	if skip < 0 || skip >= len(recs) {
		return []T{}
	}
	end := len(recs)
	if p.Limit < end-skip {
		end = skip + p.Limit
	}
	return recs[skip:end]
}
