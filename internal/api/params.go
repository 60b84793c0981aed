package api

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"medbill/m/internal/query"
)

const dateLayout = "2006-01-02"

func pageParams(q url.Values) (query.Page, error) {
	number, err := intParam(q, "page")
	if err != nil {
		return query.Page{}, err
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		return query.Page{}, err
	}
	page := query.NewPage(number, limit)
	if page.Number > math.MaxInt/page.Limit {
		return query.Page{}, fmt.Errorf("page is out of range")
	}
	return page, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}

// timeParam accepts RFC 3339 or a plain date. A plain date is read in loc;
// with endOfDay set it covers the whole of that day.
func timeParam(q url.Values, name string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	t, err := parseTime(raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD) or RFC 3339 time", name)
	}
	if endOfDay && len(raw) == len(dateLayout) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
