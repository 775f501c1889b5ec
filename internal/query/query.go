// Package query builds list-query parameters from HTTP request values and
// computes pagination metadata. It holds no state and never touches the
// store directly.
package query

import (
	"math"
	"net/url"
	"strconv"
	"time"
)

// Defaults applied when a parameter is absent or unparseable.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "createdAt"
)

// Filter is the set of optional exact-match, range, and substring filters
// for the list operation. Zero values mean "not filtered".
type Filter struct {
	Status    string
	Direction string
	Priority  string
	PartyID   string
	Channel   string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Sort names the record field to order by and the direction.
type Sort struct {
	Field      string
	Descending bool
}

// Params carries a complete list request: filters, sort, and the 1-based
// pagination window.
type Params struct {
	Filter Filter
	Sort   Sort
	Page   int
	Limit  int
}

// Offset converts the 1-based page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse builds Params from URL query values. Unparseable or non-positive
// page/limit values fall back to defaults, matching the forgiving parsing
// of the upstream API.
func Parse(q url.Values) Params {
	p := Params{
		Page:  DefaultPage,
		Limit: DefaultLimit,
		Sort:  Sort{Field: DefaultSort, Descending: true},
	}

	p.Filter.Status = q.Get("status")
	p.Filter.Direction = q.Get("direction")
	p.Filter.Priority = q.Get("priority")
	p.Filter.PartyID = q.Get("partyId")
	p.Filter.Channel = q.Get("channel")
	p.Filter.Search = q.Get("search")

	if t, ok := parseTime(q.Get("startDate")); ok {
		p.Filter.StartDate = &t
	}
	if t, ok := parseTime(q.Get("endDate")); ok {
		p.Filter.EndDate = &t
	}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}

	if f := q.Get("sortBy"); f != "" {
		p.Sort.Field = f
	}
	if q.Get("sortOrder") == "asc" {
		p.Sort.Descending = false
	}

	return p
}

// parseTime accepts RFC 3339 timestamps and bare dates.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Pagination is the metadata block returned next to every page of results.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the metadata for a page request against the total
// matching count, independent of the fetched window.
func NewPagination(p Params, total int) Pagination {
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}
