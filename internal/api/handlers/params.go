package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/5w1tchy/course-library-api/internal/validate"
)

// Paging holds the configured page size policy.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// ResourceParameters are the query parameters every collection accepts.
type ResourceParameters struct {
	Fields     string
	OrderBy    string
	PageNumber int
	PageSize   int
}

// Values renders the parameters for links, in their canonical names.
func (p ResourceParameters) Values() url.Values {
	v := url.Values{}
	if p.Fields != "" {
		v.Set("fields", p.Fields)
	}
	if p.OrderBy != "" {
		v.Set("orderBy", p.OrderBy)
	}
	v.Set("pageNumber", strconv.Itoa(p.PageNumber))
	v.Set("pageSize", strconv.Itoa(p.PageSize))
	return v
}

// QueryGet reads a query parameter ignoring the case of its name.
func QueryGet(q url.Values, name string) string {
	if v, ok := q[name]; ok && len(v) > 0 {
		return v[0]
	}
	for k, v := range q {
		if len(v) > 0 && strings.EqualFold(k, name) {
			return v[0]
		}
	}
	return ""
}

// ParseResourceParameters reads fields, orderBy, pageNumber and pageSize.
// A page size above the maximum is clamped; a non-positive or non-numeric
// page number or size is a client error.
func ParseResourceParameters(q url.Values, defaultOrderBy string, paging Paging) (ResourceParameters, error) {
	p := ResourceParameters{
		Fields:  strings.TrimSpace(QueryGet(q, "fields")),
		OrderBy: strings.TrimSpace(QueryGet(q, "orderBy")),
	}
	if p.OrderBy == "" {
		p.OrderBy = defaultOrderBy
	}

	var ok bool
	if p.PageNumber, ok = validate.PageNumber(QueryGet(q, "pageNumber"), 1); !ok {
		return ResourceParameters{}, BadRequest("pageNumber must be a whole number of at least 1.")
	}
	if p.PageSize, ok = validate.PageSize(QueryGet(q, "pageSize"), paging.DefaultSize, paging.MaxSize); !ok {
		return ResourceParameters{}, BadRequest("pageSize must be a whole number of at least 1.")
	}
	return p, nil
}
