package api

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 6
	maxPageSize     = 100
)

// Page is the pagination envelope of every list endpoint.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// pageParams reads `page` and `limit` query values, clamping both.
func pageParams(r *http.Request) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// newPage builds the envelope with next/previous links derived from the
// request URL.
func newPage(r *http.Request, count int64, page, limit int, results any) Page {
	envelope := Page{Count: count, Results: results}

	if int64(page*limit) < count {
		envelope.Next = pageLink(r, page+1)
	}
	if page > 1 {
		envelope.Previous = pageLink(r, page-1)
	}
	return envelope
}

func pageLink(r *http.Request, page int) *string {
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(page))
	link := fmt.Sprintf("%s?%s", r.URL.Path, query.Encode())
	return &link
}
