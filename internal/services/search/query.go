package search

import (
	"fmt"
	"net/url"
	"strconv"
)

// DefaultPath is the public path of the search view
const DefaultPath = "/search"

// ParseQuery reads query, tab and page from URL parameters. Missing or
// malformed pages become 1 and unknown tabs become all.
func ParseQuery(values url.Values) QueryState {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return QueryState{
		Query: values.Get("query"),
		Tab:   ParseTab(values.Get("tab")),
		Page:  page,
	}
}

// URL encodes the state as path?query=..&tab=..&page=..
func (q QueryState) URL(path string) string {
	if path == "" {
		path = DefaultPath
	}
	tab := q.Tab
	if tab == "" {
		tab = TabAll
	}
	return fmt.Sprintf("%s?query=%s&tab=%s&page=%d", path, url.QueryEscape(q.Query), tab, max(q.Page, 1))
}

// WithTab switches tab and resets to the first page
func (q QueryState) WithTab(tab Tab) QueryState {
	q.Tab = tab
	q.Page = 1
	return q
}

// WithPage moves to another page of the same tab
func (q QueryState) WithPage(page int) QueryState {
	q.Page = page
	return q
}
