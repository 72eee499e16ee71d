package search

import "errors"

var (
	// ErrFetchFailed means one of the collection fetches failed
	ErrFetchFailed = errors.New("search could not complete")

	// ErrSuperseded means a newer query replaced this one before it finished
	ErrSuperseded = errors.New("search superseded by a newer query")
)
