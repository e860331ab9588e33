package models

import "time"

// QueryStatus is the outcome recorded for a logged query.
type QueryStatus string

const (
	// StatusOK means the search returned at least one result.
	StatusOK QueryStatus = "ok"
	// StatusEmpty means the search ran but matched nothing.
	StatusEmpty QueryStatus = "empty"
	// StatusShort means the query was below the minimum length and was not run.
	StatusShort QueryStatus = "short"
	// StatusError means the search failed against the store.
	StatusError QueryStatus = "error"
)

// QueryLogEntry is one durable row of the query-popularity log, keyed by the
// lower-cased query text. Hits accumulates across repeats; the remaining fields
// reflect the most recent search.
type QueryLogEntry struct {
	Query        string
	DisplayQuery string
	Hits         int64
	Results      int
	LastSearch   time.Time
	Status       QueryStatus
}

// PopularQuery is one entry of the popular-searches read.
type PopularQuery struct {
	Query      string `json:"query"`
	Hits       int64  `json:"hits"`
	LastSearch string `json:"lastSearch"`
}

// Suggestion is one entry of the prefix-suggestion read.
type Suggestion struct {
	Query string `json:"query"`
	Hits  int64  `json:"hits"`
}
