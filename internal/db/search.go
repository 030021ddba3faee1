package db

// TextQuery is the input for a full-text FT.SEARCH. Query holds the raw user
// terms; operator escaping is the store's concern.
type TextQuery struct {
	IndexName    string
	Query        string
	Language     string // FT.SEARCH LANGUAGE for stemming; empty = index default
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
