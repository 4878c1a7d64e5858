package ranker

import "context"

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// Candidate is a single search result. Duration is in seconds, 0 when the
// search backend did not report one.
type Candidate struct {
	ID       string
	Title    string
	Channel  string
	Duration int
}

// SearchService is the remote video search backend.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
	Durations(ctx context.Context, ids []string) (map[string]int, error)
}
