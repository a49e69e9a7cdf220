package domain

import "context"

// SearchClient performs the primary title search.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]Title, error)
}

// ReviewClient fetches the review resource for one title.
// Implementations bound each request themselves; time spent waiting on
// sibling requests must not count against it.
type ReviewClient interface {
	Review(ctx context.Context, title Title) (*Review, error)
}
