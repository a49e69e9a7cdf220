package service

import "github.com/mmcdole/bruschetta/internal/domain"

// SearchResultsMsg carries the outcome of a primary search request
type SearchResultsMsg struct {
	Generation uint64
	Query      string
	Titles     []domain.Title
	Err        error
}

// ReviewFetchedMsg carries the outcome of one review request
type ReviewFetchedMsg struct {
	Generation uint64
	Key        string
	Review     *domain.Review
	Err        error
}
