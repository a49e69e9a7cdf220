package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/bruschetta/internal/domain"
)

// FilterEntries returns the entries whose title fuzzy-matches query, best
// match first. Ties keep response order. An empty query returns entries as is.
func FilterEntries(entries []domain.Entry, query string) []domain.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	filtered := make([]domain.Entry, 0, len(ranks))
	for _, r := range ranks {
		filtered = append(filtered, entries[r.OriginalIndex])
	}
	return filtered
}
