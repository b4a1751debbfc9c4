package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/myreads/internal/domain"
)

// Rank orders books by how closely their title matches term.
// Exact and prefix matches come first, then fuzzy matches by distance.
// Books whose title does not match at all (the catalog also matches on
// author and subject) keep their catalog order at the end.
func Rank(term string, books []domain.Book) []domain.Book {
	if len(books) < 2 {
		return books
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books
	}

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = strings.ToLower(b.Title)
	}

	scores := make([]int, len(books))
	for i := range scores {
		scores[i] = unmatchedScore
	}
	for _, r := range fuzzy.RankFindFold(term, titles) {
		scores[r.OriginalIndex] = matchScore(r.Target, term, r.Distance)
	}

	order := make([]int, len(books))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] < scores[order[j]]
	})

	ranked := make([]domain.Book, len(books))
	for i, idx := range order {
		ranked[i] = books[idx]
	}
	return ranked
}

const unmatchedScore = 1 << 20

// matchScore calculates a match score for ranking. Lower is better.
func matchScore(title, term string, distance int) int {
	switch {
	case title == term:
		return 0
	case strings.HasPrefix(title, term):
		return 10
	case strings.Contains(title, term):
		return 50
	default:
		return 100 + distance
	}
}
