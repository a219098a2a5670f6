// Package filter implements the local search applied over fetched articles.
package filter

import (
	"strings"

	"github.com/spacesedan/newsreel/internal/models"
)

// Filter returns the articles matching query on title, description, or
// source name, case-insensitively. A blank query returns the input
// unchanged. Pure and order-preserving; safe to call on every keystroke.
func Filter(articles []models.Article, query string) []models.Article {
	query = strings.TrimSpace(query)
	if query == "" {
		return articles
	}

	query = strings.ToLower(query)
	matched := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if matches(a, query) {
			matched = append(matched, a)
		}
	}
	return matched
}

func matches(a models.Article, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(a.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(a.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(a.SourceName()), lowerQuery)
}
