// Package store persists user-saved articles and exposes the table as a
// live snapshot stream: every subscriber sees the current contents
// immediately and a fresh full snapshot after each write.
package store

import (
	"context"

	"github.com/spacesedan/newsreel/internal/models"
	"github.com/spacesedan/newsreel/internal/observe"
)

// Store is the persistence contract for saved articles. Insert uses
// insert-or-replace semantics keyed by ID; an ID of 0 appends a fresh row.
// The store enforces no uniqueness on titles; duplicate detection is the
// caller's business.
type Store interface {
	Insert(ctx context.Context, article models.SavedArticle) error
	All(ctx context.Context) ([]models.SavedArticle, error)
	Observe() (<-chan []models.SavedArticle, func())
	ObserveByID(id int64) (<-chan *models.SavedArticle, func())
	DeleteAll(ctx context.Context) error
	Close() error
}

// observeByID derives a single-row stream from a full-snapshot subject.
// Emits nil when the row is absent from a snapshot.
func observeByID(subject *observe.Subject[[]models.SavedArticle], id int64) (<-chan *models.SavedArticle, func()) {
	in, cancel := subject.Subscribe()
	out := make(chan *models.SavedArticle, observe.SUBSCRIBER_BUFFER)

	go func() {
		defer close(out)
		for snapshot := range in {
			var match *models.SavedArticle
			for i := range snapshot {
				if snapshot[i].ID == id {
					row := snapshot[i]
					match = &row
					break
				}
			}
			out <- match
		}
	}()

	return out, cancel
}
