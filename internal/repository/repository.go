// Package repository is the single seam between the remote news client and
// the persistent store. It delegates; it does not cache, retry, or
// transform.
package repository

import (
	"context"

	"github.com/spacesedan/newsreel/internal/models"
	"github.com/spacesedan/newsreel/internal/store"
)

// NewsFetcher is the remote-client surface the repository composes.
// *clients.NewsAPIClient satisfies it; tests substitute stubs.
type NewsFetcher interface {
	TopHeadlines(ctx context.Context, country string) (*models.TopHeadlinesResponse, error)
	TopHeadlinesByCategory(ctx context.Context, category string) (*models.TopHeadlinesResponse, error)
}

type Repository struct {
	fetcher NewsFetcher
	store   store.Store
}

func New(fetcher NewsFetcher, st store.Store) *Repository {
	return &Repository{fetcher: fetcher, store: st}
}

func (r *Repository) BreakingNews(ctx context.Context, country string) (*models.TopHeadlinesResponse, error) {
	return r.fetcher.TopHeadlines(ctx, country)
}

func (r *Repository) CategoryNews(ctx context.Context, category string) (*models.TopHeadlinesResponse, error) {
	return r.fetcher.TopHeadlinesByCategory(ctx, category)
}

func (r *Repository) Insert(ctx context.Context, article models.SavedArticle) error {
	return r.store.Insert(ctx, article)
}

func (r *Repository) AllSaved(ctx context.Context) ([]models.SavedArticle, error) {
	return r.store.All(ctx)
}

func (r *Repository) ObserveSaved() (<-chan []models.SavedArticle, func()) {
	return r.store.Observe()
}

func (r *Repository) ObserveSavedByID(id int64) (<-chan *models.SavedArticle, func()) {
	return r.store.ObserveByID(id)
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.store.DeleteAll(ctx)
}
