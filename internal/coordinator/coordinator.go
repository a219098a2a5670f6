// Package coordinator owns the observable state of the reader: one envelope
// stream for breaking news, one for category news, and a pass-through of
// the saved-articles stream, plus the save/delete mutations.
package coordinator

import (
	"context"
	"log/slog"

	"github.com/spacesedan/newsreel/internal/envelope"
	"github.com/spacesedan/newsreel/internal/models"
	"github.com/spacesedan/newsreel/internal/observe"
	"github.com/spacesedan/newsreel/internal/repository"
)

// Coordinator mediates between the repository and observing UI code.
//
// Each Request* call publishes Loading synchronously, then runs the fetch in
// its own goroutine and publishes exactly one terminal envelope when the
// call settles. A later request on the same stream restarts the cycle
// without waiting for the earlier one; if the earlier response arrives after
// the newer request started it still lands on the stream. Last write wins,
// with no generation guard. Known issue: a stale response can overwrite a
// fresher one.
type Coordinator struct {
	repo     *repository.Repository
	breaking *observe.Subject[envelope.Envelope[models.TopHeadlinesResponse]]
	category *observe.Subject[envelope.Envelope[models.TopHeadlinesResponse]]
}

func New(repo *repository.Repository) *Coordinator {
	return &Coordinator{
		repo:     repo,
		breaking: observe.NewSubject[envelope.Envelope[models.TopHeadlinesResponse]](),
		category: observe.NewSubject[envelope.Envelope[models.TopHeadlinesResponse]](),
	}
}

// RequestBreaking starts a breaking-news request cycle for a country code.
func (c *Coordinator) RequestBreaking(ctx context.Context, country string) {
	slog.Info("[Coordinator] Requesting breaking news", slog.String("country", country))
	c.request(ctx, c.breaking, func(ctx context.Context) (*models.TopHeadlinesResponse, error) {
		return c.repo.BreakingNews(ctx, country)
	})
}

// RequestCategory starts a category-news request cycle.
func (c *Coordinator) RequestCategory(ctx context.Context, category string) {
	slog.Info("[Coordinator] Requesting category news", slog.String("category", category))
	c.request(ctx, c.category, func(ctx context.Context) (*models.TopHeadlinesResponse, error) {
		return c.repo.CategoryNews(ctx, category)
	})
}

func (c *Coordinator) request(
	ctx context.Context,
	subject *observe.Subject[envelope.Envelope[models.TopHeadlinesResponse]],
	fetch func(context.Context) (*models.TopHeadlinesResponse, error),
) {
	subject.Publish(envelope.Loading[models.TopHeadlinesResponse]())

	go func() {
		page, err := fetch(ctx)
		if err != nil {
			slog.Warn("[Coordinator] Fetch failed", slog.String("error", err.Error()))
			subject.Publish(envelope.Failure[models.TopHeadlinesResponse](err.Error()))
			return
		}
		subject.Publish(envelope.Success(*page))
	}()
}

// ObserveBreaking subscribes to the breaking-news envelope stream. The
// latest envelope, if any, is replayed immediately.
func (c *Coordinator) ObserveBreaking() (<-chan envelope.Envelope[models.TopHeadlinesResponse], func()) {
	return c.breaking.Subscribe()
}

// ObserveCategory subscribes to the category-news envelope stream.
func (c *Coordinator) ObserveCategory() (<-chan envelope.Envelope[models.TopHeadlinesResponse], func()) {
	return c.category.Subscribe()
}

// ObserveSaved passes through the store's live saved-articles stream.
func (c *Coordinator) ObserveSaved() (<-chan []models.SavedArticle, func()) {
	return c.repo.ObserveSaved()
}

// ObserveSavedByID passes through the store's single-row stream.
func (c *Coordinator) ObserveSavedByID(id int64) (<-chan *models.SavedArticle, func()) {
	return c.repo.ObserveSavedByID(id)
}

// Save persists an article as a fresh row. It performs no duplicate check:
// callers that want save-once behavior scan the latest saved snapshot for a
// matching title first (see HasTitle) and skip the call.
func (c *Coordinator) Save(ctx context.Context, article models.Article) error {
	return c.repo.Insert(ctx, models.SavedFromArticle(article))
}

// DeleteAllSaved removes every saved article.
func (c *Coordinator) DeleteAllSaved(ctx context.Context) error {
	return c.repo.DeleteAll(ctx)
}

// HasTitle reports whether a saved snapshot already contains an article
// with this title. Title equality is the identity rule for saved items.
func HasTitle(snapshot []models.SavedArticle, title string) bool {
	for _, a := range snapshot {
		if a.Title == title {
			return true
		}
	}
	return false
}
