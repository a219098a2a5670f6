package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/newsreel/config"
	"github.com/spacesedan/newsreel/internal/clients"
	"github.com/spacesedan/newsreel/internal/coordinator"
	"github.com/spacesedan/newsreel/internal/envelope"
	"github.com/spacesedan/newsreel/internal/logging"
	"github.com/spacesedan/newsreel/internal/models"
	"github.com/spacesedan/newsreel/internal/repository"
	"github.com/spacesedan/newsreel/internal/store"
)

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}
	config.LoadEnv(appEnv)
	logging.InitLogger()

	st, err := openStore()
	if err != nil {
		slog.Error("Failed to open saved-articles store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	client := clients.NewNewsAPIClient(os.Getenv("NEWS_API_KEY"))
	repo := repository.New(client, st)
	coord := coordinator.New(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	breaking, unsubBreaking := coord.ObserveBreaking()
	defer unsubBreaking()
	category, unsubCategory := coord.ObserveCategory()
	defer unsubCategory()
	saved, unsubSaved := coord.ObserveSaved()
	defer unsubSaved()

	coord.RequestBreaking(ctx, config.GetenvDefault("NEWS_COUNTRY", "us"))
	if cat := os.Getenv("NEWS_CATEGORY"); cat != "" {
		coord.RequestCategory(ctx, cat)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case e := <-breaking:
			logEnvelope("breaking", e)

		case e := <-category:
			logEnvelope("category", e)

		case snapshot := <-saved:
			slog.Info("Saved articles updated", slog.Int("count", len(snapshot)))

		case <-stopChan:
			slog.Info("Shutting down reader gracefully...")
			return
		}
	}
}

func openStore() (store.Store, error) {
	if addr := os.Getenv("VALKEY_INIT_ADDRESS"); addr != "" {
		return store.OpenValkey(store.ValkeyConfig{
			InitAddress: addr,
			Password:    os.Getenv("VALKEY_PASSWORD"),
			UseTLS:      os.Getenv("VALKEY_TLS") == "true",
		})
	}
	return store.OpenSQLite(config.GetenvDefault("NEWS_DB_PATH", "newsreel.db"))
}

func logEnvelope(stream string, e envelope.Envelope[models.TopHeadlinesResponse]) {
	switch e.Status {
	case envelope.StatusLoading:
		slog.Info("Loading news...", slog.String("stream", stream))
	case envelope.StatusSuccess:
		slog.Info("News arrived",
			slog.String("stream", stream),
			slog.Int("articles", len(e.Data.Articles)))
		for _, a := range e.Data.Articles {
			slog.Info("Headline",
				slog.String("source", a.SourceName()),
				slog.String("title", a.Title))
		}
	case envelope.StatusError:
		slog.Error("News fetch failed",
			slog.String("stream", stream),
			slog.String("error", e.Message))
	}
}
