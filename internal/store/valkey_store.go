package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/newsreel/internal/models"
	"github.com/spacesedan/newsreel/internal/observe"
)

const (
	VALKEY_SAVED_IDS_KEY = "newsreel:saved:ids"
	VALKEY_NEXT_ID_KEY   = "newsreel:saved:next_id"
	VALKEY_ROW_PREFIX    = "newsreel:saved:"
	VALKEY_RETRIES       = 3
)

// ValkeyConfig carries connection settings for a Valkey-backed store.
type ValkeyConfig struct {
	InitAddress string
	Password    string
	UseTLS      bool
}

// ValkeyStore keeps saved articles in Valkey hashes, one per row, with ids
// from a counter key. Same Store contract as SQLiteStore, for deployments
// that share saved items across devices instead of keeping them on-disk.
type ValkeyStore struct {
	client  valkey.Client
	subject *observe.Subject[[]models.SavedArticle]
}

func OpenValkey(cfg ValkeyConfig) (*ValkeyStore, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.InitAddress},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyStore] failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyStore] failed to ping: %w", err)
	}

	s := &ValkeyStore{
		client:  client,
		subject: observe.NewSubject[[]models.SavedArticle](),
	}
	if err := s.republish(ctx); err != nil {
		client.Close()
		return nil, err
	}

	slog.Info("[ValkeyStore] Successfully connected to valkey")
	return s, nil
}

func (s *ValkeyStore) Close() error {
	s.client.Close()
	return nil
}

func (s *ValkeyStore) Insert(ctx context.Context, article models.SavedArticle) error {
	if article.ID == 0 {
		res := s.doWithRetry(ctx, s.client.B().Incr().Key(VALKEY_NEXT_ID_KEY).Build())
		id, err := res.AsInt64()
		if err != nil {
			return fmt.Errorf("[ValkeyStore] assigning id: %w", err)
		}
		article.ID = id
	}

	rowKey := VALKEY_ROW_PREFIX + strconv.FormatInt(article.ID, 10)
	commands := []valkey.Completed{
		s.client.B().Hset().Key(rowKey).FieldValue().
			FieldValue("source_id", article.SourceID).
			FieldValue("source_name", article.SourceName).
			FieldValue("title", article.Title).
			FieldValue("description", article.Description).
			FieldValue("url", article.URL).
			FieldValue("url_to_image", article.URLToImage).
			FieldValue("published_at", article.PublishedAt).
			Build(),
		s.client.B().Sadd().Key(VALKEY_SAVED_IDS_KEY).
			Member(strconv.FormatInt(article.ID, 10)).Build(),
	}
	for _, res := range s.client.DoMulti(ctx, commands...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyStore] inserting article %q: %w", article.Title, err)
		}
	}

	return s.republish(ctx)
}

func (s *ValkeyStore) All(ctx context.Context) ([]models.SavedArticle, error) {
	ids, err := s.doWithRetry(ctx, s.client.B().Smembers().Key(VALKEY_SAVED_IDS_KEY).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("[ValkeyStore] listing ids: %w", err)
	}

	articles := []models.SavedArticle{}
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		fields, err := s.doWithRetry(ctx, s.client.B().Hgetall().Key(VALKEY_ROW_PREFIX+raw).Build()).AsStrMap()
		if err != nil {
			return nil, fmt.Errorf("[ValkeyStore] reading row %s: %w", raw, err)
		}
		if len(fields) == 0 {
			continue
		}
		articles = append(articles, models.SavedArticle{
			ID:          id,
			SourceID:    fields["source_id"],
			SourceName:  fields["source_name"],
			Title:       fields["title"],
			Description: fields["description"],
			URL:         fields["url"],
			URLToImage:  fields["url_to_image"],
			PublishedAt: fields["published_at"],
		})
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles, nil
}

func (s *ValkeyStore) Observe() (<-chan []models.SavedArticle, func()) {
	return s.subject.Subscribe()
}

func (s *ValkeyStore) ObserveByID(id int64) (<-chan *models.SavedArticle, func()) {
	return observeByID(s.subject, id)
}

func (s *ValkeyStore) DeleteAll(ctx context.Context) error {
	ids, err := s.doWithRetry(ctx, s.client.B().Smembers().Key(VALKEY_SAVED_IDS_KEY).Build()).AsStrSlice()
	if err != nil {
		return fmt.Errorf("[ValkeyStore] listing ids: %w", err)
	}

	keys := []string{VALKEY_SAVED_IDS_KEY}
	for _, raw := range ids {
		keys = append(keys, VALKEY_ROW_PREFIX+raw)
	}
	if err := s.doWithRetry(ctx, s.client.B().Del().Key(keys...).Build()).Error(); err != nil {
		return fmt.Errorf("[ValkeyStore] deleting all articles: %w", err)
	}

	slog.Info("[ValkeyStore] Deleted all saved articles")
	return s.republish(ctx)
}

func (s *ValkeyStore) republish(ctx context.Context) error {
	snapshot, err := s.All(ctx)
	if err != nil {
		return err
	}
	s.subject.Publish(snapshot)
	return nil
}

func (s *ValkeyStore) doWithRetry(ctx context.Context, completed valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < VALKEY_RETRIES; i++ {
		result = s.client.Do(ctx, completed)
		if result.Error() == nil || !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyStore] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}
	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
