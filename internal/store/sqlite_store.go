package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/spacesedan/newsreel/internal/models"
	"github.com/spacesedan/newsreel/internal/observe"
)

// SQLiteStore is the default Store: one embedded table of saved articles
// with an auto-incrementing id. Writes are serialized through a single
// connection; each write republishes the full table to observers.
type SQLiteStore struct {
	db      *sql.DB
	subject *observe.Subject[[]models.SavedArticle]
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("[SQLiteStore] creating db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("[SQLiteStore] opening db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:      db,
		subject: observe.NewSubject[[]models.SavedArticle](),
	}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}

	// Prime the stream so the first subscriber sees what survived restart.
	if err := s.republish(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("[SQLiteStore] Opened saved-articles store", slog.String("path", dbPath))
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS saved_articles (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			source_id    TEXT NOT NULL DEFAULT '',
			source_name  TEXT NOT NULL DEFAULT '',
			title        TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			url          TEXT NOT NULL DEFAULT '',
			url_to_image TEXT NOT NULL DEFAULT '',
			published_at TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return fmt.Errorf("[SQLiteStore] initializing schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Insert appends the article when its ID is 0, otherwise replaces the row
// with that ID. Titles are not unique; two saves of the same title make two
// rows.
func (s *SQLiteStore) Insert(ctx context.Context, article models.SavedArticle) error {
	var err error
	if article.ID == 0 {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO saved_articles
				(source_id, source_name, title, description, url, url_to_image, published_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, article.SourceID, article.SourceName, article.Title,
			article.Description, article.URL, article.URLToImage, article.PublishedAt)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO saved_articles
				(id, source_id, source_name, title, description, url, url_to_image, published_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, article.ID, article.SourceID, article.SourceName, article.Title,
			article.Description, article.URL, article.URLToImage, article.PublishedAt)
	}
	if err != nil {
		return fmt.Errorf("[SQLiteStore] inserting article %q: %w", article.Title, err)
	}

	return s.republish(ctx)
}

func (s *SQLiteStore) All(ctx context.Context) ([]models.SavedArticle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_id, source_name, title, description, url, url_to_image, published_at
		FROM saved_articles
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("[SQLiteStore] querying articles: %w", err)
	}
	defer rows.Close()

	articles := []models.SavedArticle{}
	for rows.Next() {
		var a models.SavedArticle
		if err := rows.Scan(&a.ID, &a.SourceID, &a.SourceName, &a.Title,
			&a.Description, &a.URL, &a.URLToImage, &a.PublishedAt); err != nil {
			return nil, fmt.Errorf("[SQLiteStore] scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (s *SQLiteStore) Observe() (<-chan []models.SavedArticle, func()) {
	return s.subject.Subscribe()
}

func (s *SQLiteStore) ObserveByID(id int64) (<-chan *models.SavedArticle, func()) {
	return observeByID(s.subject, id)
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_articles`); err != nil {
		return fmt.Errorf("[SQLiteStore] deleting all articles: %w", err)
	}
	slog.Info("[SQLiteStore] Deleted all saved articles")
	return s.republish(ctx)
}

func (s *SQLiteStore) republish(ctx context.Context) error {
	snapshot, err := s.All(ctx)
	if err != nil {
		return err
	}
	s.subject.Publish(snapshot)
	return nil
}
