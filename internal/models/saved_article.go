package models

// SavedArticle is a row in the saved-articles table. ID is assigned by the
// store; 0 means "not yet persisted" and makes Insert append a fresh row.
// The source is embedded flat rather than referenced.
type SavedArticle struct {
	ID          int64  `json:"id"`
	SourceID    string `json:"sourceId"`
	SourceName  string `json:"sourceName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// SavedFromArticle maps a wire article onto a fresh, unpersisted row.
// Absent fields become empty strings so downstream display code never has
// to null-check.
func SavedFromArticle(a Article) SavedArticle {
	s := SavedArticle{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  a.URLToImage,
		PublishedAt: a.PublishedAt,
	}
	if a.Source != nil {
		s.SourceID = a.Source.ID
		s.SourceName = a.Source.Name
	}
	return s
}
