package models

// Source identifies the publisher of an article. The API may omit either
// field, or the whole object.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is the wire shape of a single NewsAPI article. Every field is
// optional upstream; absent fields decode to zero values and consumers must
// treat those as "no value", never as an error.
type Article struct {
	Source      *Source `json:"source"`
	Author      string  `json:"author"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	URLToImage  string  `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     string  `json:"content"`
}

// SourceName returns the publisher name, or "" when the source is absent.
func (a Article) SourceName() string {
	if a.Source == nil {
		return ""
	}
	return a.Source.Name
}

// IsEmpty reports whether the article carries no usable data at all, which
// is how a JSON null array element decodes.
func (a Article) IsEmpty() bool {
	return a.Source == nil && a.Title == "" && a.Description == "" &&
		a.URL == "" && a.URLToImage == "" && a.PublishedAt == "" &&
		a.Author == "" && a.Content == ""
}

// TopHeadlinesResponse is a single page of top headlines.
type TopHeadlinesResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}
