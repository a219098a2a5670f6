package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedFromArticle(t *testing.T) {
	a := Article{
		Source:      &Source{ID: "reuters", Name: "Reuters"},
		Title:       "Fed raises rates",
		Description: "Markets react",
		URL:         "https://example.com/fed",
		URLToImage:  "https://example.com/fed.jpg",
		PublishedAt: "2024-05-01T10:00:00Z",
	}

	s := SavedFromArticle(a)
	assert.Equal(t, int64(0), s.ID)
	assert.Equal(t, "reuters", s.SourceID)
	assert.Equal(t, "Reuters", s.SourceName)
	assert.Equal(t, "Fed raises rates", s.Title)
	assert.Equal(t, "https://example.com/fed", s.URL)
}

func TestSavedFromArticleDefaultsAbsentFields(t *testing.T) {
	s := SavedFromArticle(Article{Title: "only a title"})

	assert.Equal(t, "only a title", s.Title)
	assert.Equal(t, "", s.SourceID)
	assert.Equal(t, "", s.SourceName)
	assert.Equal(t, "", s.Description)
	assert.Equal(t, "", s.URL)
	assert.Equal(t, "", s.URLToImage)
	assert.Equal(t, "", s.PublishedAt)
}

func TestArticleDecodesPartialPayload(t *testing.T) {
	var a Article
	require.NoError(t, json.Unmarshal([]byte(`{"title": "partial", "source": null}`), &a))

	assert.Equal(t, "partial", a.Title)
	assert.Nil(t, a.Source)
	assert.Equal(t, "", a.SourceName())
	assert.False(t, a.IsEmpty())
}

func TestNullElementDecodesEmpty(t *testing.T) {
	var page TopHeadlinesResponse
	payload := `{"status": "ok", "totalResults": 2, "articles": [null, {"title": "real"}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &page))

	require.Len(t, page.Articles, 2)
	assert.True(t, page.Articles[0].IsEmpty())
	assert.False(t, page.Articles[1].IsEmpty())
}
