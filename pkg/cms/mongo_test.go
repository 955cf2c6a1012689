package cms

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
)

func TestMongoDocumentRoundTrip(t *testing.T) {
	order := 2.0
	want := content.Project{
		Title:       "Air Max Day",
		Slug:        "air-max-day",
		Client:      "Nike",
		Date:        content.NewDate(2024, time.March, 26),
		Order:       &order,
		AspectRatio: 1.25,
		Image:       content.Image{Ref: "image-abc-1600x900-jpg", URL: "https://cdn.example.com/a.jpg", Width: 1600, Height: 900},
		VideoURL:    "https://vimeo.com/123",
		Body: []content.Block{
			content.Paragraph("h2", "Process"),
			{Type: content.BlockImage, Image: &content.Image{URL: "https://cdn.example.com/b.jpg"}},
			{Type: content.BlockMarkdown, Markdown: "*hi*"},
		},
		Credits:   []content.Credit{{Role: "Director", Name: "A. Person"}},
		Links:     content.Links{Behance: "https://www.behance.net/x"},
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(fromProject(want))
	require.NoError(t, err)

	var doc mongoProject
	require.NoError(t, bson.Unmarshal(raw, &doc))

	if diff := cmp.Diff(want, doc.toProject()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMongoDocumentFields(t *testing.T) {
	raw, err := bson.Marshal(fromProject(content.Project{Title: "T", Slug: "t"}))
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))

	assert.Equal(t, "t", m["slug"])
	assert.NotContains(t, m, "date", "missing dates are omitted so they sort last")
	assert.NotContains(t, m, "order")
	assert.Contains(t, m, "createdAt", "created-at defaults to now")
}

func TestMongoToProjectFillsImage(t *testing.T) {
	doc := mongoProject{Slug: "a", Image: content.Image{Ref: "image-x-300x600-jpg"}}
	p := doc.toProject()
	assert.Equal(t, 0.5, p.Ratio(1))
	assert.True(t, p.Date.IsZero())
}

func TestNewMongoSourceInvalidURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewMongoSource(ctx, MongoConfig{URI: "not-a-mongo-uri", Database: "folio", Collection: "projects"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
}
