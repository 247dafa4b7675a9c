package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/curator/pkg/domain"
)

func TestContentRepository_UpsertWebsite(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	site := &domain.Website{URL: "https://blog.example.com", Name: "Blog", Category: "tech", Active: true}
	require.NoError(t, repos.Content.UpsertWebsite(ctx, site))
	firstID := site.ID

	again := &domain.Website{URL: "https://blog.example.com", Name: "Blog v2", Category: "science", Active: true}
	require.NoError(t, repos.Content.UpsertWebsite(ctx, again))
	assert.Equal(t, firstID, again.ID)

	var category string
	require.NoError(t, repos.DB.Get(&category, "SELECT category FROM websites WHERE id = ?", firstID))
	assert.Equal(t, "science", category)
}

func TestContentRepository_QueryProcessed(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	recentTech := seedItem(t, repos, "https://a/1", "tech", "en", 200, now.Add(-1*time.Hour))
	olderTech := seedItem(t, repos, "https://a/2", "tech", "en", 700, now.Add(-5*time.Hour))
	science := seedItem(t, repos, "https://b/1", "science", "en", 100, now.Add(-2*time.Hour))
	german := seedItem(t, repos, "https://a/3", "tech", "de", 150, now.Add(-3*time.Hour))
	stale := seedItem(t, repos, "https://a/4", "tech", "en", 100, now.Add(-48*time.Hour))

	// unprocessed item is never returned
	unprocessed := &domain.ContentItem{WebsiteID: recentTech.WebsiteID, URL: "https://a/5", Title: "raw",
		ScrapedAt: now.Add(-30 * time.Minute), Language: "en", WordCount: 10}
	require.NoError(t, repos.Content.CreateContentItem(ctx, unprocessed))

	ids := func(items []domain.ContentItem) []int64 {
		res := make([]int64, len(items))
		for i, it := range items {
			res[i] = it.ID
		}
		return res
	}

	tests := []struct {
		name   string
		filter domain.FilterCriteria
		want   []int64
	}{
		{name: "window only, newest first",
			filter: domain.FilterCriteria{Since: now.Add(-24 * time.Hour)},
			want:   []int64{recentTech.ID, science.ID, german.ID, olderTech.ID}},
		{name: "wider window includes stale",
			filter: domain.FilterCriteria{Since: now.Add(-7 * 24 * time.Hour)},
			want:   []int64{recentTech.ID, science.ID, german.ID, olderTech.ID, stale.ID}},
		{name: "category from website",
			filter: domain.FilterCriteria{Since: now.Add(-24 * time.Hour), Categories: []string{"science"}},
			want:   []int64{science.ID}},
		{name: "language exact match",
			filter: domain.FilterCriteria{Since: now.Add(-24 * time.Hour), Language: "de"},
			want:   []int64{german.ID}},
		{name: "word count cap",
			filter: domain.FilterCriteria{Since: now.Add(-24 * time.Hour), Language: "en", MaxWordCount: 300},
			want:   []int64{recentTech.ID, science.ID}},
		{name: "limit",
			filter: domain.FilterCriteria{Since: now.Add(-24 * time.Hour), Limit: 2},
			want:   []int64{recentTech.ID, science.ID}},
		{name: "nothing matches",
			filter: domain.FilterCriteria{Since: now.Add(-24 * time.Hour), Categories: []string{"sports"}},
			want:   []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repos.Content.QueryProcessed(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(items))
			for _, it := range items {
				assert.True(t, it.Processed)
				assert.NotEmpty(t, it.Category)
				assert.NotEmpty(t, it.SourceName)
			}
		})
	}
}

func TestContentRepository_MarkProcessedAndImmutability(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	processed := seedItem(t, repos, "https://a/1", "tech", "en", 100, time.Now())
	raw := &domain.ContentItem{WebsiteID: processed.WebsiteID, URL: "https://a/2", Title: "raw", Category: "ai"}
	require.NoError(t, repos.Content.CreateContentItem(ctx, raw))

	require.NoError(t, repos.Content.MarkProcessed(ctx, raw.ID))
	require.Error(t, repos.Content.MarkProcessed(ctx, raw.ID), "second call finds no unprocessed item")

	got, err := repos.Content.GetContentItem(ctx, raw.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Processed)
	assert.Equal(t, "ai", got.Category, "own category wins over website category")

	_, err = repos.DB.Exec("UPDATE content_items SET title = 'changed' WHERE id = ?", processed.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "immutable")

	missing, err := repos.Content.GetContentItem(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentRepository_ItemsWithoutEmbedding(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now()
	first := seedItem(t, repos, "https://a/1", "tech", "en", 100, now.Add(-2*time.Hour))
	second := seedItem(t, repos, "https://a/2", "tech", "en", 100, now.Add(-1*time.Hour))

	items, err := repos.Content.ItemsWithoutEmbedding(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)

	require.NoError(t, repos.Embedding.SaveEmbedding(ctx, second.ID, "m1", []float32{1, 2}))

	items, err = repos.Content.ItemsWithoutEmbedding(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	items, err = repos.Content.ItemsWithoutEmbedding(ctx, "m2", 1)
	require.NoError(t, err)
	assert.Len(t, items, 1, "other model is indexed separately, limit applied")
}
