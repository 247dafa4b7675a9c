package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/summary/mocks"
	"github.com/umputun/curator/pkg/vector"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

// makePool returns n items with IDs 1..n, newest first
func makePool(n int) []domain.ContentItem {
	res := make([]domain.ContentItem, n)
	for i := range res {
		res[i] = domain.ContentItem{ID: int64(i + 1), Title: "article", URL: "https://example.com/a",
			ScrapedAt: testNow.Add(-time.Duration(i+1) * time.Hour), Processed: true}
	}
	return res
}

func itemIDs(items []domain.ContentItem) []int64 {
	res := make([]int64, len(items))
	for i, it := range items {
		res[i] = it.ID
	}
	return res
}

func TestRetriever_Candidates(t *testing.T) {
	tests := []struct {
		name       string
		prefs      domain.Preferences
		pool       []domain.ContentItem
		matches    []vector.Match
		searchErr  error
		want       []int64
		wantSearch bool
	}{
		{name: "no topics takes most recent",
			prefs: domain.Preferences{MaxItems: 3}, pool: makePool(5),
			want: []int64{1, 2, 3}},
		{name: "pool smaller than max items",
			prefs: domain.Preferences{MaxItems: 10}, pool: makePool(2),
			want: []int64{1, 2}},
		{name: "default max items",
			prefs: domain.Preferences{}, pool: makePool(15),
			want: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{name: "narrowed items keep pool order",
			prefs: domain.Preferences{MaxItems: 3, Topics: []string{"AI", "robots"}}, pool: makePool(6),
			matches:    []vector.Match{{ItemID: 5, Score: 0.9}, {ItemID: 2, Score: 0.8}, {ItemID: 6, Score: 0.7}, {ItemID: 1, Score: 0.1}},
			want:       []int64{2, 5, 6},
			wantSearch: true},
		{name: "padded with recent items",
			prefs: domain.Preferences{MaxItems: 4, Topics: []string{"AI"}}, pool: makePool(6),
			matches:    []vector.Match{{ItemID: 6, Score: 0.9}, {ItemID: 3, Score: 0.5}},
			want:       []int64{3, 6, 1, 2},
			wantSearch: true},
		{name: "no matches falls back to recency",
			prefs: domain.Preferences{MaxItems: 2, Topics: []string{"AI"}}, pool: makePool(4),
			matches:    []vector.Match{},
			want:       []int64{1, 2},
			wantSearch: true},
		{name: "search failure falls back to most recent",
			prefs: domain.Preferences{MaxItems: 3, Topics: []string{"AI"}}, pool: makePool(5),
			searchErr:  errors.New("vector store down"),
			want:       []int64{1, 2, 3},
			wantSearch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := &mocks.ContentStoreMock{
				QueryProcessedFunc: func(ctx context.Context, f domain.FilterCriteria) ([]domain.ContentItem, error) {
					return tt.pool, nil
				},
			}
			searcher := &mocks.VectorSearcherMock{
				SearchFunc: func(ctx context.Context, q vector.Query) ([]vector.Match, error) {
					return tt.matches, tt.searchErr
				},
			}
			r := NewRetriever(content, searcher, 50, 10)
			r.now = func() time.Time { return testNow }

			items, err := r.Candidates(context.Background(), tt.prefs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemIDs(items))

			if !tt.wantSearch {
				assert.Empty(t, searcher.SearchCalls())
				return
			}
			require.Len(t, searcher.SearchCalls(), 1)
			q := searcher.SearchCalls()[0].Q
			assert.Equal(t, 2*tt.prefs.MaxItems, q.Limit)
			assert.Equal(t, itemIDs(tt.pool), q.RestrictTo)
		})
	}
}

func TestRetriever_FilterCriteria(t *testing.T) {
	tests := []struct {
		freq   domain.DeliveryFrequency
		window time.Duration
	}{
		{domain.FrequencyDaily, 24 * time.Hour},
		{domain.FrequencyWeekly, 7 * 24 * time.Hour},
		{domain.FrequencyMonthly, 30 * 24 * time.Hour},
		{"hourly", 24 * time.Hour},
		{"", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			content := &mocks.ContentStoreMock{
				QueryProcessedFunc: func(ctx context.Context, f domain.FilterCriteria) ([]domain.ContentItem, error) {
					return makePool(1), nil
				},
			}
			r := NewRetriever(content, nil, 25, 10)
			r.now = func() time.Time { return testNow }

			prefs := domain.Preferences{Frequency: tt.freq, Categories: []string{"tech"}, Language: "en",
				Length: domain.LengthShort, Topics: []string{"go"}}
			_, err := r.Candidates(context.Background(), prefs)
			require.NoError(t, err)

			f := content.QueryProcessedCalls()[0].F
			assert.Equal(t, testNow.Add(-tt.window), f.Since)
			assert.Equal(t, 25, f.Limit)
			assert.Equal(t, []string{"tech"}, f.Categories)
			assert.Equal(t, "en", f.Language)
			assert.Equal(t, 300, f.MaxWordCount)
		})
	}
}

func TestRetriever_CandidatesErrors(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		content := &mocks.ContentStoreMock{
			QueryProcessedFunc: func(ctx context.Context, f domain.FilterCriteria) ([]domain.ContentItem, error) {
				return nil, nil
			},
		}
		searcher := &mocks.VectorSearcherMock{}
		_, err := NewRetriever(content, searcher, 50, 10).Candidates(context.Background(), domain.Preferences{Topics: []string{"AI"}})
		assert.ErrorIs(t, err, ErrNoCandidates)
		assert.Empty(t, searcher.SearchCalls())
	})

	t.Run("content store failure", func(t *testing.T) {
		content := &mocks.ContentStoreMock{
			QueryProcessedFunc: func(ctx context.Context, f domain.FilterCriteria) ([]domain.ContentItem, error) {
				return nil, errors.New("db is gone")
			},
		}
		_, err := NewRetriever(content, nil, 50, 10).Candidates(context.Background(), domain.Preferences{UserID: 1})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoCandidates)
		assert.Contains(t, err.Error(), "db is gone")
	})
}
