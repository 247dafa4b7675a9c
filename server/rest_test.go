package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/repository"
	"github.com/umputun/curator/pkg/summary"
	"github.com/umputun/curator/server/mocks"
)

func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func testSummary() *domain.Summary {
	return &domain.Summary{
		ID: "01JH0000000000000000000000", UserID: 7, Title: "Daily Digest - January 15, 2025",
		Text: "## Highlights\n\n- **Go 1.24** released\n\n<script>alert(1)</script>", Type: domain.SummaryDailyDigest,
		ContentItemIDs: []int64{3, 1}, Prompt: "system\n\nuser", Model: "gpt-4o-mini", WordCount: 120,
		ReadTimeMinutes: 1, CreatedAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestServer_getPreferences(t *testing.T) {
	prefs := &mocks.PreferenceStoreMock{GetPreferencesFunc: func(ctx context.Context, userID int64) (*domain.Preferences, error) {
		switch userID {
		case 7:
			p := domain.DefaultPreferences(7)
			p.Topics = []string{"go"}
			return &p, nil
		case 8:
			return nil, nil
		default:
			return nil, errors.New("db error")
		}
	}}
	srv := testServer(t, Params{Preferences: prefs})

	w := serve(srv, http.MethodGet, "/api/v1/users/7/preferences", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view preferencesView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, []string{"go"}, view.Topics)
	assert.Equal(t, "bullets", view.Format)
	assert.Equal(t, "daily", view.Frequency)
	assert.Equal(t, 10, view.MaxItems)

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/api/v1/users/8/preferences", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(srv, http.MethodGet, "/api/v1/users/9/preferences", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodGet, "/api/v1/users/abc/preferences", "").Code)
}

func TestServer_setPreferences(t *testing.T) {
	users := &mocks.UserStoreMock{GetUserFunc: func(ctx context.Context, id int64) (*domain.User, error) {
		if id == 7 {
			return &domain.User{ID: 7, Email: "u@example.com", Active: true}, nil
		}
		return nil, nil
	}}

	t.Run("stores preferences with defaults", func(t *testing.T) {
		prefs := &mocks.PreferenceStoreMock{SetPreferencesFunc: func(ctx context.Context, p *domain.Preferences) error { return nil }}
		srv := testServer(t, Params{Users: users, Preferences: prefs})

		w := serve(srv, http.MethodPut, "/api/v1/users/7/preferences",
			`{"topics":["ai","go"],"format":"narrative","frequency":"weekly","max_items":5}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Len(t, prefs.SetPreferencesCalls(), 1)
		saved := prefs.SetPreferencesCalls()[0].Prefs
		assert.Equal(t, int64(7), saved.UserID)
		assert.Equal(t, []string{"ai", "go"}, saved.Topics)
		assert.Equal(t, domain.FormatNarrative, saved.Format)
		assert.Equal(t, domain.DepthSummary, saved.Depth)
		assert.Equal(t, domain.FrequencyWeekly, saved.Frequency)
		assert.Equal(t, 5, saved.MaxItems)
		assert.True(t, saved.IncludeSummaries)
		assert.Equal(t, "en", saved.Language)
	})

	tbl := []struct {
		name string
		body string
	}{
		{"bad json", `{"topics":`},
		{"bad format", `{"format":"poem"}`},
		{"bad depth", `{"depth":"shallow"}`},
		{"bad length", `{"length":"huge"}`},
		{"bad frequency", `{"frequency":"hourly"}`},
		{"too many items", `{"max_items":51}`},
		{"zero items", `{"max_items":0}`},
		{"negative word cap", `{"max_word_count":-1}`},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			prefs := &mocks.PreferenceStoreMock{}
			srv := testServer(t, Params{Users: users, Preferences: prefs})
			w := serve(srv, http.MethodPut, "/api/v1/users/7/preferences", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, prefs.SetPreferencesCalls())
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		srv := testServer(t, Params{Users: users})
		w := serve(srv, http.MethodPut, "/api/v1/users/99/preferences", `{}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		prefs := &mocks.PreferenceStoreMock{SetPreferencesFunc: func(ctx context.Context, p *domain.Preferences) error {
			return errors.New("disk full")
		}}
		srv := testServer(t, Params{Users: users, Preferences: prefs})
		w := serve(srv, http.MethodPut, "/api/v1/users/7/preferences", `{}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestServer_createContent(t *testing.T) {
	t.Run("stores processed item", func(t *testing.T) {
		content := &mocks.ContentStoreMock{
			UpsertWebsiteFunc: func(ctx context.Context, site *domain.Website) error {
				site.ID = 3
				return nil
			},
			CreateContentItemFunc: func(ctx context.Context, item *domain.ContentItem) error {
				item.ID = 42
				return nil
			},
		}
		srv := testServer(t, Params{Content: content})

		body := `{"website":{"url":"https://blog.example.com","name":"Example","category":"tech"},
			"url":"https://blog.example.com/post","title":" Post ",
			"content":"<p>Go is a programming language designed at Google for building simple reliable software.</p>",
			"published_at":"2025-01-14T10:00:00Z"}`
		w := serve(srv, http.MethodPost, "/api/v1/content", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 42, resp["id"], 0)
		assert.Equal(t, "en", resp["language"])

		site := content.UpsertWebsiteCalls()[0].Site
		assert.Equal(t, "tech", site.Category)
		assert.True(t, site.Active)

		item := content.CreateContentItemCalls()[0].Item
		assert.Equal(t, int64(3), item.WebsiteID)
		assert.Equal(t, "Post", item.Title)
		assert.True(t, item.Processed)
		assert.NotContains(t, item.CleanedContent, "<p>")
		assert.Equal(t, 13, item.WordCount)
		assert.Equal(t, time.Date(2025, 1, 14, 10, 0, 0, 0, time.UTC), item.PublishedAt)
	})

	tbl := []struct {
		name string
		body string
	}{
		{"bad json", `[`},
		{"no website", `{"url":"https://a.com/x","title":"t","content":"c"}`},
		{"bad url", `{"website":{"url":"https://a.com"},"url":"not a url","title":"t","content":"c"}`},
		{"no title", `{"website":{"url":"https://a.com"},"url":"https://a.com/x","content":"c"}`},
		{"no content", `{"website":{"url":"https://a.com"},"url":"https://a.com/x","title":"t"}`},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			content := &mocks.ContentStoreMock{}
			srv := testServer(t, Params{Content: content})
			assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPost, "/api/v1/content", tt.body).Code)
			assert.Empty(t, content.UpsertWebsiteCalls())
		})
	}

	t.Run("store failure", func(t *testing.T) {
		content := &mocks.ContentStoreMock{
			UpsertWebsiteFunc:     func(ctx context.Context, site *domain.Website) error { return nil },
			CreateContentItemFunc: func(ctx context.Context, item *domain.ContentItem) error { return errors.New("unique constraint") },
		}
		srv := testServer(t, Params{Content: content})
		w := serve(srv, http.MethodPost, "/api/v1/content",
			`{"website":{"url":"https://a.com"},"url":"https://a.com/x","title":"t","content":"c","language":"de"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "de", content.CreateContentItemCalls()[0].Item.Language)
	})
}

func TestServer_listSummaries(t *testing.T) {
	summaries := &mocks.SummaryStoreMock{ListSummariesFunc: func(ctx context.Context, userID int64, limit int) ([]domain.Summary, error) {
		if userID == 9 {
			return nil, errors.New("db error")
		}
		return []domain.Summary{*testSummary()}, nil
	}}
	srv := testServer(t, Params{Summaries: summaries})

	w := serve(srv, http.MethodGet, "/api/v1/users/7/summaries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []summaryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Daily Digest - January 15, 2025", list[0].Title)
	assert.Empty(t, list[0].Text, "text is not included in lists")
	assert.Equal(t, []int64{3, 1}, list[0].ContentItemIDs)
	assert.Equal(t, defaultListLimit, summaries.ListSummariesCalls()[0].Limit)

	serve(srv, http.MethodGet, "/api/v1/users/7/summaries?limit=500", "")
	assert.Equal(t, maxListLimit, summaries.ListSummariesCalls()[1].Limit)

	assert.Equal(t, http.StatusInternalServerError, serve(srv, http.MethodGet, "/api/v1/users/9/summaries", "").Code)
}

func TestServer_generateSummary(t *testing.T) {
	prefs := &mocks.PreferenceStoreMock{GetPreferencesFunc: func(ctx context.Context, userID int64) (*domain.Preferences, error) {
		if userID == 8 {
			return nil, nil
		}
		p := domain.DefaultPreferences(userID)
		p.Frequency = domain.FrequencyWeekly
		return &p, nil
	}}

	t.Run("type from preferences", func(t *testing.T) {
		gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, userID int64, st domain.SummaryType,
			opts ...summary.Option) (*domain.Summary, error) {
			return testSummary(), nil
		}}
		srv := testServer(t, Params{Preferences: prefs, Generator: gen})

		w := serve(srv, http.MethodPost, "/api/v1/users/7/summaries", "")
		require.Equal(t, http.StatusCreated, w.Code)
		var view summaryView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.NotEmpty(t, view.Text)
		assert.Equal(t, "gpt-4o-mini", view.Model)

		require.Len(t, gen.GenerateCalls(), 1)
		assert.Equal(t, domain.SummaryWeeklyRoundup, gen.GenerateCalls()[0].SummaryType)
		assert.Len(t, gen.GenerateCalls()[0].Opts, 1)
	})

	t.Run("explicit type skips preferences lookup", func(t *testing.T) {
		prefs := &mocks.PreferenceStoreMock{}
		gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, userID int64, st domain.SummaryType,
			opts ...summary.Option) (*domain.Summary, error) {
			return testSummary(), nil
		}}
		srv := testServer(t, Params{Preferences: prefs, Generator: gen})

		w := serve(srv, http.MethodPost, "/api/v1/users/7/summaries?type=custom_brief&force=true", "")
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, domain.SummaryType("custom_brief"), gen.GenerateCalls()[0].SummaryType)
		assert.Empty(t, prefs.GetPreferencesCalls())
	})

	t.Run("no preferences", func(t *testing.T) {
		srv := testServer(t, Params{Preferences: prefs})
		assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/api/v1/users/8/summaries", "").Code)
	})

	tbl := []struct {
		err  error
		code int
	}{
		{summary.ErrPreferencesMissing, http.StatusNotFound},
		{summary.ErrNoCandidates, http.StatusNotFound},
		{fmt.Errorf("%w: %w", summary.ErrGeneration, summary.ErrEmptyGeneration), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: timeout", summary.ErrGeneration), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: disk full", summary.ErrPersistence), http.StatusInternalServerError},
		{summary.ErrInProgress, http.StatusConflict},
		{summary.ErrRecentSummary, http.StatusConflict},
	}
	for _, tt := range tbl {
		t.Run(tt.err.Error(), func(t *testing.T) {
			gen := &mocks.GeneratorMock{GenerateFunc: func(ctx context.Context, userID int64, st domain.SummaryType,
				opts ...summary.Option) (*domain.Summary, error) {
				return nil, tt.err
			}}
			srv := testServer(t, Params{Preferences: prefs, Generator: gen})
			w := serve(srv, http.MethodPost, "/api/v1/users/7/summaries?type=daily_digest", "")
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestServer_getSummary(t *testing.T) {
	summaries := &mocks.SummaryStoreMock{GetSummaryFunc: func(ctx context.Context, id string) (*domain.Summary, error) {
		switch id {
		case "missing":
			return nil, repository.ErrSummaryNotFound
		case "broken":
			return nil, errors.New("db error")
		default:
			return testSummary(), nil
		}
	}}
	srv := testServer(t, Params{Summaries: summaries})

	w := serve(srv, http.MethodGet, "/api/v1/summaries/01JH0000000000000000000000", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view summaryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "system\n\nuser", view.Prompt)
	assert.Equal(t, "daily_digest", view.Type)

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/api/v1/summaries/missing", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(srv, http.MethodGet, "/api/v1/summaries/broken", "").Code)
}

func TestServer_summaryPage(t *testing.T) {
	summaries := &mocks.SummaryStoreMock{GetSummaryFunc: func(ctx context.Context, id string) (*domain.Summary, error) {
		if id == "missing" {
			return nil, repository.ErrSummaryNotFound
		}
		return testSummary(), nil
	}}
	srv := testServer(t, Params{Summaries: summaries})

	w := serve(srv, http.MethodGet, "/summaries/01JH0000000000000000000000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Daily Digest - January 15, 2025</title>")
	assert.Contains(t, body, "<h2>Highlights</h2>")
	assert.Contains(t, body, "<strong>Go 1.24</strong>")
	assert.Contains(t, body, "2 articles")
	assert.NotContains(t, body, "<script>")

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/summaries/missing", "").Code)
}

func TestServer_markRead(t *testing.T) {
	summaries := &mocks.SummaryStoreMock{MarkReadFunc: func(ctx context.Context, id string) error {
		switch id {
		case "missing":
			return repository.ErrSummaryNotFound
		case "broken":
			return errors.New("db error")
		default:
			return nil
		}
	}}
	srv := testServer(t, Params{Summaries: summaries})

	w := serve(srv, http.MethodPost, "/api/v1/summaries/abc/read", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"abc","status":"read"}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/api/v1/summaries/missing/read", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(srv, http.MethodPost, "/api/v1/summaries/broken/read", "").Code)
}

func TestServer_stats(t *testing.T) {
	summaries := &mocks.SummaryStoreMock{StatsFunc: func(ctx context.Context, now time.Time, days int) (*domain.SummaryStats, error) {
		return &domain.SummaryStats{PeriodDays: days, TotalSummaries: 4, AvgContentItems: 2.5, UniqueUsers: 2}, nil
	}}
	srv := testServer(t, Params{Summaries: summaries, StatsDays: 14})

	w := serve(srv, http.MethodGet, "/api/v1/summaries/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats domain.SummaryStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 14, stats.PeriodDays)
	assert.Equal(t, 4, stats.TotalSummaries)
	assert.Empty(t, summaries.GetSummaryCalls(), "stats route must not be taken as summary id")

	serve(srv, http.MethodGet, "/api/v1/summaries/stats?days=7", "")
	assert.Equal(t, 7, summaries.StatsCalls()[1].Days)
}

func TestGenerationStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, generationStatus(errors.New("other")))
	assert.Equal(t, http.StatusConflict, generationStatus(fmt.Errorf("wrapped: %w", summary.ErrInProgress)))
}
