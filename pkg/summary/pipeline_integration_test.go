package summary

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/repository"
	"github.com/umputun/curator/pkg/vector"
	vmocks "github.com/umputun/curator/pkg/vector/mocks"
)

type integrationEnv struct {
	repos    *repository.Repositories
	embedder *vmocks.EmbedderMock
	searcher *vector.Searcher
	user     *domain.User
	site     *domain.Website
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()
	ctx := context.Background()

	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: filepath.Join(t.TempDir(), "it.db"), MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	// texts mentioning AI point one way, everything else the other way
	embedder := &vmocks.EmbedderMock{
		EmbedFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			res := make([][]float32, len(texts))
			for i, text := range texts {
				if strings.Contains(text, "AI") {
					res[i] = []float32{1, 0}
					continue
				}
				res[i] = []float32{0, 1}
			}
			return res, nil
		},
	}
	searcher, err := vector.NewSearcher(vector.Params{Embedder: embedder, Store: repos.Embedding, Model: "test-embed"})
	require.NoError(t, err)

	user := &domain.User{Email: "it@example.com", Active: true}
	require.NoError(t, repos.User.CreateUser(ctx, user))
	site := &domain.Website{URL: "https://news.example.com", Name: "News", Category: "tech", Active: true}
	require.NoError(t, repos.Content.UpsertWebsite(ctx, site))

	return &integrationEnv{repos: repos, embedder: embedder, searcher: searcher, user: user, site: site}
}

func (e *integrationEnv) addItem(t *testing.T, title string, age time.Duration) *domain.ContentItem {
	t.Helper()
	item := &domain.ContentItem{WebsiteID: e.site.ID, Title: title, URL: "https://news.example.com/" + strings.ReplaceAll(title, " ", "-"),
		CleanedContent: "Body of " + title, Language: "en", WordCount: 200, ScrapedAt: time.Now().Add(-age), Processed: true}
	require.NoError(t, e.repos.Content.CreateContentItem(context.Background(), item))
	return item
}

func (e *integrationEnv) pipeline(completer Completer) *Pipeline {
	return NewPipeline(PipelineParams{
		Preferences:  e.repos.Preference,
		Retriever:    NewRetriever(e.repos.Content, e.searcher, 50, 10),
		Generator:    NewGenerator(completer, NewPromptBuilder(1000), 3),
		Store:        e.repos.Summary,
		RecentWindow: 6 * time.Hour,
		LockPerUser:  true,
	})
}

func TestPipelineIntegration_RecentTopicArticles(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	prefs := domain.DefaultPreferences(env.user.ID)
	prefs.Topics = []string{"AI"}
	prefs.Frequency = domain.FrequencyDaily
	require.NoError(t, env.repos.Preference.SetPreferences(ctx, &prefs))

	recent := []*domain.ContentItem{
		env.addItem(t, "AI chips", 2*time.Hour),
		env.addItem(t, "Rust release", 10*time.Hour),
		env.addItem(t, "AI agents", 20*time.Hour),
	}
	old := env.addItem(t, "AI history", 72*time.Hour)

	unindexed, err := env.repos.Content.ItemsWithoutEmbedding(ctx, "test-embed", 100)
	require.NoError(t, err)
	n, err := env.searcher.Index(ctx, unindexed)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	completer := completerWith(digestText, nil)
	summary, err := env.pipeline(completer).Generate(ctx, env.user.ID, domain.SummaryDailyDigest)
	require.NoError(t, err)

	assert.Len(t, summary.ContentItemIDs, 3)
	assert.NotContains(t, summary.ContentItemIDs, old.ID)
	assert.Equal(t, []int64{recent[0].ID, recent[1].ID, recent[2].ID}, summary.ContentItemIDs, "pool order kept")
	require.Len(t, env.embedder.EmbedCalls(), 2, "index and query")
	assert.Equal(t, []string{"AI"}, env.embedder.EmbedCalls()[1].Texts)

	stored, err := env.repos.Summary.GetSummary(ctx, summary.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.ContentItemIDs, stored.ContentItemIDs)
	assert.Contains(t, stored.Prompt, "Please create a personalized daily_digest")

	// second request within the recent window is skipped
	_, err = env.pipeline(completer).Generate(ctx, env.user.ID, domain.SummaryDailyDigest)
	assert.ErrorIs(t, err, ErrRecentSummary)
	assert.Len(t, completer.CompleteCalls(), 1)
}

func TestPipelineIntegration_NoTopicsWeekly(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	prefs := domain.DefaultPreferences(env.user.ID)
	prefs.Frequency = domain.FrequencyWeekly
	prefs.MaxItems = 5
	require.NoError(t, env.repos.Preference.SetPreferences(ctx, &prefs))

	var ids []int64
	for i := 0; i < 10; i++ {
		item := env.addItem(t, fmt.Sprintf("story %d", i), time.Duration(i*12+1)*time.Hour)
		ids = append(ids, item.ID)
	}

	summary, err := env.pipeline(completerWith(digestText, nil)).Generate(ctx, env.user.ID, domain.SummaryWeeklyRoundup)
	require.NoError(t, err)
	assert.Equal(t, ids[:5], summary.ContentItemIDs, "five most recent")
	assert.Empty(t, env.embedder.EmbedCalls(), "no vector narrowing without topics")
}

func TestPipelineIntegration_EmptyGenerationLeavesNoTrace(t *testing.T) {
	env := newIntegrationEnv(t)
	ctx := context.Background()

	prefs := domain.DefaultPreferences(env.user.ID)
	require.NoError(t, env.repos.Preference.SetPreferences(ctx, &prefs))
	item := env.addItem(t, "quiet day", time.Hour)

	_, err := env.pipeline(completerWith("", nil)).Generate(ctx, env.user.ID, domain.SummaryDailyDigest)
	require.ErrorIs(t, err, ErrEmptyGeneration)

	list, err := env.repos.Summary.ListSummaries(ctx, env.user.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := env.repos.Content.GetContentItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "quiet day", got.Title)
	stored, err := env.repos.Preference.GetPreferences(ctx, env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs.Frequency, stored.Frequency)
}

func TestPipelineIntegration_NoPreferences(t *testing.T) {
	env := newIntegrationEnv(t)
	env.addItem(t, "AI news", time.Hour)

	completer := completerWith(digestText, nil)
	_, err := env.pipeline(completer).Generate(context.Background(), env.user.ID, domain.SummaryDailyDigest)
	require.ErrorIs(t, err, ErrPreferencesMissing)
	assert.Empty(t, completer.CompleteCalls())
}
