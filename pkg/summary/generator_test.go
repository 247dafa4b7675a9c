package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/llm"
	"github.com/umputun/curator/pkg/summary/mocks"
)

const digestText = "Machine learning is changing search. Machine learning models rank results. Machine learning wins."

func newTestGenerator(completer Completer) *Generator {
	g := NewGenerator(completer, NewPromptBuilder(1000), 3)
	g.now = func() time.Time { return testNow }
	return g
}

func completerWith(text string, err error) *mocks.CompleterMock {
	return &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) { return text, err },
		ModelFunc:    func() string { return "gpt-4o-mini" },
	}
}

func TestGenerator_Generate(t *testing.T) {
	completer := completerWith("  "+digestText+"\n", nil)
	g := newTestGenerator(completer)

	items := makePool(3)
	p := domain.Personalization{Format: domain.FormatNarrative, Topics: []string{"ml"}}
	draft, err := g.Generate(context.Background(), items, p, domain.SummaryDailyDigest)
	require.NoError(t, err)

	assert.Equal(t, "Daily Digest: Machine Learning - January 15, 2025", draft.Title)
	assert.Equal(t, digestText, draft.Text)
	assert.Equal(t, domain.SummaryDailyDigest, draft.Type)
	assert.Equal(t, []int64{1, 2, 3}, draft.ContentItemIDs)
	assert.Equal(t, "gpt-4o-mini", draft.Model)
	assert.Equal(t, 13, draft.WordCount)
	assert.Equal(t, 1, draft.ReadTimeMinutes)
	assert.Zero(t, draft.UserID)

	require.Len(t, completer.CompleteCalls(), 1)
	req := completer.CompleteCalls()[0].Req
	expected := NewPromptBuilder(1000).Build(items, p, domain.SummaryDailyDigest)
	assert.Equal(t, expected.System, req.System)
	assert.Equal(t, expected.User, req.User)
	assert.Equal(t, expected.System, draft.SystemPrompt)
	assert.Equal(t, expected.User, draft.UserPrompt)
}

func TestGenerator_Title(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		summaryType domain.SummaryType
		want        string
	}{
		{"daily", digestText, domain.SummaryDailyDigest, "Daily Digest: Machine Learning - January 15, 2025"},
		{"weekly", digestText, domain.SummaryWeeklyRoundup, "Weekly Roundup: Machine Learning - January 15, 2025"},
		{"monthly", digestText, domain.SummaryMonthlyOverview, "Machine Learning Summary - January 15, 2025"},
		{"no phrases daily", "Nothing repeats here.", domain.SummaryDailyDigest, "Daily Digest - January 15, 2025"},
		{"no phrases custom", "Nothing repeats here.", "custom_tech_report", "Custom Tech Report - January 15, 2025"},
	}

	g := newTestGenerator(completerWith("", nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.title(tt.text, tt.summaryType))
		})
	}
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		_, err := newTestGenerator(completerWith(" \n\t", nil)).Generate(context.Background(), makePool(1),
			domain.Personalization{}, domain.SummaryDailyDigest)
		assert.ErrorIs(t, err, ErrEmptyGeneration)
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("llm failure", func(t *testing.T) {
		llmErr := &llm.Error{Kind: llm.KindServer, StatusCode: 503, Err: errors.New("overloaded")}
		_, err := newTestGenerator(completerWith("", llmErr)).Generate(context.Background(), makePool(1),
			domain.Personalization{}, domain.SummaryDailyDigest)
		assert.ErrorIs(t, err, ErrGeneration)
		var e *llm.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, 503, e.StatusCode)
	})
}

func TestGenerator_ReadingMetrics(t *testing.T) {
	text := strings.Repeat("word ", 800)
	draft, err := newTestGenerator(completerWith(text, nil)).Generate(context.Background(), makePool(1),
		domain.Personalization{}, domain.SummaryWeeklyRoundup)
	require.NoError(t, err)
	assert.Equal(t, 800, draft.WordCount)
	assert.Equal(t, 3, draft.ReadTimeMinutes)
}
