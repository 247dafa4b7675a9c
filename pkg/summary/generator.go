package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/llm"
	"github.com/umputun/curator/pkg/textproc"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// Completer is an LLM chat completion client
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
	Model() string
}

const titleDateLayout = "January 02, 2006"

// Generator turns candidate articles into a summary draft
type Generator struct {
	llm        Completer
	prompts    *PromptBuilder
	keyPhrases int
	now        func() time.Time
}

// NewGenerator makes a generator. keyPhrases limits phrases extracted for the title.
func NewGenerator(completer Completer, prompts *PromptBuilder, keyPhrases int) *Generator {
	if keyPhrases <= 0 {
		keyPhrases = 3
	}
	return &Generator{llm: completer, prompts: prompts, keyPhrases: keyPhrases, now: time.Now}
}

// Generate asks the LLM for a summary of items and fills title and reading metrics.
// UserID of the draft is left for the caller.
func (g *Generator) Generate(ctx context.Context, items []domain.ContentItem, p domain.Personalization,
	summaryType domain.SummaryType) (*domain.SummaryDraft, error) {
	prompt := g.prompts.Build(items, p, summaryType)
	lgr.Printf("[DEBUG] %s: %s prompt for %d items, %d chars", StatePromptBuilt, summaryType, len(items), len(prompt.User))

	text, err := g.llm.Complete(ctx, llm.Request{System: prompt.System, User: prompt.User})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyGeneration)
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	return &domain.SummaryDraft{
		Title:           g.title(text, summaryType),
		Text:            text,
		Type:            summaryType,
		ContentItemIDs:  ids,
		SystemPrompt:    prompt.System,
		UserPrompt:      prompt.User,
		Model:           g.llm.Model(),
		WordCount:       textproc.CountWords(text),
		ReadTimeMinutes: textproc.ReadingTime(text),
	}, nil
}

// title names the summary after its top key phrase and today's date
func (g *Generator) title(text string, summaryType domain.SummaryType) string {
	date := g.now().UTC().Format(titleDateLayout)
	caser := cases.Title(language.English)

	phrases := textproc.KeyPhrases(text, g.keyPhrases)
	if len(phrases) == 0 {
		return fmt.Sprintf("%s - %s", caser.String(strings.ReplaceAll(string(summaryType), "_", " ")), date)
	}

	topic := caser.String(phrases[0])
	switch summaryType {
	case domain.SummaryDailyDigest:
		return fmt.Sprintf("Daily Digest: %s - %s", topic, date)
	case domain.SummaryWeeklyRoundup:
		return fmt.Sprintf("Weekly Roundup: %s - %s", topic, date)
	default:
		return fmt.Sprintf("%s Summary - %s", topic, date)
	}
}
