package summary

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/curator/pkg/domain"
)

//go:generate moq -out mocks/preference_store.go -pkg mocks -skip-ensure -fmt goimports . PreferenceStore
//go:generate moq -out mocks/summary_store.go -pkg mocks -skip-ensure -fmt goimports . SummaryStore

// PreferenceStore loads user preferences, nil result means the user has none
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID int64) (*domain.Preferences, error)
}

// SummaryStore persists summaries
type SummaryStore interface {
	SaveSummary(ctx context.Context, draft *domain.SummaryDraft) (*domain.Summary, error)
	LatestSummaryTime(ctx context.Context, userID int64) (time.Time, error)
}

// Result describes how a single generation ended
type Result struct {
	UserID   int64
	Type     domain.SummaryType
	State    State
	Summary  *domain.Summary
	Err      error
	Duration time.Duration
}

// Option changes a single generation
type Option func(o *options)

type options struct {
	force bool
}

// WithForce skips the recent summary check
func WithForce(force bool) Option {
	return func(o *options) { o.force = force }
}

// PipelineParams for NewPipeline
type PipelineParams struct {
	Preferences  PreferenceStore
	Retriever    *Retriever
	Generator    *Generator
	Store        SummaryStore
	RecentWindow time.Duration // 0 disables the recent summary check
	LockPerUser  bool          // reject concurrent generation for the same user and type
}

// Pipeline runs the whole generation for one user: preferences, candidates, LLM, persistence
type Pipeline struct {
	prefs        PreferenceStore
	retriever    *Retriever
	generator    *Generator
	store        SummaryStore
	recentWindow time.Duration
	locks        *keyLock
	now          func() time.Time
}

// NewPipeline makes a pipeline
func NewPipeline(p PipelineParams) *Pipeline {
	res := &Pipeline{
		prefs:        p.Preferences,
		retriever:    p.Retriever,
		generator:    p.Generator,
		store:        p.Store,
		recentWindow: p.RecentWindow,
		now:          time.Now,
	}
	if p.LockPerUser {
		res.locks = newKeyLock()
	}
	return res
}

// Generate makes and stores a summary for the user
func (p *Pipeline) Generate(ctx context.Context, userID int64, summaryType domain.SummaryType, opts ...Option) (*domain.Summary, error) {
	res := p.Run(ctx, userID, summaryType, opts...)
	return res.Summary, res.Err
}

// Run is Generate reporting the final state. The result is logged.
func (p *Pipeline) Run(ctx context.Context, userID int64, summaryType domain.SummaryType, opts ...Option) Result {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	st := time.Now()
	res := p.run(ctx, userID, summaryType, o)
	res.UserID, res.Type, res.Duration = userID, summaryType, time.Since(st)

	switch {
	case res.Err == nil:
		lgr.Printf("[INFO] summary %s (%s) for user %d generated from %d items in %v",
			res.Summary.ID, summaryType, userID, len(res.Summary.ContentItemIDs), res.Duration.Round(time.Millisecond))
	case res.State == StateSkipped || res.State == StateNoCandidates:
		lgr.Printf("[INFO] summary %s for user %d not generated, %s: %v", summaryType, userID, res.State, res.Err)
	default:
		lgr.Printf("[WARN] summary %s for user %d failed, %s: %v", summaryType, userID, res.State, res.Err)
	}
	return res
}

func (p *Pipeline) run(ctx context.Context, userID int64, summaryType domain.SummaryType, o options) Result {
	if p.locks != nil {
		key := fmt.Sprintf("%d:%s", userID, summaryType)
		if !p.locks.tryLock(key) {
			return Result{State: StateSkipped, Err: ErrInProgress}
		}
		defer p.locks.unlock(key)
	}

	prefs, err := p.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return Result{State: StateNoPreferences, Err: fmt.Errorf("load preferences of user %d: %w", userID, err)}
	}
	if prefs == nil {
		return Result{State: StateNoPreferences, Err: ErrPreferencesMissing}
	}
	p.trace(userID, StatePreferencesLoaded, "%d topics, frequency %s", len(prefs.Topics), prefs.Frequency)

	if p.recentWindow > 0 && !o.force {
		latest, lerr := p.store.LatestSummaryTime(ctx, userID)
		if lerr != nil {
			return Result{State: StatePreferencesLoaded, Err: fmt.Errorf("check recent summary: %w", lerr)}
		}
		if !latest.IsZero() && p.now().Sub(latest) < p.recentWindow {
			return Result{State: StateSkipped, Err: fmt.Errorf("%w: created at %s", ErrRecentSummary, latest.Format(time.RFC3339))}
		}
	}

	items, err := p.retriever.Candidates(ctx, *prefs)
	if err != nil {
		return Result{State: StateNoCandidates, Err: err}
	}
	p.trace(userID, StateCandidatesRetrieved, "%d items", len(items))

	draft, err := p.generator.Generate(ctx, items, domain.ToPersonalization(*prefs), summaryType)
	if err != nil {
		return Result{State: StateGenerationFailed, Err: err}
	}
	draft.UserID = userID
	p.trace(userID, StateLLMCompleted, "%d words, title %q", draft.WordCount, draft.Title)

	summary, err := p.store.SaveSummary(ctx, draft)
	if err != nil {
		return Result{State: StatePersistenceFailed, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
	}
	return Result{State: StatePersisted, Summary: summary}
}

func (p *Pipeline) trace(userID int64, state State, format string, args ...any) {
	lgr.Printf("[DEBUG] summary for user %d, %s: %s", userID, state, fmt.Sprintf(format, args...))
}

// IsSkipped reports errors of requests that were not attempted or had nothing to summarize
func IsSkipped(err error) bool {
	return errors.Is(err, ErrRecentSummary) || errors.Is(err, ErrInProgress) || errors.Is(err, ErrNoCandidates)
}

// keyLock holds a set of busy keys, a second holder of the same key is rejected rather than queued
type keyLock struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newKeyLock() *keyLock {
	return &keyLock{busy: make(map[string]struct{})}
}

func (l *keyLock) tryLock(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.busy[key]; ok {
		return false
	}
	l.busy[key] = struct{}{}
	return true
}

func (l *keyLock) unlock(key string) {
	l.mu.Lock()
	delete(l.busy, key)
	l.mu.Unlock()
}
