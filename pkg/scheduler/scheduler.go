package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/summary"
)

//go:generate moq -out mocks/batch.go -pkg mocks -skip-ensure -fmt goimports . Batch
//go:generate moq -out mocks/cleaner.go -pkg mocks -skip-ensure -fmt goimports . Cleaner
//go:generate moq -out mocks/content_source.go -pkg mocks -skip-ensure -fmt goimports . ContentSource
//go:generate moq -out mocks/indexer.go -pkg mocks -skip-ensure -fmt goimports . Indexer
//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore

// lastBatchKey is the setting keeping time of the last completed summary batch
const lastBatchKey = "last_batch_run"

// Batch generates summaries for all users due at the given time
type Batch interface {
	Run(ctx context.Context, now time.Time) (summary.BatchStats, error)
}

// Cleaner removes old summaries
type Cleaner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ContentSource lists processed content items without embeddings
type ContentSource interface {
	ItemsWithoutEmbedding(ctx context.Context, model string, limit int) ([]domain.ContentItem, error)
}

// Indexer embeds content items for similarity search
type Indexer interface {
	Index(ctx context.Context, items []domain.ContentItem) (int, error)
}

// SettingStore keeps scheduler state between restarts
type SettingStore interface {
	GetTime(ctx context.Context, key string) (time.Time, error)
	SetTime(ctx context.Context, key string, ts time.Time) error
}

// Config holds scheduler configuration
type Config struct {
	BatchCron      string        // cron expression for the summary batch
	CleanupCron    string        // cron expression for retention cleanup
	RetentionDays  int           // summaries older than this are removed, 0 disables cleanup
	IndexInterval  time.Duration // how often new content is embedded, 0 disables indexing
	IndexBatchSize int
	EmbeddingModel string
}

// Params for NewScheduler. Indexer and Content are optional.
type Params struct {
	Batch    Batch
	Cleaner  Cleaner
	Content  ContentSource
	Indexer  Indexer
	Settings SettingStore
	Config   Config
}

// Scheduler triggers summary batches and retention cleanup on cron schedules
// and keeps the vector index up to date
type Scheduler struct {
	batch    Batch
	cleaner  Cleaner
	content  ContentSource
	indexer  Indexer
	settings SettingStore
	cfg      Config

	cron   *cron.Cron
	wg     sync.WaitGroup
	cancel context.CancelFunc
	now    func() time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.Config.BatchCron == "" {
		p.Config.BatchCron = "0 6 * * *"
	}
	if p.Config.IndexBatchSize <= 0 {
		p.Config.IndexBatchSize = 20
	}
	return &Scheduler{
		batch:    p.Batch,
		cleaner:  p.Cleaner,
		content:  p.Content,
		indexer:  p.Indexer,
		settings: p.Settings,
		cfg:      p.Config,
		now:      time.Now,
	}
}

// Start registers cron jobs and starts the indexing worker. A batch missed while the service
// was down is run right away.
func (s *Scheduler) Start(ctx context.Context) error {
	batchSchedule, err := cron.ParseStandard(s.cfg.BatchCron)
	if err != nil {
		return fmt.Errorf("parse batch schedule %q: %w", s.cfg.BatchCron, err)
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s.cron.Schedule(batchSchedule, cron.FuncJob(func() {
		if err := s.RunBatch(ctx); err != nil {
			lgr.Printf("[WARN] scheduled summary batch failed: %v", err)
		}
	}))

	if s.cleaner != nil && s.cfg.RetentionDays > 0 && s.cfg.CleanupCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.CleanupCron, func() { s.Cleanup(ctx) }); err != nil {
			s.cancel()
			return fmt.Errorf("parse cleanup schedule %q: %w", s.cfg.CleanupCron, err)
		}
	}
	s.cron.Start()

	if s.indexer != nil && s.content != nil && s.cfg.IndexInterval > 0 {
		s.wg.Add(1)
		go s.indexWorker(ctx)
	}

	if s.missedBatch(ctx, batchSchedule) {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			lgr.Printf("[INFO] summary batch was missed, running now")
			if err := s.RunBatch(ctx); err != nil {
				lgr.Printf("[WARN] catch-up summary batch failed: %v", err)
			}
		}()
	}

	lgr.Printf("[INFO] scheduler started, batch %q, cleanup %q, index interval %v",
		s.cfg.BatchCron, s.cfg.CleanupCron, s.cfg.IndexInterval)
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunBatch runs the summary batch for the current time and records its completion
func (s *Scheduler) RunBatch(ctx context.Context) error {
	now := s.now()
	stats, err := s.batch.Run(ctx, now)
	if err != nil {
		return fmt.Errorf("run summary batch: %w", err)
	}
	lgr.Printf("[DEBUG] batch stats: %+v", stats)
	if s.settings != nil {
		if err := s.settings.SetTime(ctx, lastBatchKey, now); err != nil {
			return fmt.Errorf("save last batch time: %w", err)
		}
	}
	return nil
}

// Cleanup removes summaries older than the retention period
func (s *Scheduler) Cleanup(ctx context.Context) {
	cutoff := s.now().AddDate(0, 0, -s.cfg.RetentionDays)
	deleted, err := s.cleaner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		lgr.Printf("[WARN] failed to clean up old summaries: %v", err)
		return
	}
	lgr.Printf("[INFO] removed %d summaries older than %d days", deleted, s.cfg.RetentionDays)
}

// IndexPending embeds processed items which have no vector yet, returns number of indexed items
func (s *Scheduler) IndexPending(ctx context.Context) (int, error) {
	items, err := s.content.ItemsWithoutEmbedding(ctx, s.cfg.EmbeddingModel, s.cfg.IndexBatchSize)
	if err != nil {
		return 0, fmt.Errorf("get items to index: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}
	n, err := s.indexer.Index(ctx, items)
	if err != nil {
		return n, fmt.Errorf("index items: %w", err)
	}
	lgr.Printf("[INFO] indexed %d new items", n)
	return n, nil
}

// indexWorker periodically indexes new content
func (s *Scheduler) indexWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.IndexInterval)
	defer ticker.Stop()

	// run immediately on start
	s.indexAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.indexAll(ctx)
		}
	}
}

// indexAll drains pending items batch by batch
func (s *Scheduler) indexAll(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := s.IndexPending(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				lgr.Printf("[WARN] indexing failed: %v", err)
			}
			return
		}
		if n < s.cfg.IndexBatchSize {
			return
		}
	}
}

// missedBatch reports whether a scheduled batch time passed since the last recorded run.
// Nothing is considered missed on the very first start.
func (s *Scheduler) missedBatch(ctx context.Context, schedule cron.Schedule) bool {
	if s.settings == nil {
		return false
	}
	last, err := s.settings.GetTime(ctx, lastBatchKey)
	if err != nil {
		lgr.Printf("[WARN] failed to read last batch time: %v", err)
		return false
	}
	if last.IsZero() {
		return false
	}
	return !schedule.Next(last.Local()).After(s.now())
}
