package summary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/curator/pkg/domain"
)

//go:generate moq -out mocks/user_lister.go -pkg mocks -skip-ensure -fmt goimports . UserLister

// UserLister returns active users by delivery frequency
type UserLister interface {
	ActiveUsersByFrequency(ctx context.Context, freq domain.DeliveryFrequency) ([]int64, error)
}

// runner is implemented by Pipeline
type runner interface {
	Run(ctx context.Context, userID int64, summaryType domain.SummaryType, opts ...Option) Result
}

// BatchParams for NewBatch
type BatchParams struct {
	Users          UserLister
	Pipeline       runner
	MaxWorkers     int
	RequestTimeout time.Duration
	WeeklyDay      time.Weekday
	MonthlyDay     int
}

// BatchStats counts outcomes of a batch run
type BatchStats struct {
	Users     int
	Generated int
	Skipped   int
	Failed    int
}

// Batch generates summaries for every user due at a given time
type Batch struct {
	users      UserLister
	pipeline   runner
	maxWorkers int
	timeout    time.Duration
	weeklyDay  time.Weekday
	monthlyDay int
}

// NewBatch makes a batch runner
func NewBatch(p BatchParams) *Batch {
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 5
	}
	if p.MonthlyDay <= 0 {
		p.MonthlyDay = 1
	}
	return &Batch{users: p.Users, pipeline: p.Pipeline, maxWorkers: p.MaxWorkers, timeout: p.RequestTimeout,
		weeklyDay: p.WeeklyDay, monthlyDay: p.MonthlyDay}
}

type dueUser struct {
	id          int64
	summaryType domain.SummaryType
}

// Run generates summaries for users due at now: daily users always, weekly users on the weekly day
// and monthly users on the monthly day. Failure of a single user doesn't stop the batch.
func (b *Batch) Run(ctx context.Context, now time.Time) (BatchStats, error) {
	due, err := b.dueUsers(ctx, now)
	if err != nil {
		return BatchStats{}, err
	}
	lgr.Printf("[INFO] summary batch started for %d users", len(due))

	var mu sync.Mutex
	stats := BatchStats{Users: len(due)}

	g := errgroup.Group{}
	g.SetLimit(b.maxWorkers)
	for _, u := range due {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			userCtx := ctx
			if b.timeout > 0 {
				var cancel context.CancelFunc
				userCtx, cancel = context.WithTimeout(ctx, b.timeout)
				defer cancel()
			}

			res := b.pipeline.Run(userCtx, u.id, u.summaryType)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case res.Err == nil:
				stats.Generated++
			case IsSkipped(res.Err):
				stats.Skipped++
			default:
				stats.Failed++
			}
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[INFO] summary batch completed, generated %d, skipped %d, failed %d of %d users",
		stats.Generated, stats.Skipped, stats.Failed, stats.Users)
	return stats, ctx.Err()
}

// dueUsers lists users to process at now, each user once
func (b *Batch) dueUsers(ctx context.Context, now time.Time) ([]dueUser, error) {
	freqs := []domain.DeliveryFrequency{domain.FrequencyDaily}
	if now.Weekday() == b.weeklyDay {
		freqs = append(freqs, domain.FrequencyWeekly)
	}
	if now.Day() == b.monthlyDay {
		freqs = append(freqs, domain.FrequencyMonthly)
	}

	seen := map[int64]bool{}
	var res []dueUser
	for _, freq := range freqs {
		ids, err := b.users.ActiveUsersByFrequency(ctx, freq)
		if err != nil {
			return nil, fmt.Errorf("get %s users: %w", freq, err)
		}
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			res = append(res, dueUser{id: id, summaryType: freq.SummaryType()})
		}
	}
	return res, nil
}
