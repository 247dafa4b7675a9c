package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/curator/pkg/config"
	"github.com/umputun/curator/pkg/domain"
	"github.com/umputun/curator/pkg/llm"
	"github.com/umputun/curator/pkg/repository"
	"github.com/umputun/curator/pkg/scheduler"
	"github.com/umputun/curator/pkg/summary"
	"github.com/umputun/curator/pkg/vector"
	"github.com/umputun/curator/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`

	Once  bool   `long:"once" description:"generate due digests once and exit"`
	User  int64  `long:"user" description:"generate digest for this user only, implies --once"`
	Type  string `long:"type" description:"digest type for --user, defaults to the user delivery frequency"`
	Force bool   `long:"force" description:"generate even if the user got a digest recently"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	SetupLog(opts.Debug)
	lgr.Printf("[INFO] starting curator version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// app holds wired components
type app struct {
	repos     *repository.Repositories
	pipeline  *summary.Pipeline
	scheduler *scheduler.Scheduler
	server    *server.Server
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LLM.APIKey != "" {
		SetupLog(opts.Debug, cfg.LLM.APIKey)
	}

	a, err := newApp(ctx, cfg, opts.Debug)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	switch {
	case opts.User > 0:
		return a.generateForUser(ctx, opts.User, domain.SummaryType(opts.Type), opts.Force)
	case opts.Once:
		if _, err := a.scheduler.IndexPending(ctx); err != nil {
			lgr.Printf("[WARN] indexing failed: %v", err)
		}
		return a.scheduler.RunBatch(ctx)
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer a.scheduler.Stop()

	if err := a.server.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newApp opens the database and wires all components
func newApp(ctx context.Context, cfg *config.Config, debug bool) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	llmClient := llm.NewClient(cfg.LLM, cfg.Embedding.Model)
	searcher, err := vector.NewSearcher(vector.Params{
		Embedder:  llmClient,
		Store:     repos.Embedding,
		Model:     cfg.Embedding.Model,
		CacheSize: cfg.Embedding.CacheSize,
		MaxChars:  cfg.Embedding.MaxChars,
	})
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to create vector searcher: %w", err)
	}

	pipeline := summary.NewPipeline(summary.PipelineParams{
		Preferences:  repos.Preference,
		Retriever:    summary.NewRetriever(repos.Content, searcher, cfg.Summary.PoolSize, cfg.Summary.DefaultMaxItems),
		Generator:    summary.NewGenerator(llmClient, summary.NewPromptBuilder(cfg.Summary.ExcerptChars), cfg.Summary.KeyPhrases),
		Store:        repos.Summary,
		RecentWindow: cfg.Summary.RecentWindow,
		LockPerUser:  cfg.Summary.LockPerUser,
	})

	weekday, _ := cfg.Schedule.Weekday() // validated on load
	batch := summary.NewBatch(summary.BatchParams{
		Users:          repos.User,
		Pipeline:       pipeline,
		MaxWorkers:     cfg.Schedule.MaxWorkers,
		RequestTimeout: cfg.Schedule.RequestTimeout,
		WeeklyDay:      weekday,
		MonthlyDay:     cfg.Schedule.MonthlyDay,
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Batch:    batch,
		Cleaner:  repos.Summary,
		Content:  repos.Content,
		Indexer:  searcher,
		Settings: repos.Setting,
		Config: scheduler.Config{
			BatchCron:      cfg.Schedule.Cron,
			CleanupCron:    cfg.Schedule.CleanupCron,
			RetentionDays:  cfg.Schedule.RetentionDays,
			IndexInterval:  cfg.Schedule.IndexInterval,
			IndexBatchSize: cfg.Embedding.BatchSize,
			EmbeddingModel: cfg.Embedding.Model,
		},
	})

	srv := server.New(server.Params{
		Config:      cfg,
		Users:       repos.User,
		Preferences: repos.Preference,
		Content:     repos.Content,
		Summaries:   repos.Summary,
		Generator:   pipeline,
		Version:     revision,
		Debug:       debug,
	})

	return &app{repos: repos, pipeline: pipeline, scheduler: sched, server: srv}, nil
}

// generateForUser runs a single generation, the type defaults to the one of user delivery frequency
func (a *app) generateForUser(ctx context.Context, userID int64, summaryType domain.SummaryType, force bool) error {
	if summaryType == "" {
		prefs, err := a.repos.Preference.GetPreferences(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get preferences: %w", err)
		}
		summaryType = domain.SummaryDailyDigest
		if prefs != nil {
			summaryType = prefs.Frequency.SummaryType()
		}
	}

	res := a.pipeline.Run(ctx, userID, summaryType, summary.WithForce(force))
	if res.Err != nil {
		return fmt.Errorf("digest for user %d: %w", userID, res.Err)
	}
	fmt.Printf("%s\n\n%s\n", res.Summary.Title, res.Summary.Text)
	return nil
}

// SetupLog configures lgr and the standard logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
