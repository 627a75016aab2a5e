package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

// Watcher keeps a long-running client in step with the server: it syncs on a
// cron schedule and flushes the outbox on a fixed interval, saving the
// snapshot after each run.
type Watcher struct {
	s          gocron.Scheduler
	engine     *Engine
	syncer     *Syncer
	dispatcher *Dispatcher
	logger     *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewWatcher(engine *Engine, syncer *Syncer, dispatcher *Dispatcher, logger *logging.Logger) (*Watcher, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Watcher{
		s:          s,
		engine:     engine,
		syncer:     syncer,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Start registers both jobs and starts the scheduler. Jobs stop when ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context, syncCron string, flushInterval time.Duration) error {
	w.ctx, w.cancel = context.WithCancel(ctx)

	_, err := w.s.NewJob(
		gocron.CronJob(syncCron, false),
		gocron.NewTask(w.runSync),
		gocron.WithName("league-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create sync job: %w", err)
	}

	_, err = w.s.NewJob(
		gocron.DurationJob(flushInterval),
		gocron.NewTask(w.runFlush),
		gocron.WithName("outbox-flush"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create flush job: %w", err)
	}

	w.s.Start()
	return nil
}

func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.s.Shutdown()
}

func (w *Watcher) runSync() {
	ctx := w.ctx
	if ctx.Err() != nil {
		return
	}
	report, err := w.syncer.Run(ctx)
	if err != nil {
		w.logger.WarnContext(ctx, "scheduled sync failed", "error", err)
		return
	}
	w.logger.InfoContext(ctx, "scheduled sync finished",
		"season_id", report.SeasonID,
		"week", report.Week,
		"completed", len(report.Completed),
		"waiting_on", report.WaitingOn,
	)
	w.save(ctx)
}

func (w *Watcher) runFlush() {
	ctx := w.ctx
	if ctx.Err() != nil {
		return
	}
	if _, err := w.dispatcher.Flush(ctx); err != nil {
		w.logger.WarnContext(ctx, "scheduled flush failed", "error", err)
	}
	w.save(ctx)
}

func (w *Watcher) save(ctx context.Context) {
	if err := w.engine.Save(ctx); err != nil {
		w.logger.ErrorContext(ctx, "save league snapshot", "error", err)
	}
}
