package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

type DispatchConfig struct {
	Workers             int
	MaxAttempts         int
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	RandomizationFactor float64
}

func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Workers:             4,
		MaxAttempts:         5,
		InitialInterval:     2 * time.Second,
		MaxInterval:         5 * time.Minute,
		RandomizationFactor: 0.2,
	}
}

type FlushReport struct {
	Delivered int
	Retrying  int
	Failed    int
}

// Dispatcher delivers queued commands to the server. Lanes run side by side on
// a worker pool; inside a lane commands run in order and the first failure
// holds back the rest of the lane.
type Dispatcher struct {
	mu     sync.Mutex
	engine *Engine
	remote Remote
	logger *logging.Logger
	cfg    DispatchConfig
}

func NewDispatcher(engine *Engine, remote Remote, cfg DispatchConfig, logger *logging.Logger) *Dispatcher {
	defaults := DefaultDispatchConfig()
	if cfg.Workers < 1 {
		cfg.Workers = defaults.Workers
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaults.InitialInterval
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		cfg.MaxInterval = cfg.InitialInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		engine: engine,
		remote: remote,
		logger: logger,
		cfg:    cfg,
	}
}

// Flush runs every due lane once.
func (d *Dispatcher) Flush(ctx context.Context) (FlushReport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	lanes := d.engine.dueLanes(d.engine.now())
	if len(lanes) == 0 {
		return FlushReport{}, nil
	}

	workerCount := d.cfg.Workers
	if workerCount > len(lanes) {
		workerCount = len(lanes)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return FlushReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	return d.runLanes(ctx, lanes, pool.Submit)
}

// runLanes hands each lane to submit and waits for every accepted lane, even
// when a later submission fails.
func (d *Dispatcher) runLanes(ctx context.Context, lanes [][]outbox.Command, submit func(func()) error) (FlushReport, error) {
	var delivered atomic.Int32
	var retrying atomic.Int32
	var failed atomic.Int32

	var workers sync.WaitGroup
	var submitErr error
	for _, lane := range lanes {
		lane := lane
		workers.Add(1)
		if err := submit(func() {
			defer workers.Done()
			for _, cmd := range lane {
				if ctx.Err() != nil {
					return
				}
				if err := d.deliver(ctx, cmd); err != nil {
					if d.fail(ctx, cmd, err) {
						failed.Add(1)
					} else {
						retrying.Add(1)
					}
					return
				}
				d.engine.completeCommand(cmd.ID)
				delivered.Add(1)
			}
		}); err != nil {
			workers.Done()
			submitErr = fmt.Errorf("submit lane to worker pool: %w", err)
			break
		}
	}
	workers.Wait()

	report := FlushReport{
		Delivered: int(delivered.Load()),
		Retrying:  int(retrying.Load()),
		Failed:    int(failed.Load()),
	}
	if report.Delivered > 0 || report.Retrying > 0 || report.Failed > 0 {
		d.logger.InfoContext(ctx, "outbox flushed",
			"delivered", report.Delivered,
			"retrying", report.Retrying,
			"failed", report.Failed,
		)
	}
	if submitErr != nil {
		return report, submitErr
	}
	return report, ctx.Err()
}

func (d *Dispatcher) deliver(ctx context.Context, cmd outbox.Command) error {
	switch cmd.Kind {
	case outbox.KindSaveLineup:
		return d.remote.SaveLineup(ctx, lineup.NightLineup{
			SeasonID:  cmd.SeasonID,
			Week:      cmd.Week,
			TeamID:    cmd.TeamID,
			Night:     cmd.Night,
			PlayerIDs: cmd.Players,
		})
	case outbox.KindSaveDraft:
		return d.remote.SaveDraft(ctx, cmd.SeasonID, cmd.Picks)
	case outbox.KindSaveScores:
		return d.remote.SaveScores(ctx, cmd.SeasonID, cmd.Week, cmd.Scores)
	case outbox.KindAdvanceWeek:
		week, err := d.remote.AdvanceWeek(ctx, cmd.SeasonID)
		if err != nil {
			return err
		}
		d.logger.InfoContext(ctx, "server week advanced", "season_id", cmd.SeasonID, "week", week)
		return nil
	case outbox.KindSyncPlayers:
		inserted, err := d.remote.SyncPlayers(ctx, cmd.Names)
		if err != nil {
			return err
		}
		d.logger.DebugContext(ctx, "players synced", "names", len(cmd.Names), "inserted", inserted)
		return nil
	default:
		return fmt.Errorf("%w: unknown command kind %q", ErrRemoteRejected, cmd.Kind)
	}
}

// fail records the attempt and reports whether the command is now terminal.
func (d *Dispatcher) fail(ctx context.Context, cmd outbox.Command, err error) bool {
	attempts := cmd.Attempts + 1
	terminal := attempts >= d.cfg.MaxAttempts || errors.Is(err, ErrRemoteRejected)
	next := d.engine.now().Add(d.retryDelay(attempts))

	updated, ok := d.engine.failCommand(cmd.ID, err, next, terminal)
	if !ok {
		// Replaced by a newer command with the same key while in flight.
		return false
	}
	if terminal {
		d.logger.ErrorContext(ctx, "remote write failed permanently",
			"command", updated.String(),
			"attempts", updated.Attempts,
			"error", err,
		)
		return true
	}
	d.logger.WarnContext(ctx, "remote write failed, will retry",
		"command", updated.String(),
		"attempts", updated.Attempts,
		"next_attempt_at", next,
		"error", err,
	)
	return false
}

// retryDelay is the wait before attempt number attempts+1.
func (d *Dispatcher) retryDelay(attempts int) time.Duration {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     d.cfg.InitialInterval,
		RandomizationFactor: d.cfg.RandomizationFactor,
		Multiplier:          2,
		MaxInterval:         d.cfg.MaxInterval,
	}
	b.Reset()

	delay := d.cfg.InitialInterval
	for i := 0; i < attempts; i++ {
		delay = b.NextBackOff()
	}
	return delay
}
