package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/riskibarqy/slowpitch-league/external/leagueapi"
	"github.com/riskibarqy/slowpitch-league/internal/config"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/engine"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/localstore"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
	"github.com/riskibarqy/slowpitch-league/internal/platform/resilience"
)

var errNotLoggedIn = errors.New("not logged in: run `league login <name> <pin>` first")

type cli struct {
	cfg    config.ClientConfig
	logger *logging.Logger
	out    io.Writer
	now    func() time.Time

	client   *leagueapi.Client
	sessions *localstore.SessionFile

	engine     *engine.Engine
	syncer     *engine.Syncer
	dispatcher *engine.Dispatcher
}

func newCLI(cfg config.ClientConfig, logger *logging.Logger, out io.Writer) *cli {
	client := leagueapi.NewClient(leagueapi.ClientConfig{
		BaseURL:    cfg.APIURL,
		Token:      cfg.Token,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
	})

	return &cli{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		now:      time.Now,
		client:   client,
		sessions: localstore.NewSessionFile(cfg.TokenFile),
	}
}

// open resolves the caller and loads the local league snapshot.
func (c *cli) open(ctx context.Context, requireLogin bool) error {
	principal, err := c.principal(ctx)
	if err != nil {
		if !errors.Is(err, errNotLoggedIn) || requireLogin {
			return err
		}
		principal = user.Principal{Role: user.RoleVisitor}
	}

	var store engine.Store
	switch c.cfg.StateBackend {
	case config.StateBackendRemote:
		if principal.UserID == "" {
			return errNotLoggedIn
		}
		store = localstore.NewRemoteStore(c.client)
	default:
		store = localstore.NewFileStore(c.cfg.StateFile)
	}

	c.engine = engine.New(engine.Options{
		Principal: principal,
		Store:     store,
		Logger:    c.logger,
		Now:       c.now,
	})
	if err := c.engine.Load(ctx); err != nil {
		return fmt.Errorf("load league state: %w", err)
	}

	c.syncer = engine.NewSyncer(c.engine, c.client, c.logger)
	c.dispatcher = engine.NewDispatcher(c.engine, c.client, engine.DispatchConfig{
		Workers:             c.cfg.OutboxWorkers,
		MaxAttempts:         c.cfg.OutboxMaxAttempts,
		InitialInterval:     c.cfg.RetryInitialInterval,
		MaxInterval:         c.cfg.RetryMaxInterval,
		RandomizationFactor: engine.DefaultDispatchConfig().RandomizationFactor,
	}, c.logger)
	return nil
}

// principal prefers the saved session. A token from the environment is
// resolved against the server instead.
func (c *cli) principal(ctx context.Context) (user.Principal, error) {
	session, err := c.sessions.Load()
	if err == nil {
		if session.Expired(c.now()) {
			c.logger.Warn("session expired, run league login again", "expires_at", session.ExpiresAt)
		}
		if c.cfg.Token == "" {
			c.client.SetToken(session.Token)
		}
		return session.Principal, nil
	}
	if !errors.Is(err, localstore.ErrNoSession) {
		return user.Principal{}, err
	}

	if c.cfg.Token == "" {
		return user.Principal{}, errNotLoggedIn
	}
	p, err := c.client.Me(ctx)
	if err != nil {
		return user.Principal{}, fmt.Errorf("resolve LEAGUE_TOKEN: %w", err)
	}
	return p, nil
}

// commit saves the snapshot, tries to deliver queued writes, and saves again.
// Delivery failures leave commands queued for the next run.
func (c *cli) commit(ctx context.Context) error {
	if err := c.engine.Save(ctx); err != nil {
		return fmt.Errorf("save league state: %w", err)
	}
	if len(c.engine.Pending()) == 0 {
		return nil
	}

	report, err := c.dispatcher.Flush(ctx)
	if err != nil {
		c.logger.Warn("deliver queued writes", "error", err)
	}
	c.printFlush(report)
	if err := c.engine.Save(ctx); err != nil {
		return fmt.Errorf("save league state: %w", err)
	}
	return nil
}
