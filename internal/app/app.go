package app

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/slowpitch-league/internal/config"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/account/token"
	"github.com/riskibarqy/slowpitch-league/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/slowpitch-league/internal/platform/id"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
	"github.com/riskibarqy/slowpitch-league/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned closer
// releases the storage connections.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := token.NewService(token.Config{
		Secret:          cfg.AuthTokenSecret,
		Issuer:          cfg.AuthTokenIssuer,
		TTL:             cfg.AuthTokenTTL,
		CacheTTL:        cfg.AuthCacheTTL,
		CacheMaxEntries: cfg.AuthCacheMaxEntries,
	})
	if err != nil {
		_ = repos.close()
		return nil, nil, fmt.Errorf("build token service: %w", err)
	}

	ids := idgen.NewUUIDGenerator()
	handler := httpapi.NewHandler(httpapi.Services{
		Auth:   usecase.NewAuthService(repos.users, tokens),
		Season: usecase.NewSeasonService(repos.seasons, repos.teams, ids),
		Draft:  usecase.NewDraftService(repos.seasons, repos.teams, repos.drafts),
		Lineup: usecase.NewLineupService(repos.seasons, repos.teams, repos.lineups),
		Score:  usecase.NewScoreService(repos.seasons, repos.teams, repos.scores),
		Player: usecase.NewPlayerService(repos.players, ids),
		State:  usecase.NewStateService(repos.states),
	}, logger)

	opts := httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		opts.Metrics = httpapi.NewMetrics()
	}
	router := httpapi.NewRouter(handler, tokens, logger, opts)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("http server wired",
		"storage", cfg.Storage,
		"cache_enabled", cfg.CacheEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
		"swagger_enabled", cfg.SwaggerEnabled,
	)

	return server, repos.close, nil
}

func hashPin(pin string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
