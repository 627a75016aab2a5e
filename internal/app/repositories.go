package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/slowpitch-league/internal/config"
	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/domain/userstate"
	cacherepo "github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/slowpitch-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/slowpitch-league/internal/platform/cache"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

type repositories struct {
	seasons season.Repository
	teams   team.Repository
	drafts  draft.Repository
	lineups lineup.Repository
	scores  score.Repository
	players player.Repository
	users   user.Repository
	states  userstate.Repository
	close   func() error
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var (
		repos repositories
		err   error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		repos, err = newMemoryRepositories(cfg)
	default:
		repos, err = newPostgresRepositories(ctx, cfg, logger)
	}
	if err != nil {
		return repositories{}, err
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.drafts = cacherepo.NewDraftRepository(repos.drafts, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}
	return repos, nil
}

func newMemoryRepositories(cfg config.Config) (repositories, error) {
	seed, err := memory.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return repositories{}, err
	}
	users, err := seed.UserAccounts(hashPin)
	if err != nil {
		return repositories{}, err
	}

	return repositories{
		seasons: memory.NewSeasonRepository(seed.Seasons()),
		teams:   memory.NewTeamRepository(seed.TeamIdentities()),
		drafts:  memory.NewDraftRepository(),
		lineups: memory.NewLineupRepository(),
		scores:  memory.NewScoreRepository(),
		players: memory.NewPlayerRepository(seed.PlayerDirectory()),
		users:   memory.NewUserRepository(users),
		states:  memory.NewUserStateRepository(),
		close:   func() error { return nil },
	}, nil
}

func newPostgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}

	if cfg.SeedFile != "" {
		seed, err := memory.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db, seed, hashPin); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("seed checked", "seed_file", cfg.SeedFile, "season_id", seed.Season.ID)
	}

	return repositories{
		seasons: postgres.NewSeasonRepository(db),
		teams:   postgres.NewTeamRepository(db),
		drafts:  postgres.NewDraftRepository(db),
		lineups: postgres.NewLineupRepository(db),
		scores:  postgres.NewScoreRepository(db),
		players: postgres.NewPlayerRepository(db),
		users:   postgres.NewUserRepository(db),
		states:  postgres.NewUserStateRepository(db),
		close:   db.Close,
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := postgresDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
