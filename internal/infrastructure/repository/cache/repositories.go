package cache

import (
	"context"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/player"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	basecache "github.com/riskibarqy/slowpitch-league/internal/platform/cache"
)

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "season:active", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	key := "season:id:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return season.Season{}, false, err
	}

	cached, _ := v.(cachedSeason)
	return cached.value, cached.exists, nil
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	if err := r.next.Create(ctx, s); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return nil
}

func (r *SeasonRepository) SetWeek(ctx context.Context, seasonID string, week int) (season.Season, error) {
	item, err := r.next.SetWeek(ctx, seasonID, week)
	if err != nil {
		return season.Season{}, err
	}
	r.cache.DeletePrefix(ctx, "season:")
	return item, nil
}

type cachedSeason struct {
	value  season.Season
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.Identity, error) {
	key := "team:list:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]team.Identity(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Identity)
	return append([]team.Identity(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, seasonID, teamID string) (team.Identity, bool, error) {
	key := "team:id:" + seasonID + ":" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, seasonID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Identity{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) CreateMany(ctx context.Context, teams []team.Identity) error {
	if err := r.next.CreateMany(ctx, teams); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}

type cachedTeam struct {
	value  team.Identity
	exists bool
}

type DraftRepository struct {
	next  draft.Repository
	cache *basecache.Store
}

func NewDraftRepository(next draft.Repository, cache *basecache.Store) *DraftRepository {
	return &DraftRepository{next: next, cache: cache}
}

func (r *DraftRepository) ListBySeason(ctx context.Context, seasonID string) ([]draft.Pick, error) {
	key := "draft:season:" + seasonID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]draft.Pick(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]draft.Pick)
	return append([]draft.Pick(nil), items...), nil
}

func (r *DraftRepository) Replace(ctx context.Context, seasonID string, picks []draft.Pick) error {
	if err := r.next.Replace(ctx, seasonID, picks); err != nil {
		return err
	}
	r.cache.Delete(ctx, "draft:season:"+seasonID)
	return nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) InsertMissing(ctx context.Context, players []player.Player) (int, error) {
	inserted, err := r.next.InsertMissing(ctx, players)
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		r.cache.Delete(ctx, "player:list")
	}
	return inserted, nil
}
