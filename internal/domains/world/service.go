package world

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/cache"
)

const cacheScope = "worlds"

// overviewLoadLimit bounds the unpaginated load behind overview stats.
const overviewLoadLimit = 10000

// Overview aggregates catalog-wide world statistics, computed in memory.
type Overview struct {
	TotalWorlds       int            `json:"total_worlds"`
	BySystem          map[string]int `json:"by_system"`
	ByTechnologyLevel map[string]int `json:"by_technology_level"`
	WithShard         int            `json:"with_shard"`
	WithShardPercent  float64        `json:"with_shard_percent"`
}

type Service struct {
	store  repository.Store[World]
	loader *cache.Loader
}

func NewService(store repository.Store[World], loader *cache.Loader) *Service {
	return &Service{store: store, loader: loader}
}

func (s *Service) List(ctx context.Context, p listing.Params) (*response.Paginated[World], error) {
	key := ""
	if s.loader != nil {
		key = listing.CacheKey(s.loader.Prefix, cacheScope, p)
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*response.Paginated[World], error) {
		return listing.Fetch(ctx, s.store, p)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*World, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, repository.ErrNotFound
	}
	return w, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*World, error) {
	items, err := s.store.GetMulti(ctx, repository.Query{
		Limit:   1,
		Filters: map[string]interface{}{"name": name},
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

func (s *Service) Create(ctx context.Context, req *CreateWorldRequest) (*World, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	w := &World{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		System:          req.System,
		ShardID:         req.ShardID,
		Geography:       req.Geography,
		CultureNotes:    req.CultureNotes,
		TechnologyLevel: req.TechnologyLevel,
	}

	created, err := s.store.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateWorldRequest) (*World, error) {
	updated, err := s.store.Update(ctx, id, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update world: %w", err)
	}
	if updated == nil {
		return nil, repository.ErrNotFound
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete world: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// GetOverview loads the whole collection and computes group-by counts.
// Acceptable at catalog scale; the result is cached.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	key := ""
	if s.loader != nil {
		key = cache.Key(s.loader.Prefix, cacheScope, "overview")
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*Overview, error) {
		worlds, err := s.store.GetMulti(ctx, repository.Query{Limit: overviewLoadLimit})
		if err != nil {
			return nil, err
		}
		return BuildOverview(worlds), nil
	})
}

func BuildOverview(worlds []World) *Overview {
	o := &Overview{
		TotalWorlds:       len(worlds),
		BySystem:          map[string]int{},
		ByTechnologyLevel: map[string]int{},
	}
	for _, w := range worlds {
		if w.System != nil {
			o.BySystem[*w.System]++
		}
		if w.TechnologyLevel != nil {
			o.ByTechnologyLevel[*w.TechnologyLevel]++
		}
		if w.ShardID != nil {
			o.WithShard++
		}
	}
	if o.TotalWorlds > 0 {
		o.WithShardPercent = float64(o.WithShard) / float64(o.TotalWorlds) * 100
	}
	return o
}

func (s *Service) invalidate(ctx context.Context) {
	if s.loader != nil {
		s.loader.Invalidate(ctx, cacheScope)
	}
}
