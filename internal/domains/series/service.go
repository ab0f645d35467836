package series

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

const cacheScope = "series"

type Service struct {
	store  repository.Store[Series]
	loader *cache.Loader
}

func NewService(store repository.Store[Series], loader *cache.Loader) *Service {
	return &Service{store: store, loader: loader}
}

func (s *Service) List(ctx context.Context, p listing.Params) (*response.Paginated[Series], error) {
	key := ""
	if s.loader != nil {
		key = listing.CacheKey(s.loader.Prefix, cacheScope, p)
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*response.Paginated[Series], error) {
		return listing.Fetch(ctx, s.store, p)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*Series, error) {
	sr, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, repository.ErrNotFound
	}
	return sr, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*Series, error) {
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

// ListByWorld returns every series set on one world, paginated.
func (s *Service) ListByWorld(ctx context.Context, worldID string, p listing.Params) (*response.Paginated[Series], error) {
	if p.Filters == nil {
		p.Filters = map[string]interface{}{}
	}
	p.Filters["world_id"] = worldID
	return s.List(ctx, p)
}

func (s *Service) Create(ctx context.Context, req *CreateSeriesRequest) (*Series, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	status := req.Status
	if status == "" {
		status = StatusOngoing
	}

	sr := &Series{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		WorldID:      req.WorldID,
		PlannedBooks: req.PlannedBooks,
		CurrentBooks: req.CurrentBooks,
		Status:       status,
		ReadingOrder: req.ReadingOrder,
	}

	created, err := s.store.Create(ctx, sr)
	if err != nil {
		return nil, fmt.Errorf("create series: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateSeriesRequest) (*Series, error) {
	updated, err := s.store.Update(ctx, id, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update series: %w", err)
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
		return fmt.Errorf("delete series: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.loader != nil {
		s.loader.Invalidate(ctx, cacheScope)
	}
}
