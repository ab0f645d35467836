package shard

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeffbulltech/cosmere-api/internal/domains/world"
	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/cache"
)

const cacheScope = "shards"

const overviewLoadLimit = 10000

// Overview aggregates shard statistics, computed in memory.
type Overview struct {
	TotalShards       int            `json:"total_shards"`
	ByStatus          map[string]int `json:"by_status"`
	ByIntent          map[string]int `json:"by_intent"`
	WithWorldLocation int            `json:"with_world_location"`
}

type Service struct {
	store   repository.Store[Shard]
	vessels repository.Store[Vessel]
	worlds  repository.Store[world.World]
	loader  *cache.Loader
}

func NewService(store repository.Store[Shard], vessels repository.Store[Vessel], worlds repository.Store[world.World], loader *cache.Loader) *Service {
	return &Service{store: store, vessels: vessels, worlds: worlds, loader: loader}
}

func (s *Service) List(ctx context.Context, p listing.Params) (*response.Paginated[Shard], error) {
	key := ""
	if s.loader != nil {
		key = listing.CacheKey(s.loader.Prefix, cacheScope, p)
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*response.Paginated[Shard], error) {
		return listing.Fetch(ctx, s.store, p)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*Shard, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, repository.ErrNotFound
	}
	return sh, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*Shard, error) {
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

func (s *Service) Create(ctx context.Context, req *CreateShardRequest) (*Shard, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	status := req.Status
	if status == "" {
		status = StatusUnknown
	}

	sh := &Shard{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		Intent:          strings.TrimSpace(req.Intent),
		Status:          status,
		WorldLocationID: req.WorldLocationID,
		Description:     req.Description,
		SplinterInfo:    req.SplinterInfo,
	}

	created, err := s.store.Create(ctx, sh)
	if err != nil {
		return nil, fmt.Errorf("create shard: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateShardRequest) (*Shard, error) {
	updated, err := s.store.Update(ctx, id, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update shard: %w", err)
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
		return fmt.Errorf("delete shard: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Vessels returns the holder history for one shard.
func (s *Service) Vessels(ctx context.Context, shardID string) ([]Vessel, error) {
	if err := s.requireShard(ctx, shardID); err != nil {
		return nil, err
	}
	return s.vessels.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"shard_id": shardID},
	})
}

func (s *Service) AddVessel(ctx context.Context, shardID string, req *CreateVesselRequest) (*Vessel, error) {
	if err := s.requireShard(ctx, shardID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	v := &Vessel{
		ID:         id,
		ShardID:    shardID,
		VesselName: strings.TrimSpace(req.VesselName),
		Status:     req.Status,
		HeldFrom:   req.HeldFrom,
		HeldUntil:  req.HeldUntil,
		IsCurrent:  req.IsCurrent,
		Notes:      req.Notes,
	}

	created, err := s.vessels.Create(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("create vessel: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateVessel(ctx context.Context, shardID, vesselID string, req *UpdateVesselRequest) (*Vessel, error) {
	existing, err := s.vessels.Get(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.ShardID != shardID {
		return nil, repository.ErrNotFound
	}

	updated, err := s.vessels.Update(ctx, vesselID, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update vessel: %w", err)
	}
	if updated == nil {
		return nil, repository.ErrNotFound
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) DeleteVessel(ctx context.Context, shardID, vesselID string) error {
	existing, err := s.vessels.Get(ctx, vesselID)
	if err != nil {
		return err
	}
	if existing == nil || existing.ShardID != shardID {
		return repository.ErrNotFound
	}

	deleted, err := s.vessels.Delete(ctx, vesselID)
	if err != nil {
		return fmt.Errorf("delete vessel: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// ByVessel finds the shards a named vessel has held.
func (s *Service) ByVessel(ctx context.Context, vesselName string) ([]Shard, error) {
	held, err := s.vessels.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"vessel_name": vesselName},
	})
	if err != nil {
		return nil, err
	}
	if len(held) == 0 {
		return []Shard{}, nil
	}

	ids := make([]string, 0, len(held))
	seen := map[string]bool{}
	for _, v := range held {
		if !seen[v.ShardID] {
			seen[v.ShardID] = true
			ids = append(ids, v.ShardID)
		}
	}

	return s.store.GetMulti(ctx, repository.Query{
		Limit:   len(ids),
		Filters: map[string]interface{}{"id": ids},
	})
}

// WorldsOf lists the worlds located with one shard.
func (s *Service) WorldsOf(ctx context.Context, shardID string) ([]world.World, error) {
	if err := s.requireShard(ctx, shardID); err != nil {
		return nil, err
	}
	return s.worlds.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"shard_id": shardID},
	})
}

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	key := ""
	if s.loader != nil {
		key = cache.Key(s.loader.Prefix, cacheScope, "overview")
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*Overview, error) {
		shards, err := s.store.GetMulti(ctx, repository.Query{Limit: overviewLoadLimit})
		if err != nil {
			return nil, err
		}
		return BuildOverview(shards), nil
	})
}

func BuildOverview(shards []Shard) *Overview {
	o := &Overview{
		TotalShards: len(shards),
		ByStatus:    map[string]int{},
		ByIntent:    map[string]int{},
	}
	for _, sh := range shards {
		o.ByStatus[sh.Status]++
		o.ByIntent[sh.Intent]++
		if sh.WorldLocationID != nil {
			o.WithWorldLocation++
		}
	}
	return o
}

func (s *Service) requireShard(ctx context.Context, id string) error {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.loader != nil {
		s.loader.Invalidate(ctx, cacheScope)
	}
}
