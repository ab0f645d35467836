package character

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeffbulltech/cosmere-api/internal/domains/magicsystem"
	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/cache"
)

const cacheScope = "characters"

const overviewLoadLimit = 10000

// Overview aggregates character statistics, computed in memory.
type Overview struct {
	TotalCharacters    int            `json:"total_characters"`
	ByStatus           map[string]int `json:"by_status"`
	BySpecies          map[string]int `json:"by_species"`
	ByWorld            map[string]int `json:"by_world"`
	WithMagicAbilities int            `json:"with_magic_abilities"`
}

// MagicSystemDetail is one magic-system link hydrated with the system itself.
type MagicSystemDetail struct {
	MagicUse
	System *magicsystem.MagicSystem `json:"magic_system,omitempty"`
}

type Service struct {
	store         repository.Store[Character]
	relationships repository.Store[Relationship]
	magicUses     repository.Store[MagicUse]
	magicSystems  repository.Store[magicsystem.MagicSystem]
	loader        *cache.Loader
}

func NewService(
	store repository.Store[Character],
	relationships repository.Store[Relationship],
	magicUses repository.Store[MagicUse],
	magicSystems repository.Store[magicsystem.MagicSystem],
	loader *cache.Loader,
) *Service {
	return &Service{
		store:         store,
		relationships: relationships,
		magicUses:     magicUses,
		magicSystems:  magicSystems,
		loader:        loader,
	}
}

func (s *Service) List(ctx context.Context, p listing.Params) (*response.Paginated[Character], error) {
	key := ""
	if s.loader != nil {
		key = listing.CacheKey(s.loader.Prefix, cacheScope, p)
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*response.Paginated[Character], error) {
		return listing.Fetch(ctx, s.store, p)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*Character, error) {
	ch, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, repository.ErrNotFound
	}
	return ch, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*Character, error) {
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

// ListByWorld returns characters originating from one world, paginated.
func (s *Service) ListByWorld(ctx context.Context, worldID string, p listing.Params) (*response.Paginated[Character], error) {
	if p.Filters == nil {
		p.Filters = map[string]interface{}{}
	}
	p.Filters["world_of_origin_id"] = worldID
	return s.List(ctx, p)
}

func (s *Service) Create(ctx context.Context, req *CreateCharacterRequest) (*Character, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	ch := &Character{
		ID:                    id,
		Name:                  strings.TrimSpace(req.Name),
		Aliases:               req.Aliases,
		Species:               req.Species,
		Status:                req.Status,
		WorldOfOriginID:       req.WorldOfOriginID,
		FirstAppearanceBookID: req.FirstAppearanceBookID,
		Biography:             req.Biography,
		MagicAbilities:        req.MagicAbilities,
		Affiliations:          req.Affiliations,
		CosmereSignificance:   req.CosmereSignificance,
	}

	created, err := s.store.Create(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("create character: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateCharacterRequest) (*Character, error) {
	updated, err := s.store.Update(ctx, id, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update character: %w", err)
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
		return fmt.Errorf("delete character: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Relationships returns every edge touching one character, outgoing and
// incoming, deduplicated.
func (s *Service) Relationships(ctx context.Context, characterID string) ([]Relationship, error) {
	if err := s.requireCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	outgoing, err := s.relationships.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"character_id": characterID},
	})
	if err != nil {
		return nil, err
	}
	incoming, err := s.relationships.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"related_character_id": characterID},
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(outgoing))
	merged := make([]Relationship, 0, len(outgoing)+len(incoming))
	for _, r := range outgoing {
		seen[r.ID] = true
		merged = append(merged, r)
	}
	for _, r := range incoming {
		if !seen[r.ID] {
			merged = append(merged, r)
		}
	}
	return merged, nil
}

func (s *Service) AddRelationship(ctx context.Context, characterID string, req *CreateRelationshipRequest) (*Relationship, error) {
	if err := s.requireCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	rel := &Relationship{
		ID:                 id,
		CharacterID:        characterID,
		RelatedCharacterID: req.RelatedCharacterID,
		RelationshipType:   strings.ToLower(strings.TrimSpace(req.RelationshipType)),
		Description:        req.Description,
		BookContextID:      req.BookContextID,
		IsReciprocal:       req.IsReciprocal,
	}

	created, err := s.relationships.Create(ctx, rel)
	if err != nil {
		return nil, fmt.Errorf("create relationship: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateRelationship(ctx context.Context, characterID, relationshipID string, req *UpdateRelationshipRequest) (*Relationship, error) {
	existing, err := s.relationships.Get(ctx, relationshipID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.CharacterID != characterID {
		return nil, repository.ErrNotFound
	}

	updated, err := s.relationships.Update(ctx, relationshipID, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update relationship: %w", err)
	}
	if updated == nil {
		return nil, repository.ErrNotFound
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) DeleteRelationship(ctx context.Context, characterID, relationshipID string) error {
	existing, err := s.relationships.Get(ctx, relationshipID)
	if err != nil {
		return err
	}
	if existing == nil || existing.CharacterID != characterID {
		return repository.ErrNotFound
	}

	deleted, err := s.relationships.Delete(ctx, relationshipID)
	if err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// MagicSystems returns the magic systems one character wields, hydrated.
func (s *Service) MagicSystems(ctx context.Context, characterID string) ([]MagicSystemDetail, error) {
	if err := s.requireCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	links, err := s.magicUses.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"character_id": characterID},
	})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []MagicSystemDetail{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.MagicSystemID)
	}
	systems, err := s.magicSystems.GetMulti(ctx, repository.Query{
		Limit:   len(ids),
		Filters: map[string]interface{}{"id": ids},
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*magicsystem.MagicSystem, len(systems))
	for i := range systems {
		byID[systems[i].ID] = &systems[i]
	}

	out := make([]MagicSystemDetail, 0, len(links))
	for _, l := range links {
		out = append(out, MagicSystemDetail{MagicUse: l, System: byID[l.MagicSystemID]})
	}
	return out, nil
}

func (s *Service) AddMagicSystem(ctx context.Context, characterID string, req *CreateMagicUseRequest) (*MagicUse, error) {
	if err := s.requireCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	m := &MagicUse{
		ID:               id,
		CharacterID:      characterID,
		MagicSystemID:    req.MagicSystemID,
		UserType:         req.UserType,
		ProficiencyLevel: req.ProficiencyLevel,
		IsActive:         req.IsActive,
		Notes:            req.Notes,
	}

	created, err := s.magicUses.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create magic use: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateMagicSystem(ctx context.Context, characterID, magicSystemID string, req *UpdateMagicUseRequest) (*MagicUse, error) {
	link, err := s.magicUseLink(ctx, characterID, magicSystemID)
	if err != nil {
		return nil, err
	}

	updated, err := s.magicUses.Update(ctx, link.ID, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update magic use: %w", err)
	}
	if updated == nil {
		return nil, repository.ErrNotFound
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) RemoveMagicSystem(ctx context.Context, characterID, magicSystemID string) error {
	link, err := s.magicUseLink(ctx, characterID, magicSystemID)
	if err != nil {
		return err
	}

	deleted, err := s.magicUses.Delete(ctx, link.ID)
	if err != nil {
		return fmt.Errorf("delete magic use: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// UsersOf lists the characters wielding one magic system.
func (s *Service) UsersOf(ctx context.Context, magicSystemID string) ([]Character, error) {
	links, err := s.magicUses.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"magic_system_id": magicSystemID},
	})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []Character{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.CharacterID)
	}
	return s.store.GetMulti(ctx, repository.Query{
		Limit:   len(ids),
		Filters: map[string]interface{}{"id": ids},
	})
}

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	key := ""
	if s.loader != nil {
		key = cache.Key(s.loader.Prefix, cacheScope, "overview")
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*Overview, error) {
		characters, err := s.store.GetMulti(ctx, repository.Query{Limit: overviewLoadLimit})
		if err != nil {
			return nil, err
		}
		return BuildOverview(characters), nil
	})
}

func BuildOverview(characters []Character) *Overview {
	o := &Overview{
		TotalCharacters: len(characters),
		ByStatus:        map[string]int{},
		BySpecies:       map[string]int{},
		ByWorld:         map[string]int{},
	}
	for _, ch := range characters {
		if ch.Status != nil {
			o.ByStatus[*ch.Status]++
		}
		if ch.Species != nil {
			o.BySpecies[*ch.Species]++
		}
		o.ByWorld[ch.WorldOfOriginID]++
		if ch.MagicAbilities != nil && *ch.MagicAbilities != "" {
			o.WithMagicAbilities++
		}
	}
	return o
}

func (s *Service) magicUseLink(ctx context.Context, characterID, magicSystemID string) (*MagicUse, error) {
	links, err := s.magicUses.GetMulti(ctx, repository.Query{
		Limit: 1,
		Filters: map[string]interface{}{
			"character_id":    characterID,
			"magic_system_id": magicSystemID,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, repository.ErrNotFound
	}
	return &links[0], nil
}

func (s *Service) requireCharacter(ctx context.Context, id string) error {
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
