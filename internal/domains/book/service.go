package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeffbulltech/cosmere-api/internal/domains/character"
	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/cache"
)

const cacheScope = "books"

const overviewLoadLimit = 10000

// Overview aggregates book statistics, computed in memory.
type Overview struct {
	TotalBooks     int            `json:"total_books"`
	ByWorld        map[string]int `json:"by_world"`
	InSeries       int            `json:"in_series"`
	Standalone     int            `json:"standalone"`
	TotalWordCount int            `json:"total_word_count"`
	AvgWordCount   int            `json:"avg_word_count"`
}

// CharacterDetail is one appearance hydrated with the character record.
type CharacterDetail struct {
	Appearance
	Character *character.Character `json:"character,omitempty"`
}

type Service struct {
	store       repository.Store[Book]
	appearances repository.Store[Appearance]
	characters  repository.Store[character.Character]
	loader      *cache.Loader
}

func NewService(
	store repository.Store[Book],
	appearances repository.Store[Appearance],
	characters repository.Store[character.Character],
	loader *cache.Loader,
) *Service {
	return &Service{
		store:       store,
		appearances: appearances,
		characters:  characters,
		loader:      loader,
	}
}

func (s *Service) List(ctx context.Context, p listing.Params) (*response.Paginated[Book], error) {
	key := ""
	if s.loader != nil {
		key = listing.CacheKey(s.loader.Prefix, cacheScope, p)
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*response.Paginated[Book], error) {
		return listing.Fetch(ctx, s.store, p)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*Book, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *Service) GetByTitle(ctx context.Context, title string) (*Book, error) {
	items, err := s.store.GetMulti(ctx, repository.Query{
		Limit:   1,
		Filters: map[string]interface{}{"title": title},
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

// ListBySeries returns a series' books in chronological order.
func (s *Service) ListBySeries(ctx context.Context, seriesID string, p listing.Params) (*response.Paginated[Book], error) {
	if p.Filters == nil {
		p.Filters = map[string]interface{}{}
	}
	p.Filters["series_id"] = seriesID
	if p.OrderBy == "" {
		p.OrderBy = "chronological_order"
	}
	return s.List(ctx, p)
}

// ListByWorld returns the books set on one world, paginated.
func (s *Service) ListByWorld(ctx context.Context, worldID string, p listing.Params) (*response.Paginated[Book], error) {
	if p.Filters == nil {
		p.Filters = map[string]interface{}{}
	}
	p.Filters["world_id"] = worldID
	if p.OrderBy == "" {
		p.OrderBy = "publication_date"
	}
	return s.List(ctx, p)
}

// ListStandalone returns books that belong to no series.
func (s *Service) ListStandalone(ctx context.Context, p listing.Params) (*response.Paginated[Book], error) {
	if p.Filters == nil {
		p.Filters = map[string]interface{}{}
	}
	p.Filters["series_id"] = nil
	return s.List(ctx, p)
}

func (s *Service) Create(ctx context.Context, req *CreateBookRequest) (*Book, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	b := &Book{
		ID:                  id,
		Title:               strings.TrimSpace(req.Title),
		ISBN:                req.ISBN,
		PublicationDate:     req.publicationDate(),
		WordCount:           req.WordCount,
		ChronologicalOrder:  req.ChronologicalOrder,
		SeriesID:            req.SeriesID,
		WorldID:             req.WorldID,
		Summary:             req.Summary,
		CosmereSignificance: req.CosmereSignificance,
	}

	created, err := s.store.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateBookRequest) (*Book, error) {
	updated, err := s.store.Update(ctx, id, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
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
		return fmt.Errorf("delete book: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Characters returns the cast of one book, hydrated. povOnly restricts the
// result to point-of-view characters.
func (s *Service) Characters(ctx context.Context, bookID string, povOnly bool) ([]CharacterDetail, error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	filters := map[string]interface{}{"book_id": bookID}
	if povOnly {
		filters["is_pov_character"] = true
	}
	links, err := s.appearances.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: filters,
	})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []CharacterDetail{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.CharacterID)
	}
	cast, err := s.characters.GetMulti(ctx, repository.Query{
		Limit:   len(ids),
		Filters: map[string]interface{}{"id": ids},
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*character.Character, len(cast))
	for i := range cast {
		byID[cast[i].ID] = &cast[i]
	}

	out := make([]CharacterDetail, 0, len(links))
	for _, l := range links {
		out = append(out, CharacterDetail{Appearance: l, Character: byID[l.CharacterID]})
	}
	return out, nil
}

func (s *Service) AddCharacter(ctx context.Context, bookID string, req *CreateAppearanceRequest) (*Appearance, error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	a := &Appearance{
		ID:             id,
		BookID:         bookID,
		CharacterID:    req.CharacterID,
		Role:           req.Role,
		IsPOVCharacter: req.IsPOVCharacter,
		Notes:          req.Notes,
	}

	created, err := s.appearances.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create appearance: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) UpdateCharacter(ctx context.Context, bookID, characterID string, req *UpdateAppearanceRequest) (*Appearance, error) {
	link, err := s.appearanceLink(ctx, bookID, characterID)
	if err != nil {
		return nil, err
	}

	updated, err := s.appearances.Update(ctx, link.ID, req.fields())
	if err != nil {
		return nil, fmt.Errorf("update appearance: %w", err)
	}
	if updated == nil {
		return nil, repository.ErrNotFound
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) RemoveCharacter(ctx context.Context, bookID, characterID string) error {
	link, err := s.appearanceLink(ctx, bookID, characterID)
	if err != nil {
		return err
	}

	deleted, err := s.appearances.Delete(ctx, link.ID)
	if err != nil {
		return fmt.Errorf("delete appearance: %w", err)
	}
	if !deleted {
		return repository.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// BooksOf lists the books one character appears in.
func (s *Service) BooksOf(ctx context.Context, characterID string) ([]Book, error) {
	links, err := s.appearances.GetMulti(ctx, repository.Query{
		Limit:   overviewLoadLimit,
		Filters: map[string]interface{}{"character_id": characterID},
	})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []Book{}, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.BookID)
	}
	return s.store.GetMulti(ctx, repository.Query{
		Limit:   len(ids),
		Filters: map[string]interface{}{"id": ids},
		OrderBy: "chronological_order",
	})
}

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	key := ""
	if s.loader != nil {
		key = cache.Key(s.loader.Prefix, cacheScope, "overview")
	}
	return cache.GetOrSet(ctx, s.loader, key, func(ctx context.Context) (*Overview, error) {
		books, err := s.store.GetMulti(ctx, repository.Query{Limit: overviewLoadLimit})
		if err != nil {
			return nil, err
		}
		return BuildOverview(books), nil
	})
}

func BuildOverview(books []Book) *Overview {
	o := &Overview{
		TotalBooks: len(books),
		ByWorld:    map[string]int{},
	}
	counted := 0
	for _, b := range books {
		o.ByWorld[b.WorldID]++
		if b.IsStandalone() {
			o.Standalone++
		} else {
			o.InSeries++
		}
		if b.WordCount != nil {
			o.TotalWordCount += *b.WordCount
			counted++
		}
	}
	if counted > 0 {
		o.AvgWordCount = o.TotalWordCount / counted
	}
	return o
}

func (s *Service) appearanceLink(ctx context.Context, bookID, characterID string) (*Appearance, error) {
	links, err := s.appearances.GetMulti(ctx, repository.Query{
		Limit: 1,
		Filters: map[string]interface{}{
			"book_id":      bookID,
			"character_id": characterID,
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

func (s *Service) requireBook(ctx context.Context, id string) error {
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
