// Package listing implements the shared list/filter/paginate behavior every
// entity endpoint exposes, parameterized over the entity type.
package listing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/shared/response"
	"github.com/jeffbulltech/cosmere-api/pkg/cache"
)

// searchFetchLimit caps how many rows a substring search pulls before
// in-memory filtering. Collections here are catalog-scale.
const searchFetchLimit = 1000

// Params is one list query: offset pagination, equality filters and an
// optional case-insensitive substring search.
type Params struct {
	Skip      int
	Limit     int
	Search    string
	Filters   map[string]interface{}
	OrderBy   string
	OrderDesc bool
}

// Fetch loads a page. Without a search term it is a filtered store query
// plus a count; with one, the substring matches are filtered and windowed
// in memory so equality filters still compose with search.
func Fetch[T any](ctx context.Context, store repository.Store[T], p Params) (*response.Paginated[T], error) {
	if p.Search == "" {
		items, err := store.GetMulti(ctx, repository.Query{
			Skip:      p.Skip,
			Limit:     p.Limit,
			Filters:   p.Filters,
			OrderBy:   p.OrderBy,
			OrderDesc: p.OrderDesc,
		})
		if err != nil {
			return nil, err
		}
		total, err := store.Count(ctx, p.Filters)
		if err != nil {
			return nil, err
		}
		env := response.NewPaginated(items, total, p.Skip, p.Limit)
		return &env, nil
	}

	matches, err := store.Search(ctx, p.Search, searchFetchLimit)
	if err != nil {
		return nil, err
	}

	filtered := matches[:0:0]
	for _, item := range matches {
		if Matches(item, p.Filters) {
			filtered = append(filtered, item)
		}
	}

	env := response.NewPaginated(Window(filtered, p.Skip, p.Limit), len(filtered), p.Skip, p.Limit)
	return &env, nil
}

// Window slices out one page, clamping to the collection bounds.
func Window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) || skip < 0 {
		return []T{}
	}
	end := skip + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// Matches reports whether every filter field equals the item's value for
// that field. Fields are compared through the item's JSON form, so filter
// names are the wire names. A nil filter value matches items whose field
// is absent or null, mirroring the store's IS NULL handling. Unknown
// fields never match.
func Matches(item interface{}, filters map[string]interface{}) bool {
	if len(filters) == 0 {
		return true
	}

	data, err := json.Marshal(item)
	if err != nil {
		return false
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}

	for k, want := range filters {
		got, ok := m[k]
		if want == nil {
			if ok && got != nil {
				return false
			}
			continue
		}
		if !ok || got == nil {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// CacheKey derives a deterministic cache key for one list query.
func CacheKey(prefix, name string, p Params) string {
	fields := map[string]interface{}{
		"skip":   p.Skip,
		"limit":  p.Limit,
		"search": p.Search,
		"order":  fmt.Sprintf("%s:%t", p.OrderBy, p.OrderDesc),
	}
	for k, v := range p.Filters {
		fields["f."+k] = v
	}
	return cache.KeyFields(prefix, name, fields)
}
