// Package search fans a query out across the entity repositories and, for
// ranked full-text queries, delegates to the external engine.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

var ErrUnknownType = errors.New("unknown search type")

// SearchFunc looks up one entity type by substring.
type SearchFunc func(ctx context.Context, term string, limit int) ([]interface{}, error)

// Wrap adapts a typed store's substring search to the aggregator's shape.
func Wrap[T any](store repository.Store[T]) SearchFunc {
	return func(ctx context.Context, term string, limit int) ([]interface{}, error) {
		items, err := store.Search(ctx, term, limit)
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, len(items))
		for i := range items {
			out[i] = items[i]
		}
		return out, nil
	}
}

// Results is the merged fan-out response, keyed by entity type.
type Results struct {
	Results      map[string][]interface{} `json:"results"`
	TotalResults int                      `json:"total_results"`
	SearchTerm   string                   `json:"search_term"`
}

type Aggregator struct {
	sources  map[string]SearchFunc
	perLimit int
}

// NewAggregator builds an aggregator over named sources. perLimit caps how
// many hits each source contributes.
func NewAggregator(sources map[string]SearchFunc, perLimit int) *Aggregator {
	if perLimit <= 0 {
		perLimit = 25
	}
	return &Aggregator{sources: sources, perLimit: perLimit}
}

// Types returns the known entity type names, sorted.
func (a *Aggregator) Types() []string {
	names := make([]string, 0, len(a.sources))
	for name := range a.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SearchAll runs the term against every requested source concurrently. A nil
// or empty types list means all sources. Any source failure fails the whole
// search; partial results are never silently returned.
func (a *Aggregator) SearchAll(ctx context.Context, term string, types []string) (*Results, error) {
	selected, err := a.selectSources(types)
	if err != nil {
		return nil, err
	}

	res := &Results{
		Results:    make(map[string][]interface{}, len(selected)),
		SearchTerm: term,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for name, fn := range selected {
		name, fn := name, fn
		g.Go(func() error {
			items, err := fn(gctx, term, a.perLimit)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Results[name] = items
			res.TotalResults += len(items)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// SearchType runs the term against exactly one source.
func (a *Aggregator) SearchType(ctx context.Context, term, typ string) (*Results, error) {
	return a.SearchAll(ctx, term, []string{typ})
}

// Advanced runs a fan-out and then applies per-type equality filters to the
// hits in memory. Filter keys are wire field names.
func (a *Aggregator) Advanced(ctx context.Context, term string, filters map[string]map[string]interface{}) (*Results, error) {
	types := make([]string, 0, len(filters))
	for typ := range filters {
		types = append(types, typ)
	}
	if len(types) == 0 {
		types = nil
	}

	res, err := a.SearchAll(ctx, term, types)
	if err != nil {
		return nil, err
	}

	total := 0
	for typ, items := range res.Results {
		want := filters[typ]
		if len(want) == 0 {
			total += len(items)
			continue
		}
		kept := items[:0:0]
		for _, item := range items {
			if listing.Matches(item, want) {
				kept = append(kept, item)
			}
		}
		res.Results[typ] = kept
		total += len(kept)
	}
	res.TotalResults = total
	return res, nil
}

// Suggestions collects names and titles matching the term, exact-prefix
// matches first, capped at limit.
func (a *Aggregator) Suggestions(ctx context.Context, term string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	res, err := a.SearchAll(ctx, term, nil)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var names []string
	for _, items := range res.Results {
		for _, item := range items {
			name := displayName(item)
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	lower := strings.ToLower(term)
	sort.Slice(names, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(names[i]), lower)
		pj := strings.HasPrefix(strings.ToLower(names[j]), lower)
		if pi != pj {
			return pi
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (a *Aggregator) selectSources(types []string) (map[string]SearchFunc, error) {
	if len(types) == 0 {
		return a.sources, nil
	}
	selected := make(map[string]SearchFunc, len(types))
	for _, typ := range types {
		fn, ok := a.sources[typ]
		if !ok {
			return nil, ErrUnknownType
		}
		selected[typ] = fn
	}
	return selected, nil
}

// displayName pulls the human-readable label out of an entity through its
// JSON form: "name" for most types, "title" for books.
func displayName(item interface{}) string {
	data, err := json.Marshal(item)
	if err != nil {
		return ""
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	if name, ok := m["name"].(string); ok {
		return name
	}
	if title, ok := m["title"].(string); ok {
		return title
	}
	return ""
}
