package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"

	"github.com/jeffbulltech/cosmere-api/internal/config"
)

// Engine delegates ranked full-text queries to Elasticsearch.
type Engine struct {
	es          *elasticsearch.Client
	indexPrefix string
	maxResults  int
}

// Hit is one ranked document from the engine.
type Hit struct {
	Index  string          `json:"index"`
	ID     string          `json:"id"`
	Score  float64         `json:"score"`
	Source json.RawMessage `json:"source"`
}

// Result is the envelope returned to handlers.
type Result struct {
	Items   []Hit  `json:"items"`
	Total   int    `json:"total"`
	Query   string `json:"query"`
	TookMS  int    `json:"took_ms"`
	HasNext bool   `json:"has_next"`
	HasPrev bool   `json:"has_prev"`
}

// esResponse mirrors the subset of the engine's hit envelope we consume.
type esResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Index  string          `json:"_index"`
			ID     string          `json:"_id"`
			Score  float64         `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// globalFields carries the per-field boosts used for cross-index queries.
var globalFields = []string{
	"name^3", "aliases^2", "title^2", "biography", "summary", "system", "intent",
}

func NewEngine(cfg *config.SearchConfig) (*Engine, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Engine{es: es, indexPrefix: cfg.IndexPrefix, maxResults: cfg.MaxResults}, nil
}

func (e *Engine) index(name string) string {
	return e.indexPrefix + "_" + name
}

// Ping verifies the engine is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.es.Ping(e.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}

// GlobalSearch runs a weighted multi_match across every entity index.
func (e *Engine) GlobalSearch(ctx context.Context, query string, skip, size int) (*Result, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    globalFields,
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		},
	}
	indices := []string{
		e.index("worlds"), e.index("series"), e.index("books"),
		e.index("characters"), e.index("magic_systems"), e.index("shards"),
	}
	return e.search(ctx, indices, query, body, skip, size)
}

// SearchIndex runs a multi_match restricted to one entity index, with
// optional term filters applied by the engine.
func (e *Engine) SearchIndex(ctx context.Context, entity, query string, filters map[string]interface{}, skip, size int) (*Result, error) {
	must := []interface{}{
		map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^2", "aliases", "title^2", "biography", "summary"},
			},
		},
	}
	boolQuery := map[string]interface{}{"must": must}

	if len(filters) > 0 {
		filter := make([]interface{}, 0, len(filters))
		for k, v := range filters {
			filter = append(filter, map[string]interface{}{
				"term": map[string]interface{}{k: v},
			})
		}
		boolQuery["filter"] = filter
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
	return e.search(ctx, []string{e.index(entity)}, query, body, skip, size)
}

func (e *Engine) search(ctx context.Context, indices []string, query string, body map[string]interface{}, skip, size int) (*Result, error) {
	if size <= 0 || size > e.maxResults {
		size = e.maxResults
	}
	if skip < 0 {
		skip = 0
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	// Overfetch one document so has_next is authoritative rather than the
	// "count == size" guess.
	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(indices...),
		e.es.Search.WithBody(&buf),
		e.es.Search.WithFrom(skip),
		e.es.Search.WithSize(size+1),
		e.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", res.Status())
	}

	var parsed esResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hasNext := len(parsed.Hits.Hits) > size
	hits := parsed.Hits.Hits
	if hasNext {
		hits = hits[:size]
	}

	items := make([]Hit, 0, len(hits))
	for _, h := range hits {
		items = append(items, Hit{Index: h.Index, ID: h.ID, Score: h.Score, Source: h.Source})
	}

	return &Result{
		Items:   items,
		Total:   parsed.Hits.Total.Value,
		Query:   query,
		TookMS:  parsed.Took,
		HasNext: hasNext,
		HasPrev: skip > 0,
	}, nil
}
