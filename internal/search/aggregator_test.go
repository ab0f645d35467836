package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

type namedRow struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
}

func fixedSource(items ...namedRow) SearchFunc {
	return Wrap(&repotest.Store[namedRow]{
		SearchFn: func(_ context.Context, _ string, _ int) ([]namedRow, error) {
			return items, nil
		},
	})
}

func failingSource(err error) SearchFunc {
	return Wrap(&repotest.Store[namedRow]{
		SearchFn: func(_ context.Context, _ string, _ int) ([]namedRow, error) {
			return nil, err
		},
	})
}

func TestSearchAllFansOut(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"characters": fixedSource(namedRow{ID: "kal", Name: "Kaladin"}),
		"books":      fixedSource(namedRow{ID: "wok", Title: "The Way of Kings"}, namedRow{ID: "wor", Title: "Words of Radiance"}),
	}, 25)

	res, err := agg.SearchAll(context.Background(), "ka", nil)
	require.NoError(t, err)

	assert.Equal(t, "ka", res.SearchTerm)
	assert.Equal(t, 3, res.TotalResults)
	assert.Len(t, res.Results["characters"], 1)
	assert.Len(t, res.Results["books"], 2)
}

func TestSearchAllSelectsTypes(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"characters": fixedSource(namedRow{ID: "kal", Name: "Kaladin"}),
		"books":      fixedSource(namedRow{ID: "wok", Title: "The Way of Kings"}),
	}, 25)

	res, err := agg.SearchAll(context.Background(), "ka", []string{"books"})
	require.NoError(t, err)
	assert.Len(t, res.Results, 1)
	assert.Contains(t, res.Results, "books")
}

func TestSearchAllUnknownType(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"books": fixedSource(),
	}, 25)

	_, err := agg.SearchAll(context.Background(), "ka", []string{"spaceships"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestSearchAllFailsClosed(t *testing.T) {
	boom := errors.New("store down")
	agg := NewAggregator(map[string]SearchFunc{
		"characters": fixedSource(namedRow{ID: "kal", Name: "Kaladin"}),
		"books":      failingSource(boom),
	}, 25)

	_, err := agg.SearchAll(context.Background(), "ka", nil)
	assert.ErrorIs(t, err, boom, "one failing source must fail the whole search")
}

func TestAdvancedAppliesPerTypeFilters(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"characters": fixedSource(
			namedRow{ID: "kal", Name: "Kaladin"},
			namedRow{ID: "kel", Name: "Kelsier"},
		),
	}, 25)

	res, err := agg.Advanced(context.Background(), "k", map[string]map[string]interface{}{
		"characters": {"id": "kel"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalResults)
	assert.Equal(t, "kel", res.Results["characters"][0].(namedRow).ID)
}

func TestSuggestionsPrefixFirst(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"characters": fixedSource(
			namedRow{ID: "1", Name: "Vin"},
			namedRow{ID: "2", Name: "Kelsier"},
		),
		"books": fixedSource(
			namedRow{ID: "3", Title: "Kings of Nothing"},
		),
	}, 25)

	got, err := agg.Suggestions(context.Background(), "k", 10)
	require.NoError(t, err)

	require.Len(t, got, 3)
	// Prefix matches sort before substring-only matches.
	assert.Equal(t, []string{"Kelsier", "Kings of Nothing", "Vin"}, got)
}

func TestSuggestionsCapped(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"characters": fixedSource(
			namedRow{ID: "1", Name: "Kaladin"},
			namedRow{ID: "2", Name: "Kelsier"},
			namedRow{ID: "3", Name: "Khriss"},
		),
	}, 25)

	got, err := agg.Suggestions(context.Background(), "k", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTypesSorted(t *testing.T) {
	agg := NewAggregator(map[string]SearchFunc{
		"worlds": fixedSource(),
		"books":  fixedSource(),
	}, 25)
	assert.Equal(t, []string{"books", "worlds"}, agg.Types())
}
