package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

type row struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	WorldID *string `json:"world_id,omitempty"`
}

func strptr(s string) *string { return &s }

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Window(items, 0, 2))
	assert.Equal(t, []int{3, 4}, Window(items, 2, 2))
	assert.Equal(t, []int{5}, Window(items, 4, 2))
	assert.Empty(t, Window(items, 5, 2))
	assert.Empty(t, Window(items, -1, 2))
	assert.Equal(t, items, Window(items, 0, 0), "non-positive limit means no cap")
	assert.Equal(t, []int{4, 5}, Window(items, 3, 100))
}

func TestMatches(t *testing.T) {
	item := row{ID: "kal", Name: "Kaladin", WorldID: strptr("roshar")}

	assert.True(t, Matches(item, nil))
	assert.True(t, Matches(item, map[string]interface{}{"world_id": "roshar"}))
	assert.False(t, Matches(item, map[string]interface{}{"world_id": "scadrial"}))
	assert.False(t, Matches(item, map[string]interface{}{"unknown_field": "x"}))
	assert.True(t, Matches(item, map[string]interface{}{"id": "kal", "name": "Kaladin"}))
}

func TestMatchesNilFilterValue(t *testing.T) {
	standalone := row{ID: "warbreaker", Name: "Warbreaker"}
	placed := row{ID: "wok", Name: "The Way of Kings", WorldID: strptr("roshar")}

	assert.True(t, Matches(standalone, map[string]interface{}{"world_id": nil}), "omitted field counts as null")
	assert.False(t, Matches(placed, map[string]interface{}{"world_id": nil}))
	assert.False(t, Matches(standalone, map[string]interface{}{"world_id": "roshar"}))

	// An explicit JSON null matches too.
	asMap := map[string]interface{}{"id": "warbreaker", "world_id": nil}
	assert.True(t, Matches(asMap, map[string]interface{}{"world_id": nil}))
}

func TestFetchWithoutSearch(t *testing.T) {
	store := &repotest.Store[row]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]row, error) {
			assert.Equal(t, 2, q.Skip)
			assert.Equal(t, 2, q.Limit)
			return []row{{ID: "c"}, {ID: "d"}}, nil
		},
		CountFn: func(_ context.Context, _ map[string]interface{}) (int, error) {
			return 10, nil
		},
	}

	page, err := Fetch(context.Background(), store, Params{Skip: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Total)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestFetchWithSearchFiltersAndWindows(t *testing.T) {
	store := &repotest.Store[row]{
		SearchFn: func(_ context.Context, term string, _ int) ([]row, error) {
			assert.Equal(t, "ka", term)
			return []row{
				{ID: "kal", Name: "Kaladin", WorldID: strptr("roshar")},
				{ID: "kel", Name: "Kelsier", WorldID: strptr("scadrial")},
				{ID: "khr", Name: "Khriss", WorldID: strptr("taldain")},
			}, nil
		},
	}

	page, err := Fetch(context.Background(), store, Params{
		Skip:    0,
		Limit:   10,
		Search:  "ka",
		Filters: map[string]interface{}{"world_id": "roshar"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total, "equality filters compose with search")
	assert.Equal(t, "kal", page.Items[0].ID)
}

func TestFetchSearchComposesWithNullFilter(t *testing.T) {
	store := &repotest.Store[row]{
		SearchFn: func(_ context.Context, _ string, _ int) ([]row, error) {
			return []row{
				{ID: "warbreaker", Name: "Warbreaker"},
				{ID: "wor", Name: "Words of Radiance", WorldID: strptr("roshar")},
			}, nil
		},
	}

	page, err := Fetch(context.Background(), store, Params{
		Limit:   10,
		Search:  "w",
		Filters: map[string]interface{}{"world_id": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total, "rows without the field survive a nil filter")
	assert.Equal(t, "warbreaker", page.Items[0].ID)
}

func TestFetchPropagatesStoreError(t *testing.T) {
	boom := errors.New("store down")
	store := &repotest.Store[row]{
		GetMultiFn: func(_ context.Context, _ repository.Query) ([]row, error) {
			return nil, boom
		},
	}

	_, err := Fetch(context.Background(), store, Params{Limit: 10})
	assert.ErrorIs(t, err, boom)
}

func TestCacheKeyDeterministic(t *testing.T) {
	p := Params{Skip: 0, Limit: 20, Filters: map[string]interface{}{"world_id": "roshar", "status": "alive"}}
	q := Params{Skip: 0, Limit: 20, Filters: map[string]interface{}{"status": "alive", "world_id": "roshar"}}

	assert.Equal(t, CacheKey("cosmere", "characters", p), CacheKey("cosmere", "characters", q))
	assert.NotEqual(t,
		CacheKey("cosmere", "characters", p),
		CacheKey("cosmere", "characters", Params{Skip: 20, Limit: 20, Filters: p.Filters}),
	)
}
