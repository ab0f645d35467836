package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

func strptr(s string) *string { return &s }

func TestGetByID(t *testing.T) {
	store := &repotest.Store[World]{
		GetFn: func(_ context.Context, id string) (*World, error) {
			if id == "roshar" {
				return &World{ID: "roshar", Name: "Roshar"}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(store, nil)

	w, err := svc.GetByID(context.Background(), "roshar")
	require.NoError(t, err)
	assert.Equal(t, "Roshar", w.Name)

	_, err = svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetByIDStoreErrorNotMasked(t *testing.T) {
	boom := errors.New("store down")
	store := &repotest.Store[World]{
		GetFn: func(_ context.Context, _ string) (*World, error) {
			return nil, boom
		},
	}
	svc := NewService(store, nil)

	_, err := svc.GetByID(context.Background(), "roshar")
	assert.ErrorIs(t, err, boom)
}

func TestGetByName(t *testing.T) {
	store := &repotest.Store[World]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]World, error) {
			if q.Filters["name"] == "Roshar" {
				return []World{{ID: "roshar", Name: "Roshar"}}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(store, nil)

	w, err := svc.GetByName(context.Background(), "Roshar")
	require.NoError(t, err)
	assert.Equal(t, "roshar", w.ID)

	_, err = svc.GetByName(context.Background(), "Nalthis")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateAssignsID(t *testing.T) {
	var inserted *World
	store := &repotest.Store[World]{
		CreateFn: func(_ context.Context, w *World) (*World, error) {
			inserted = w
			return w, nil
		},
	}
	svc := NewService(store, nil)

	w, err := svc.Create(context.Background(), &CreateWorldRequest{Name: "  Roshar  "})
	require.NoError(t, err)
	assert.NotEmpty(t, inserted.ID, "missing id must be generated")
	assert.Equal(t, "Roshar", w.Name, "name is trimmed")

	// A supplied id is kept as-is.
	w, err = svc.Create(context.Background(), &CreateWorldRequest{ID: "roshar", Name: "Roshar"})
	require.NoError(t, err)
	assert.Equal(t, "roshar", w.ID)
}

func TestUpdateNotFound(t *testing.T) {
	store := &repotest.Store[World]{
		UpdateFn: func(_ context.Context, _ string, _ map[string]interface{}) (*World, error) {
			return nil, nil
		},
	}
	svc := NewService(store, nil)

	_, err := svc.Update(context.Background(), "nope", &UpdateWorldRequest{Name: strptr("X")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := &repotest.Store[World]{
		DeleteFn: func(_ context.Context, id string) (bool, error) {
			return id == "roshar", nil
		},
	}
	svc := NewService(store, nil)

	require.NoError(t, svc.Delete(context.Background(), "roshar"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), repository.ErrNotFound)
}

func TestListNoLoaderGoesStraightToStore(t *testing.T) {
	store := &repotest.Store[World]{
		GetMultiFn: func(_ context.Context, _ repository.Query) ([]World, error) {
			return []World{{ID: "roshar"}}, nil
		},
		CountFn: func(_ context.Context, _ map[string]interface{}) (int, error) {
			return 1, nil
		},
	}
	svc := NewService(store, nil)

	page, err := svc.List(context.Background(), listing.Params{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestBuildOverview(t *testing.T) {
	worlds := []World{
		{ID: "roshar", System: strptr("Rosharan"), ShardID: strptr("honor"), TechnologyLevel: strptr("medieval")},
		{ID: "scadrial", System: strptr("Scadrian"), ShardID: strptr("harmony"), TechnologyLevel: strptr("industrial")},
		{ID: "first-of-the-sun", System: strptr("Drominad")},
	}

	o := BuildOverview(worlds)
	assert.Equal(t, 3, o.TotalWorlds)
	assert.Equal(t, 2, o.WithShard)
	assert.Equal(t, 1, o.BySystem["Rosharan"])
	assert.Equal(t, 1, o.ByTechnologyLevel["industrial"])
	assert.InDelta(t, 66.67, o.WithShardPercent, 0.01)
}

func TestBuildOverviewEmpty(t *testing.T) {
	o := BuildOverview(nil)
	assert.Equal(t, 0, o.TotalWorlds)
	assert.Zero(t, o.WithShardPercent)
}

func TestUpdateRequestFields(t *testing.T) {
	req := UpdateWorldRequest{Name: strptr("Roshar"), System: strptr("Rosharan")}
	fields := req.fields()

	assert.Equal(t, map[string]interface{}{
		"name":   "Roshar",
		"system": "Rosharan",
	}, fields)

	assert.Empty(t, UpdateWorldRequest{}.fields())
}
