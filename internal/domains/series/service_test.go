package series

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

func strptr(s string) *string { return &s }

func TestCreateDefaultsStatus(t *testing.T) {
	var inserted *Series
	store := &repotest.Store[Series]{
		CreateFn: func(_ context.Context, sr *Series) (*Series, error) {
			inserted = sr
			return sr, nil
		},
	}
	svc := NewService(store, nil)

	_, err := svc.Create(context.Background(), &CreateSeriesRequest{Name: "Mistborn", WorldID: strptr("scadrial")})
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, inserted.Status)
	assert.NotEmpty(t, inserted.ID)
}

func TestListByWorldInjectsFilter(t *testing.T) {
	store := &repotest.Store[Series]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Series, error) {
			assert.Equal(t, "roshar", q.Filters["world_id"])
			return []Series{{ID: "stormlight", Name: "The Stormlight Archive", WorldID: strptr("roshar")}}, nil
		},
		CountFn: func(_ context.Context, _ map[string]interface{}) (int, error) { return 1, nil },
	}
	svc := NewService(store, nil)

	page, err := svc.ListByWorld(context.Background(), "roshar", listing.Params{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestGetByNameNotFound(t *testing.T) {
	svc := NewService(&repotest.Store[Series]{}, nil)

	_, err := svc.GetByName(context.Background(), "Nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
