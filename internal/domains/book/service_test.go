package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/domains/character"
	"github.com/jeffbulltech/cosmere-api/internal/listing"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestListStandaloneFiltersNullSeries(t *testing.T) {
	store := &repotest.Store[Book]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Book, error) {
			v, ok := q.Filters["series_id"]
			assert.True(t, ok)
			assert.Nil(t, v, "standalone means series_id IS NULL")
			return []Book{{ID: "elantris", Title: "Elantris", WorldID: "sel"}}, nil
		},
		CountFn: func(_ context.Context, _ map[string]interface{}) (int, error) { return 1, nil },
	}
	svc := NewService(store, &repotest.Store[Appearance]{}, &repotest.Store[character.Character]{}, nil)

	page, err := svc.ListStandalone(context.Background(), listing.Params{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestListBySeriesDefaultsToChronologicalOrder(t *testing.T) {
	store := &repotest.Store[Book]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Book, error) {
			assert.Equal(t, "stormlight", q.Filters["series_id"])
			assert.Equal(t, "chronological_order", q.OrderBy)
			return nil, nil
		},
	}
	svc := NewService(store, &repotest.Store[Appearance]{}, &repotest.Store[character.Character]{}, nil)

	_, err := svc.ListBySeries(context.Background(), "stormlight", listing.Params{Limit: 20})
	require.NoError(t, err)
}

func TestCharactersHydratesAndFiltersPOV(t *testing.T) {
	books := &repotest.Store[Book]{
		ExistsFn: func(_ context.Context, id string) (bool, error) { return id == "wok", nil },
	}
	appearances := &repotest.Store[Appearance]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Appearance, error) {
			assert.Equal(t, "wok", q.Filters["book_id"])
			if pov, ok := q.Filters["is_pov_character"]; ok {
				assert.Equal(t, true, pov)
				return []Appearance{{ID: "l1", BookID: "wok", CharacterID: "kal", IsPOVCharacter: true}}, nil
			}
			return []Appearance{
				{ID: "l1", BookID: "wok", CharacterID: "kal", IsPOVCharacter: true},
				{ID: "l2", BookID: "wok", CharacterID: "syl"},
			}, nil
		},
	}
	characters := &repotest.Store[character.Character]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]character.Character, error) {
			return []character.Character{
				{ID: "kal", Name: "Kaladin", WorldOfOriginID: "roshar"},
				{ID: "syl", Name: "Sylphrena", WorldOfOriginID: "roshar"},
			}, nil
		},
	}
	svc := NewService(books, appearances, characters, nil)

	all, err := svc.Characters(context.Background(), "wok", false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Kaladin", all[0].Character.Name)

	pov, err := svc.Characters(context.Background(), "wok", true)
	require.NoError(t, err)
	require.Len(t, pov, 1)
	assert.True(t, pov[0].IsPOVCharacter)
}

func TestCharactersUnknownBook(t *testing.T) {
	svc := NewService(&repotest.Store[Book]{}, &repotest.Store[Appearance]{}, &repotest.Store[character.Character]{}, nil)

	_, err := svc.Characters(context.Background(), "nope", false)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBooksOfCharacter(t *testing.T) {
	books := &repotest.Store[Book]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Book, error) {
			assert.ElementsMatch(t, []string{"wok", "wor"}, q.Filters["id"])
			return []Book{{ID: "wok"}, {ID: "wor"}}, nil
		},
	}
	appearances := &repotest.Store[Appearance]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Appearance, error) {
			assert.Equal(t, "kal", q.Filters["character_id"])
			return []Appearance{
				{ID: "l1", BookID: "wok", CharacterID: "kal"},
				{ID: "l2", BookID: "wor", CharacterID: "kal"},
			}, nil
		},
	}
	svc := NewService(books, appearances, &repotest.Store[character.Character]{}, nil)

	got, err := svc.BooksOf(context.Background(), "kal")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRemoveCharacterMissingPairing(t *testing.T) {
	svc := NewService(&repotest.Store[Book]{}, &repotest.Store[Appearance]{}, &repotest.Store[character.Character]{}, nil)

	err := svc.RemoveCharacter(context.Background(), "wok", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBuildOverview(t *testing.T) {
	books := []Book{
		{ID: "wok", WorldID: "roshar", SeriesID: strptr("stormlight"), WordCount: intptr(380000)},
		{ID: "wor", WorldID: "roshar", SeriesID: strptr("stormlight"), WordCount: intptr(400000)},
		{ID: "elantris", WorldID: "sel"},
	}

	o := BuildOverview(books)
	assert.Equal(t, 3, o.TotalBooks)
	assert.Equal(t, 2, o.InSeries)
	assert.Equal(t, 1, o.Standalone)
	assert.Equal(t, 2, o.ByWorld["roshar"])
	assert.Equal(t, 780000, o.TotalWordCount)
	assert.Equal(t, 390000, o.AvgWordCount, "average only counts books with a word count")
}

func TestCreateParsesPublicationDate(t *testing.T) {
	req := CreateBookRequest{Title: "The Way of Kings", WorldID: "roshar", PublicationDate: strptr("2010-08-31")}
	require.NoError(t, req.Validate())

	d := req.publicationDate()
	require.NotNil(t, d)
	assert.Equal(t, 2010, d.Year())

	bad := CreateBookRequest{Title: "X", WorldID: "roshar", PublicationDate: strptr("31/08/2010")}
	assert.Error(t, bad.Validate())
}
