package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffbulltech/cosmere-api/internal/domains/magicsystem"
	"github.com/jeffbulltech/cosmere-api/internal/repository"
	"github.com/jeffbulltech/cosmere-api/internal/repository/repotest"
)

func strptr(s string) *string { return &s }

func newTestService(
	store *repotest.Store[Character],
	relationships *repotest.Store[Relationship],
	magicUses *repotest.Store[MagicUse],
	magicSystems *repotest.Store[magicsystem.MagicSystem],
) *Service {
	if store == nil {
		store = &repotest.Store[Character]{
			ExistsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		}
	}
	if relationships == nil {
		relationships = &repotest.Store[Relationship]{}
	}
	if magicUses == nil {
		magicUses = &repotest.Store[MagicUse]{}
	}
	if magicSystems == nil {
		magicSystems = &repotest.Store[magicsystem.MagicSystem]{}
	}
	return NewService(store, relationships, magicUses, magicSystems, nil)
}

func TestRelationshipsMergesBothDirections(t *testing.T) {
	relationships := &repotest.Store[Relationship]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Relationship, error) {
			if q.Filters["character_id"] == "kal" {
				return []Relationship{
					{ID: "r1", CharacterID: "kal", RelatedCharacterID: "syl", RelationshipType: "ally"},
					{ID: "r2", CharacterID: "kal", RelatedCharacterID: "moash", RelationshipType: "enemy"},
				}, nil
			}
			// Incoming set overlaps on r2.
			return []Relationship{
				{ID: "r2", CharacterID: "kal", RelatedCharacterID: "moash", RelationshipType: "enemy"},
				{ID: "r3", CharacterID: "dalinar", RelatedCharacterID: "kal", RelationshipType: "mentor"},
			}, nil
		},
	}
	svc := newTestService(nil, relationships, nil, nil)

	got, err := svc.Relationships(context.Background(), "kal")
	require.NoError(t, err)

	require.Len(t, got, 3, "overlapping edges are deduplicated")
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids, "outgoing edges come first")
}

func TestRelationshipsUnknownCharacter(t *testing.T) {
	store := &repotest.Store[Character]{
		ExistsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
	}
	svc := newTestService(store, nil, nil, nil)

	_, err := svc.Relationships(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddRelationshipNormalizesType(t *testing.T) {
	var inserted *Relationship
	relationships := &repotest.Store[Relationship]{
		CreateFn: func(_ context.Context, r *Relationship) (*Relationship, error) {
			inserted = r
			return r, nil
		},
	}
	svc := newTestService(nil, relationships, nil, nil)

	_, err := svc.AddRelationship(context.Background(), "kal", &CreateRelationshipRequest{
		RelatedCharacterID: "syl",
		RelationshipType:   "  Ally ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ally", inserted.RelationshipType)
	assert.NotEmpty(t, inserted.ID)
	assert.Equal(t, "kal", inserted.CharacterID)
}

func TestUpdateRelationshipWrongOwner(t *testing.T) {
	relationships := &repotest.Store[Relationship]{
		GetFn: func(_ context.Context, id string) (*Relationship, error) {
			return &Relationship{ID: id, CharacterID: "dalinar", RelatedCharacterID: "navani"}, nil
		},
	}
	svc := newTestService(nil, relationships, nil, nil)

	_, err := svc.UpdateRelationship(context.Background(), "kal", "r9", &UpdateRelationshipRequest{
		Description: strptr("x"),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound, "a relationship owned by another character is invisible")
}

func TestRelationshipTone(t *testing.T) {
	cases := []struct {
		relType string
		want    string
	}{
		{"friend", "positive"},
		{"mentor", "positive"},
		{"spouse", "positive"},
		{"enemy", "negative"},
		{"betrayer", "negative"},
		{"colleague", "neutral"},
		{"", "neutral"},
	}
	for _, tc := range cases {
		r := Relationship{RelationshipType: tc.relType}
		assert.Equal(t, tc.want, r.Tone(), "type %q", tc.relType)
	}
}

func TestMagicSystemsHydratesLinks(t *testing.T) {
	magicUses := &repotest.Store[MagicUse]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]MagicUse, error) {
			assert.Equal(t, "kal", q.Filters["character_id"])
			return []MagicUse{
				{ID: "l1", CharacterID: "kal", MagicSystemID: "surgebinding", UserType: strptr("Windrunner")},
			}, nil
		},
	}
	magicSystems := &repotest.Store[magicsystem.MagicSystem]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]magicsystem.MagicSystem, error) {
			assert.Equal(t, []string{"surgebinding"}, q.Filters["id"])
			return []magicsystem.MagicSystem{{ID: "surgebinding", Name: "Surgebinding", WorldID: strptr("roshar")}}, nil
		},
	}
	svc := newTestService(nil, nil, magicUses, magicSystems)

	got, err := svc.MagicSystems(context.Background(), "kal")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].System)
	assert.Equal(t, "Surgebinding", got[0].System.Name)
}

func TestUpdateMagicSystemMissingPairing(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.UpdateMagicSystem(context.Background(), "kal", "allomancy", &UpdateMagicUseRequest{
		Notes: strptr("x"),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUsersOf(t *testing.T) {
	magicUses := &repotest.Store[MagicUse]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]MagicUse, error) {
			assert.Equal(t, "allomancy", q.Filters["magic_system_id"])
			return []MagicUse{
				{ID: "l1", CharacterID: "vin", MagicSystemID: "allomancy"},
				{ID: "l2", CharacterID: "kel", MagicSystemID: "allomancy"},
			}, nil
		},
	}
	store := &repotest.Store[Character]{
		GetMultiFn: func(_ context.Context, q repository.Query) ([]Character, error) {
			assert.ElementsMatch(t, []string{"vin", "kel"}, q.Filters["id"])
			return []Character{{ID: "vin"}, {ID: "kel"}}, nil
		},
	}
	svc := newTestService(store, nil, magicUses, nil)

	got, err := svc.UsersOf(context.Background(), "allomancy")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUsersOfNoLinks(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	got, err := svc.UsersOf(context.Background(), "allomancy")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildOverview(t *testing.T) {
	characters := []Character{
		{ID: "kal", WorldOfOriginID: "roshar", Status: strptr(StatusAlive), Species: strptr("human"), MagicAbilities: strptr(`["surgebinding"]`)},
		{ID: "syl", WorldOfOriginID: "roshar", Status: strptr(StatusAlive), Species: strptr("spren"), MagicAbilities: strptr(`["honorspren bond"]`)},
		{ID: "elhokar", WorldOfOriginID: "roshar", Status: strptr(StatusDead), Species: strptr("human")},
		{ID: "khriss", WorldOfOriginID: "taldain"},
	}

	o := BuildOverview(characters)
	assert.Equal(t, 4, o.TotalCharacters)
	assert.Equal(t, 2, o.ByStatus[StatusAlive])
	assert.Equal(t, 1, o.ByStatus[StatusDead])
	assert.Equal(t, 2, o.BySpecies["human"])
	assert.Equal(t, 3, o.ByWorld["roshar"])
	assert.Equal(t, 2, o.WithMagicAbilities)
}
