package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWhere(t *testing.T) {
	allowed := map[string]bool{"world_id": true, "status": true, "series_id": true, "id": true}

	tests := []struct {
		name     string
		filters  map[string]interface{}
		want     string
		wantArgs int
	}{
		{
			name:    "no filters",
			filters: nil,
			want:    "",
		},
		{
			name:     "single equality",
			filters:  map[string]interface{}{"world_id": "roshar"},
			want:     " WHERE world_id = $1",
			wantArgs: 1,
		},
		{
			name:     "keys sorted for determinism",
			filters:  map[string]interface{}{"world_id": "roshar", "status": "alive"},
			want:     " WHERE status = $1 AND world_id = $2",
			wantArgs: 2,
		},
		{
			name:     "slice becomes membership",
			filters:  map[string]interface{}{"id": []string{"a", "b"}},
			want:     " WHERE id = ANY($1)",
			wantArgs: 1,
		},
		{
			name:    "nil value becomes IS NULL",
			filters: map[string]interface{}{"series_id": nil},
			want:    " WHERE series_id IS NULL",
		},
		{
			name:     "unknown key dropped",
			filters:  map[string]interface{}{"nope": 1, "status": "dead"},
			want:     " WHERE status = $1",
			wantArgs: 1,
		},
		{
			name:    "only unknown keys",
			filters: map[string]interface{}{"nope": 1},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildWhere(tt.filters, allowed, 1)
			assert.Equal(t, tt.want, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestBuildWhereArgStart(t *testing.T) {
	allowed := map[string]bool{"status": true}
	where, args := buildWhere(map[string]interface{}{"status": "ongoing"}, allowed, 3)
	assert.Equal(t, " WHERE status = $3", where)
	assert.Equal(t, []interface{}{"ongoing"}, args)
}

func TestBuildOrder(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, "created_at, id", buildOrder("", false, allowed))
	assert.Equal(t, "created_at, id", buildOrder("drop table", false, allowed))
	assert.Equal(t, "name ASC", buildOrder("name", false, allowed))
	assert.Equal(t, "name DESC", buildOrder("name", true, allowed))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "kaladin", escapeLike("kaladin"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\d`, escapeLike(`c:\d`))
}
