package world

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// World is a setting entity, optionally tied to the Shard invested in it.
type World struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	System          *string   `db:"system" json:"system,omitempty"`
	ShardID         *string   `db:"shard_id" json:"shard_id,omitempty"`
	Geography       *string   `db:"geography" json:"geography,omitempty"`
	CultureNotes    *string   `db:"culture_notes" json:"culture_notes,omitempty"`
	TechnologyLevel *string   `db:"technology_level" json:"technology_level,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func NewStore(pool *pgxpool.Pool) repository.Store[World] {
	return repository.New(pool, repository.Descriptor[World]{
		Table: "worlds",
		Columns: []string{
			"id", "name", "system", "shard_id", "geography",
			"culture_notes", "technology_level", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "name", "system", "shard_id", "geography",
			"culture_notes", "technology_level",
		},
		InsertArgs: func(w *World) []interface{} {
			return []interface{}{
				w.ID, w.Name, w.System, w.ShardID, w.Geography,
				w.CultureNotes, w.TechnologyLevel,
			}
		},
		Filterable: []string{"id", "name", "system", "shard_id", "technology_level"},
		Updatable: []string{
			"name", "system", "shard_id", "geography",
			"culture_notes", "technology_level",
		},
		Searchable: []string{"name", "system", "culture_notes"},
		Orderable:  []string{"name", "created_at", "updated_at"},
	})
}
