package shard

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Shard status values.
const (
	StatusWhole      = "whole"
	StatusSplintered = "splintered"
	StatusCombined   = "combined"
	StatusUnknown    = "unknown"
)

type Shard struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Intent          string    `db:"intent" json:"intent"`
	Status          string    `db:"status" json:"status"`
	WorldLocationID *string   `db:"world_location_id" json:"world_location_id,omitempty"`
	Description     *string   `db:"description" json:"description,omitempty"`
	SplinterInfo    *string   `db:"splinter_info" json:"splinter_info,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

func NewStore(pool *pgxpool.Pool) repository.Store[Shard] {
	return repository.New(pool, repository.Descriptor[Shard]{
		Table: "shards",
		Columns: []string{
			"id", "name", "intent", "status", "world_location_id",
			"description", "splinter_info", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "name", "intent", "status", "world_location_id",
			"description", "splinter_info",
		},
		InsertArgs: func(s *Shard) []interface{} {
			return []interface{}{
				s.ID, s.Name, s.Intent, s.Status, s.WorldLocationID,
				s.Description, s.SplinterInfo,
			}
		},
		Filterable: []string{"id", "name", "intent", "status", "world_location_id"},
		Updatable: []string{
			"name", "intent", "status", "world_location_id",
			"description", "splinter_info",
		},
		Searchable: []string{"name", "intent", "description"},
		Orderable:  []string{"name", "intent", "status", "created_at", "updated_at"},
	})
}

func statusRule() validation.Rule {
	return validation.In(StatusWhole, StatusSplintered, StatusCombined, StatusUnknown).
		Error("status must be one of whole, splintered, combined, unknown")
}

// CreateShardRequest - POST /v1/shards
type CreateShardRequest struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Intent          string  `json:"intent"`
	Status          string  `json:"status"`
	WorldLocationID *string `json:"world_location_id,omitempty"`
	Description     *string `json:"description,omitempty"`
	SplinterInfo    *string `json:"splinter_info,omitempty"`
}

func (r CreateShardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 255)),
		validation.Field(&r.Intent, validation.Required.Error("intent is required"), validation.Length(1, 255)),
		validation.Field(&r.Status, statusRule()),
	)
}

// UpdateShardRequest - PUT /v1/shards/:id
type UpdateShardRequest struct {
	Name            *string `json:"name,omitempty"`
	Intent          *string `json:"intent,omitempty"`
	Status          *string `json:"status,omitempty"`
	WorldLocationID *string `json:"world_location_id,omitempty"`
	Description     *string `json:"description,omitempty"`
	SplinterInfo    *string `json:"splinter_info,omitempty"`
}

func (r UpdateShardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Intent, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Status, statusRule()),
	)
}

func (r UpdateShardRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Intent != nil {
		out["intent"] = *r.Intent
	}
	if r.Status != nil {
		out["status"] = *r.Status
	}
	if r.WorldLocationID != nil {
		out["world_location_id"] = *r.WorldLocationID
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.SplinterInfo != nil {
		out["splinter_info"] = *r.SplinterInfo
	}
	return out
}
