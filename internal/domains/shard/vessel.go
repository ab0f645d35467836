package shard

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Vessel is one person's tenure holding a shard. Held markers are free-text
// era references rather than dates; the source material rarely pins either.
type Vessel struct {
	ID         string    `db:"id" json:"id"`
	ShardID    string    `db:"shard_id" json:"shard_id"`
	VesselName string    `db:"vessel_name" json:"vessel_name"`
	Status     *string   `db:"status" json:"status,omitempty"`
	HeldFrom   *string   `db:"held_from" json:"held_from,omitempty"`
	HeldUntil  *string   `db:"held_until" json:"held_until,omitempty"`
	IsCurrent  bool      `db:"is_current" json:"is_current"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

func NewVesselStore(pool *pgxpool.Pool) repository.Store[Vessel] {
	return repository.New(pool, repository.Descriptor[Vessel]{
		Table: "shard_vessels",
		Columns: []string{
			"id", "shard_id", "vessel_name", "status", "held_from",
			"held_until", "is_current", "notes", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "shard_id", "vessel_name", "status", "held_from",
			"held_until", "is_current", "notes",
		},
		InsertArgs: func(v *Vessel) []interface{} {
			return []interface{}{
				v.ID, v.ShardID, v.VesselName, v.Status, v.HeldFrom,
				v.HeldUntil, v.IsCurrent, v.Notes,
			}
		},
		Filterable: []string{"id", "shard_id", "vessel_name", "status", "is_current"},
		Updatable: []string{
			"vessel_name", "status", "held_from", "held_until", "is_current", "notes",
		},
		Searchable: []string{"vessel_name", "notes"},
		Orderable:  []string{"vessel_name", "created_at", "updated_at"},
	})
}

// CreateVesselRequest - POST /v1/shards/:id/vessels
type CreateVesselRequest struct {
	ID         string  `json:"id"`
	VesselName string  `json:"vessel_name"`
	Status     *string `json:"status,omitempty"`
	HeldFrom   *string `json:"held_from,omitempty"`
	HeldUntil  *string `json:"held_until,omitempty"`
	IsCurrent  bool    `json:"is_current"`
	Notes      *string `json:"notes,omitempty"`
}

func (r CreateVesselRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.VesselName,
			validation.Required.Error("vessel_name is required"),
			validation.Length(1, 255),
		),
	)
}

// UpdateVesselRequest - PUT /v1/shards/:id/vessels/:vessel_id
type UpdateVesselRequest struct {
	VesselName *string `json:"vessel_name,omitempty"`
	Status     *string `json:"status,omitempty"`
	HeldFrom   *string `json:"held_from,omitempty"`
	HeldUntil  *string `json:"held_until,omitempty"`
	IsCurrent  *bool   `json:"is_current,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r UpdateVesselRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VesselName, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

func (r UpdateVesselRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.VesselName != nil {
		out["vessel_name"] = *r.VesselName
	}
	if r.Status != nil {
		out["status"] = *r.Status
	}
	if r.HeldFrom != nil {
		out["held_from"] = *r.HeldFrom
	}
	if r.HeldUntil != nil {
		out["held_until"] = *r.HeldUntil
	}
	if r.IsCurrent != nil {
		out["is_current"] = *r.IsCurrent
	}
	if r.Notes != nil {
		out["notes"] = *r.Notes
	}
	return out
}
