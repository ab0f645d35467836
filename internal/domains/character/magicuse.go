package character

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// MagicUse links a character to a magic system they wield. One row per
// (character, magic system) pairing.
type MagicUse struct {
	ID               string    `db:"id" json:"id"`
	CharacterID      string    `db:"character_id" json:"character_id"`
	MagicSystemID    string    `db:"magic_system_id" json:"magic_system_id"`
	UserType         *string   `db:"user_type" json:"user_type,omitempty"`
	ProficiencyLevel *string   `db:"proficiency_level" json:"proficiency_level,omitempty"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

func NewMagicUseStore(pool *pgxpool.Pool) repository.Store[MagicUse] {
	return repository.New(pool, repository.Descriptor[MagicUse]{
		Table: "character_magic_systems",
		Columns: []string{
			"id", "character_id", "magic_system_id", "user_type",
			"proficiency_level", "is_active", "notes", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "character_id", "magic_system_id", "user_type",
			"proficiency_level", "is_active", "notes",
		},
		InsertArgs: func(m *MagicUse) []interface{} {
			return []interface{}{
				m.ID, m.CharacterID, m.MagicSystemID, m.UserType,
				m.ProficiencyLevel, m.IsActive, m.Notes,
			}
		},
		Filterable: []string{
			"id", "character_id", "magic_system_id", "user_type", "is_active",
		},
		Updatable: []string{
			"user_type", "proficiency_level", "is_active", "notes",
		},
		Searchable: []string{"user_type", "notes"},
		Orderable:  []string{"created_at", "updated_at"},
	})
}

// CreateMagicUseRequest - POST /v1/characters/:id/magic-systems
type CreateMagicUseRequest struct {
	ID               string  `json:"id"`
	MagicSystemID    string  `json:"magic_system_id"`
	UserType         *string `json:"user_type,omitempty"`
	ProficiencyLevel *string `json:"proficiency_level,omitempty"`
	IsActive         bool    `json:"is_active"`
	Notes            *string `json:"notes,omitempty"`
}

func (r CreateMagicUseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.MagicSystemID,
			validation.Required.Error("magic_system_id is required"),
		),
	)
}

// UpdateMagicUseRequest - PUT /v1/characters/:id/magic-systems/:magic_system_id
type UpdateMagicUseRequest struct {
	UserType         *string `json:"user_type,omitempty"`
	ProficiencyLevel *string `json:"proficiency_level,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

func (r UpdateMagicUseRequest) Validate() error {
	return validation.ValidateStruct(&r)
}

func (r UpdateMagicUseRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.UserType != nil {
		out["user_type"] = *r.UserType
	}
	if r.ProficiencyLevel != nil {
		out["proficiency_level"] = *r.ProficiencyLevel
	}
	if r.IsActive != nil {
		out["is_active"] = *r.IsActive
	}
	if r.Notes != nil {
		out["notes"] = *r.Notes
	}
	return out
}
