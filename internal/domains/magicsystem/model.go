package magicsystem

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

type MagicSystem struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	WorldID            *string   `db:"world_id" json:"world_id,omitempty"`
	Description        *string   `db:"description" json:"description,omitempty"`
	Mechanics          *string   `db:"mechanics" json:"mechanics,omitempty"`
	Requirements       *string   `db:"requirements" json:"requirements,omitempty"`
	Limitations        *string   `db:"limitations" json:"limitations,omitempty"`
	IsInvestitureBased bool      `db:"is_investiture_based" json:"is_investiture_based"`
	RelatedSystems     *string   `db:"related_systems" json:"related_systems,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

func NewStore(pool *pgxpool.Pool) repository.Store[MagicSystem] {
	return repository.New(pool, repository.Descriptor[MagicSystem]{
		Table: "magic_systems",
		Columns: []string{
			"id", "name", "world_id", "description", "mechanics", "requirements",
			"limitations", "is_investiture_based", "related_systems",
			"created_at", "updated_at",
		},
		Insert: []string{
			"id", "name", "world_id", "description", "mechanics", "requirements",
			"limitations", "is_investiture_based", "related_systems",
		},
		InsertArgs: func(m *MagicSystem) []interface{} {
			return []interface{}{
				m.ID, m.Name, m.WorldID, m.Description, m.Mechanics, m.Requirements,
				m.Limitations, m.IsInvestitureBased, m.RelatedSystems,
			}
		},
		Filterable: []string{"id", "name", "world_id", "is_investiture_based"},
		Updatable: []string{
			"name", "world_id", "description", "mechanics", "requirements",
			"limitations", "is_investiture_based", "related_systems",
		},
		Searchable: []string{"name", "description", "mechanics"},
		Orderable:  []string{"name", "created_at", "updated_at"},
	})
}

// CreateMagicSystemRequest - POST /v1/magic-systems
type CreateMagicSystemRequest struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	WorldID            *string `json:"world_id,omitempty"`
	Description        *string `json:"description,omitempty"`
	Mechanics          *string `json:"mechanics,omitempty"`
	Requirements       *string `json:"requirements,omitempty"`
	Limitations        *string `json:"limitations,omitempty"`
	IsInvestitureBased bool    `json:"is_investiture_based"`
	RelatedSystems     *string `json:"related_systems,omitempty"`
}

func (r CreateMagicSystemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
	)
}

// UpdateMagicSystemRequest - PUT /v1/magic-systems/:id
type UpdateMagicSystemRequest struct {
	Name               *string `json:"name,omitempty"`
	WorldID            *string `json:"world_id,omitempty"`
	Description        *string `json:"description,omitempty"`
	Mechanics          *string `json:"mechanics,omitempty"`
	Requirements       *string `json:"requirements,omitempty"`
	Limitations        *string `json:"limitations,omitempty"`
	IsInvestitureBased *bool   `json:"is_investiture_based,omitempty"`
	RelatedSystems     *string `json:"related_systems,omitempty"`
}

func (r UpdateMagicSystemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (r UpdateMagicSystemRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.WorldID != nil {
		out["world_id"] = *r.WorldID
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Mechanics != nil {
		out["mechanics"] = *r.Mechanics
	}
	if r.Requirements != nil {
		out["requirements"] = *r.Requirements
	}
	if r.Limitations != nil {
		out["limitations"] = *r.Limitations
	}
	if r.IsInvestitureBased != nil {
		out["is_investiture_based"] = *r.IsInvestitureBased
	}
	if r.RelatedSystems != nil {
		out["related_systems"] = *r.RelatedSystems
	}
	return out
}
