package character

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Character status values seen in the source material. Free-form values are
// accepted too; these are the common ones.
const (
	StatusAlive           = "alive"
	StatusDead            = "dead"
	StatusCognitiveShadow = "cognitive_shadow"
	StatusUnknown         = "unknown"
)

// Character is one person in the catalog. Aliases, magic abilities,
// affiliations and significance notes are serialized JSON text, parsed by
// clients on read.
type Character struct {
	ID                    string    `db:"id" json:"id"`
	Name                  string    `db:"name" json:"name"`
	Aliases               *string   `db:"aliases" json:"aliases,omitempty"`
	Species               *string   `db:"species" json:"species,omitempty"`
	Status                *string   `db:"status" json:"status,omitempty"`
	WorldOfOriginID       string    `db:"world_of_origin_id" json:"world_of_origin_id"`
	FirstAppearanceBookID *string   `db:"first_appearance_book_id" json:"first_appearance_book_id,omitempty"`
	Biography             *string   `db:"biography" json:"biography,omitempty"`
	MagicAbilities        *string   `db:"magic_abilities" json:"magic_abilities,omitempty"`
	Affiliations          *string   `db:"affiliations" json:"affiliations,omitempty"`
	CosmereSignificance   *string   `db:"cosmere_significance" json:"cosmere_significance,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

func NewStore(pool *pgxpool.Pool) repository.Store[Character] {
	return repository.New(pool, repository.Descriptor[Character]{
		Table: "characters",
		Columns: []string{
			"id", "name", "aliases", "species", "status", "world_of_origin_id",
			"first_appearance_book_id", "biography", "magic_abilities",
			"affiliations", "cosmere_significance", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "name", "aliases", "species", "status", "world_of_origin_id",
			"first_appearance_book_id", "biography", "magic_abilities",
			"affiliations", "cosmere_significance",
		},
		InsertArgs: func(ch *Character) []interface{} {
			return []interface{}{
				ch.ID, ch.Name, ch.Aliases, ch.Species, ch.Status, ch.WorldOfOriginID,
				ch.FirstAppearanceBookID, ch.Biography, ch.MagicAbilities,
				ch.Affiliations, ch.CosmereSignificance,
			}
		},
		Filterable: []string{
			"id", "name", "species", "status", "world_of_origin_id",
			"first_appearance_book_id",
		},
		Updatable: []string{
			"name", "aliases", "species", "status", "world_of_origin_id",
			"first_appearance_book_id", "biography", "magic_abilities",
			"affiliations", "cosmere_significance",
		},
		Searchable: []string{"name", "aliases", "biography"},
		Orderable:  []string{"name", "species", "status", "created_at", "updated_at"},
	})
}

// CreateCharacterRequest - POST /v1/characters
type CreateCharacterRequest struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Aliases               *string `json:"aliases,omitempty"`
	Species               *string `json:"species,omitempty"`
	Status                *string `json:"status,omitempty"`
	WorldOfOriginID       string  `json:"world_of_origin_id"`
	FirstAppearanceBookID *string `json:"first_appearance_book_id,omitempty"`
	Biography             *string `json:"biography,omitempty"`
	MagicAbilities        *string `json:"magic_abilities,omitempty"`
	Affiliations          *string `json:"affiliations,omitempty"`
	CosmereSignificance   *string `json:"cosmere_significance,omitempty"`
}

func (r CreateCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 255)),
		validation.Field(&r.WorldOfOriginID, validation.Required.Error("world_of_origin_id is required")),
	)
}

// UpdateCharacterRequest - PUT /v1/characters/:id
type UpdateCharacterRequest struct {
	Name                  *string `json:"name,omitempty"`
	Aliases               *string `json:"aliases,omitempty"`
	Species               *string `json:"species,omitempty"`
	Status                *string `json:"status,omitempty"`
	WorldOfOriginID       *string `json:"world_of_origin_id,omitempty"`
	FirstAppearanceBookID *string `json:"first_appearance_book_id,omitempty"`
	Biography             *string `json:"biography,omitempty"`
	MagicAbilities        *string `json:"magic_abilities,omitempty"`
	Affiliations          *string `json:"affiliations,omitempty"`
	CosmereSignificance   *string `json:"cosmere_significance,omitempty"`
}

func (r UpdateCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.WorldOfOriginID, validation.NilOrNotEmpty),
	)
}

func (r UpdateCharacterRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Aliases != nil {
		out["aliases"] = *r.Aliases
	}
	if r.Species != nil {
		out["species"] = *r.Species
	}
	if r.Status != nil {
		out["status"] = *r.Status
	}
	if r.WorldOfOriginID != nil {
		out["world_of_origin_id"] = *r.WorldOfOriginID
	}
	if r.FirstAppearanceBookID != nil {
		out["first_appearance_book_id"] = *r.FirstAppearanceBookID
	}
	if r.Biography != nil {
		out["biography"] = *r.Biography
	}
	if r.MagicAbilities != nil {
		out["magic_abilities"] = *r.MagicAbilities
	}
	if r.Affiliations != nil {
		out["affiliations"] = *r.Affiliations
	}
	if r.CosmereSignificance != nil {
		out["cosmere_significance"] = *r.CosmereSignificance
	}
	return out
}
