package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Appearance links a character to a book they appear in, with a role label
// and POV flag. One row per (book, character) pairing.
type Appearance struct {
	ID             string    `db:"id" json:"id"`
	BookID         string    `db:"book_id" json:"book_id"`
	CharacterID    string    `db:"character_id" json:"character_id"`
	Role           *string   `db:"role" json:"role,omitempty"`
	IsPOVCharacter bool      `db:"is_pov_character" json:"is_pov_character"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

func NewAppearanceStore(pool *pgxpool.Pool) repository.Store[Appearance] {
	return repository.New(pool, repository.Descriptor[Appearance]{
		Table: "book_characters",
		Columns: []string{
			"id", "book_id", "character_id", "role", "is_pov_character",
			"notes", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "book_id", "character_id", "role", "is_pov_character", "notes",
		},
		InsertArgs: func(a *Appearance) []interface{} {
			return []interface{}{
				a.ID, a.BookID, a.CharacterID, a.Role, a.IsPOVCharacter, a.Notes,
			}
		},
		Filterable: []string{
			"id", "book_id", "character_id", "role", "is_pov_character",
		},
		Updatable:  []string{"role", "is_pov_character", "notes"},
		Searchable: []string{"role", "notes"},
		Orderable:  []string{"created_at", "updated_at"},
	})
}

// CreateAppearanceRequest - POST /v1/books/:id/characters
type CreateAppearanceRequest struct {
	ID             string  `json:"id"`
	CharacterID    string  `json:"character_id"`
	Role           *string `json:"role,omitempty"`
	IsPOVCharacter bool    `json:"is_pov_character"`
	Notes          *string `json:"notes,omitempty"`
}

func (r CreateAppearanceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.CharacterID,
			validation.Required.Error("character_id is required"),
		),
		validation.Field(&r.Role, validation.Length(0, 100)),
	)
}

// UpdateAppearanceRequest - PUT /v1/books/:id/characters/:character_id
type UpdateAppearanceRequest struct {
	Role           *string `json:"role,omitempty"`
	IsPOVCharacter *bool   `json:"is_pov_character,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r UpdateAppearanceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Length(0, 100)),
	)
}

func (r UpdateAppearanceRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Role != nil {
		out["role"] = *r.Role
	}
	if r.IsPOVCharacter != nil {
		out["is_pov_character"] = *r.IsPOVCharacter
	}
	if r.Notes != nil {
		out["notes"] = *r.Notes
	}
	return out
}
