package character

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Relationship is a typed, directed edge between two characters, optionally
// anchored to the book where it is established.
type Relationship struct {
	ID                 string    `db:"id" json:"id"`
	CharacterID        string    `db:"character_id" json:"character_id"`
	RelatedCharacterID string    `db:"related_character_id" json:"related_character_id"`
	RelationshipType   string    `db:"relationship_type" json:"relationship_type"`
	Description        *string   `db:"description" json:"description,omitempty"`
	BookContextID      *string   `db:"book_context_id" json:"book_context_id,omitempty"`
	IsReciprocal       bool      `db:"is_reciprocal" json:"is_reciprocal"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

var positiveRelationshipTypes = map[string]bool{
	"friend": true, "mentor": true, "student": true, "ally": true,
	"family": true, "lover": true, "spouse": true,
}

var negativeRelationshipTypes = map[string]bool{
	"enemy": true, "rival": true, "nemesis": true, "betrayer": true, "traitor": true,
}

// Tone classifies a relationship type as positive, negative or neutral.
func (r Relationship) Tone() string {
	t := strings.ToLower(r.RelationshipType)
	switch {
	case positiveRelationshipTypes[t]:
		return "positive"
	case negativeRelationshipTypes[t]:
		return "negative"
	default:
		return "neutral"
	}
}

func NewRelationshipStore(pool *pgxpool.Pool) repository.Store[Relationship] {
	return repository.New(pool, repository.Descriptor[Relationship]{
		Table: "character_relationships",
		Columns: []string{
			"id", "character_id", "related_character_id", "relationship_type",
			"description", "book_context_id", "is_reciprocal",
			"created_at", "updated_at",
		},
		Insert: []string{
			"id", "character_id", "related_character_id", "relationship_type",
			"description", "book_context_id", "is_reciprocal",
		},
		InsertArgs: func(r *Relationship) []interface{} {
			return []interface{}{
				r.ID, r.CharacterID, r.RelatedCharacterID, r.RelationshipType,
				r.Description, r.BookContextID, r.IsReciprocal,
			}
		},
		Filterable: []string{
			"id", "character_id", "related_character_id",
			"relationship_type", "book_context_id",
		},
		Updatable: []string{
			"relationship_type", "description", "book_context_id", "is_reciprocal",
		},
		Searchable: []string{"relationship_type", "description"},
		Orderable:  []string{"relationship_type", "created_at", "updated_at"},
	})
}

// CreateRelationshipRequest - POST /v1/characters/:id/relationships
type CreateRelationshipRequest struct {
	ID                 string  `json:"id"`
	RelatedCharacterID string  `json:"related_character_id"`
	RelationshipType   string  `json:"relationship_type"`
	Description        *string `json:"description,omitempty"`
	BookContextID      *string `json:"book_context_id,omitempty"`
	IsReciprocal       bool    `json:"is_reciprocal"`
}

func (r CreateRelationshipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.RelatedCharacterID,
			validation.Required.Error("related_character_id is required"),
		),
		validation.Field(&r.RelationshipType,
			validation.Required.Error("relationship_type is required"),
			validation.Length(1, 100),
		),
	)
}

// UpdateRelationshipRequest - PUT /v1/characters/:id/relationships/:relationship_id
type UpdateRelationshipRequest struct {
	RelationshipType *string `json:"relationship_type,omitempty"`
	Description      *string `json:"description,omitempty"`
	BookContextID    *string `json:"book_context_id,omitempty"`
	IsReciprocal     *bool   `json:"is_reciprocal,omitempty"`
}

func (r UpdateRelationshipRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RelationshipType, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

func (r UpdateRelationshipRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.RelationshipType != nil {
		out["relationship_type"] = *r.RelationshipType
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.BookContextID != nil {
		out["book_context_id"] = *r.BookContextID
	}
	if r.IsReciprocal != nil {
		out["is_reciprocal"] = *r.IsReciprocal
	}
	return out
}
