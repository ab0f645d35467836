package world

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateWorldRequest - POST /v1/worlds
type CreateWorldRequest struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	System          *string `json:"system,omitempty"`
	ShardID         *string `json:"shard_id,omitempty"`
	Geography       *string `json:"geography,omitempty"`
	CultureNotes    *string `json:"culture_notes,omitempty"`
	TechnologyLevel *string `json:"technology_level,omitempty"`
}

func (r CreateWorldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 36)),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
	)
}

// UpdateWorldRequest - PUT /v1/worlds/:id
// All fields optional for partial updates.
type UpdateWorldRequest struct {
	Name            *string `json:"name,omitempty"`
	System          *string `json:"system,omitempty"`
	ShardID         *string `json:"shard_id,omitempty"`
	Geography       *string `json:"geography,omitempty"`
	CultureNotes    *string `json:"culture_notes,omitempty"`
	TechnologyLevel *string `json:"technology_level,omitempty"`
}

func (r UpdateWorldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

// fields returns only the supplied fields, keyed by column name.
func (r UpdateWorldRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.System != nil {
		out["system"] = *r.System
	}
	if r.ShardID != nil {
		out["shard_id"] = *r.ShardID
	}
	if r.Geography != nil {
		out["geography"] = *r.Geography
	}
	if r.CultureNotes != nil {
		out["culture_notes"] = *r.CultureNotes
	}
	if r.TechnologyLevel != nil {
		out["technology_level"] = *r.TechnologyLevel
	}
	return out
}
