package series

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Series publication status.
const (
	StatusOngoing  = "ongoing"
	StatusComplete = "complete"
	StatusPlanned  = "planned"
	StatusOnHiatus = "on_hiatus"
)

type Series struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	WorldID      *string   `db:"world_id" json:"world_id,omitempty"`
	PlannedBooks *int      `db:"planned_books" json:"planned_books,omitempty"`
	CurrentBooks int       `db:"current_books" json:"current_books"`
	Status       string    `db:"status" json:"status"`
	ReadingOrder *string   `db:"reading_order" json:"reading_order,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func NewStore(pool *pgxpool.Pool) repository.Store[Series] {
	return repository.New(pool, repository.Descriptor[Series]{
		Table: "series",
		Columns: []string{
			"id", "name", "description", "world_id", "planned_books",
			"current_books", "status", "reading_order", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "name", "description", "world_id", "planned_books",
			"current_books", "status", "reading_order",
		},
		InsertArgs: func(s *Series) []interface{} {
			return []interface{}{
				s.ID, s.Name, s.Description, s.WorldID, s.PlannedBooks,
				s.CurrentBooks, s.Status, s.ReadingOrder,
			}
		},
		Filterable: []string{"id", "name", "world_id", "status"},
		Updatable: []string{
			"name", "description", "world_id", "planned_books",
			"current_books", "status", "reading_order",
		},
		Searchable: []string{"name", "description"},
		Orderable:  []string{"name", "status", "created_at", "updated_at"},
	})
}

func statusRule() validation.Rule {
	return validation.In(StatusOngoing, StatusComplete, StatusPlanned, StatusOnHiatus).
		Error("status must be one of ongoing, complete, planned, on_hiatus")
}

// CreateSeriesRequest - POST /v1/series
type CreateSeriesRequest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	WorldID      *string `json:"world_id,omitempty"`
	PlannedBooks *int    `json:"planned_books,omitempty"`
	CurrentBooks int     `json:"current_books"`
	Status       string  `json:"status"`
	ReadingOrder *string `json:"reading_order,omitempty"`
}

func (r CreateSeriesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
		validation.Field(&r.Status, statusRule()),
	)
}

// UpdateSeriesRequest - PUT /v1/series/:id
type UpdateSeriesRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	WorldID      *string `json:"world_id,omitempty"`
	PlannedBooks *int    `json:"planned_books,omitempty"`
	CurrentBooks *int    `json:"current_books,omitempty"`
	Status       *string `json:"status,omitempty"`
	ReadingOrder *string `json:"reading_order,omitempty"`
}

func (r UpdateSeriesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Status, statusRule()),
	)
}

func (r UpdateSeriesRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.WorldID != nil {
		out["world_id"] = *r.WorldID
	}
	if r.PlannedBooks != nil {
		out["planned_books"] = *r.PlannedBooks
	}
	if r.CurrentBooks != nil {
		out["current_books"] = *r.CurrentBooks
	}
	if r.Status != nil {
		out["status"] = *r.Status
	}
	if r.ReadingOrder != nil {
		out["reading_order"] = *r.ReadingOrder
	}
	return out
}
