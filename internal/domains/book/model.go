package book

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

const dateLayout = "2006-01-02"

type Book struct {
	ID                  string     `db:"id" json:"id"`
	Title               string     `db:"title" json:"title"`
	ISBN                *string    `db:"isbn" json:"isbn,omitempty"`
	PublicationDate     *time.Time `db:"publication_date" json:"publication_date,omitempty"`
	WordCount           *int       `db:"word_count" json:"word_count,omitempty"`
	ChronologicalOrder  *int       `db:"chronological_order" json:"chronological_order,omitempty"`
	SeriesID            *string    `db:"series_id" json:"series_id,omitempty"`
	WorldID             string     `db:"world_id" json:"world_id"`
	Summary             *string    `db:"summary" json:"summary,omitempty"`
	CosmereSignificance *string    `db:"cosmere_significance" json:"cosmere_significance,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// IsStandalone reports whether the book belongs to no series.
func (b Book) IsStandalone() bool {
	return b.SeriesID == nil
}

func NewStore(pool *pgxpool.Pool) repository.Store[Book] {
	return repository.New(pool, repository.Descriptor[Book]{
		Table: "books",
		Columns: []string{
			"id", "title", "isbn", "publication_date", "word_count",
			"chronological_order", "series_id", "world_id", "summary",
			"cosmere_significance", "created_at", "updated_at",
		},
		Insert: []string{
			"id", "title", "isbn", "publication_date", "word_count",
			"chronological_order", "series_id", "world_id", "summary",
			"cosmere_significance",
		},
		InsertArgs: func(b *Book) []interface{} {
			return []interface{}{
				b.ID, b.Title, b.ISBN, b.PublicationDate, b.WordCount,
				b.ChronologicalOrder, b.SeriesID, b.WorldID, b.Summary,
				b.CosmereSignificance,
			}
		},
		Filterable: []string{"id", "title", "isbn", "series_id", "world_id"},
		Updatable: []string{
			"title", "isbn", "publication_date", "word_count",
			"chronological_order", "series_id", "world_id", "summary",
			"cosmere_significance",
		},
		Searchable: []string{"title", "summary"},
		Orderable: []string{
			"title", "publication_date", "chronological_order",
			"created_at", "updated_at",
		},
	})
}

// CreateBookRequest - POST /v1/books
// PublicationDate is a YYYY-MM-DD string on the wire.
type CreateBookRequest struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	ISBN                *string `json:"isbn,omitempty"`
	PublicationDate     *string `json:"publication_date,omitempty"`
	WordCount           *int    `json:"word_count,omitempty"`
	ChronologicalOrder  *int    `json:"chronological_order,omitempty"`
	SeriesID            *string `json:"series_id,omitempty"`
	WorldID             string  `json:"world_id"`
	Summary             *string `json:"summary,omitempty"`
	CosmereSignificance *string `json:"cosmere_significance,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Length(0, 50)),
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 255)),
		validation.Field(&r.WorldID, validation.Required.Error("world_id is required")),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.PublicationDate, validation.Date(dateLayout)),
	)
}

func (r CreateBookRequest) publicationDate() *time.Time {
	if r.PublicationDate == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *r.PublicationDate)
	if err != nil {
		return nil
	}
	return &t
}

// UpdateBookRequest - PUT /v1/books/:id
type UpdateBookRequest struct {
	Title               *string `json:"title,omitempty"`
	ISBN                *string `json:"isbn,omitempty"`
	PublicationDate     *string `json:"publication_date,omitempty"`
	WordCount           *int    `json:"word_count,omitempty"`
	ChronologicalOrder  *int    `json:"chronological_order,omitempty"`
	SeriesID            *string `json:"series_id,omitempty"`
	WorldID             *string `json:"world_id,omitempty"`
	Summary             *string `json:"summary,omitempty"`
	CosmereSignificance *string `json:"cosmere_significance,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.WorldID, validation.NilOrNotEmpty),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.PublicationDate, validation.Date(dateLayout)),
	)
}

func (r UpdateBookRequest) fields() map[string]interface{} {
	out := make(map[string]interface{})
	if r.Title != nil {
		out["title"] = *r.Title
	}
	if r.ISBN != nil {
		out["isbn"] = *r.ISBN
	}
	if r.PublicationDate != nil {
		if t, err := time.Parse(dateLayout, *r.PublicationDate); err == nil {
			out["publication_date"] = t
		}
	}
	if r.WordCount != nil {
		out["word_count"] = *r.WordCount
	}
	if r.ChronologicalOrder != nil {
		out["chronological_order"] = *r.ChronologicalOrder
	}
	if r.SeriesID != nil {
		out["series_id"] = *r.SeriesID
	}
	if r.WorldID != nil {
		out["world_id"] = *r.WorldID
	}
	if r.Summary != nil {
		out["summary"] = *r.Summary
	}
	if r.CosmereSignificance != nil {
		out["cosmere_significance"] = *r.CosmereSignificance
	}
	return out
}
