package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Query carries the list-query parameters shared by every entity type.
// Filters map a column name to a scalar (equality) or a slice (membership);
// unknown columns are silently ignored.
type Query struct {
	Skip      int
	Limit     int
	Filters   map[string]interface{}
	OrderBy   string
	OrderDesc bool
}

// Store is the data-access contract services depend on. The pgx-backed
// Repository is the production implementation; tests use in-memory fakes.
type Store[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	GetMulti(ctx context.Context, q Query) ([]T, error)
	Create(ctx context.Context, e *T) (*T, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, filters map[string]interface{}) (int, error)
	Exists(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, term string, limit int) ([]T, error)
}

// Descriptor parameterizes the generic repository for one entity type:
// table name, column lists, and whitelists for filtering, partial updates,
// substring search and ordering.
type Descriptor[T any] struct {
	Table      string
	Columns    []string
	Insert     []string
	InsertArgs func(e *T) []interface{}
	Filterable []string
	Updatable  []string
	Searchable []string
	Orderable  []string
}

// Repository implements Store[T] against a pgx connection pool.
type Repository[T any] struct {
	pool       *pgxpool.Pool
	desc       Descriptor[T]
	selectCols string
	filterable map[string]bool
	updatable  map[string]bool
	orderable  map[string]bool
}

func New[T any](pool *pgxpool.Pool, desc Descriptor[T]) *Repository[T] {
	return &Repository[T]{
		pool:       pool,
		desc:       desc,
		selectCols: strings.Join(desc.Columns, ", "),
		filterable: toSet(desc.Filterable),
		updatable:  toSet(desc.Updatable),
		orderable:  toSet(desc.Orderable),
	}
}

func toSet(cols []string) map[string]bool {
	s := make(map[string]bool, len(cols))
	for _, c := range cols {
		s[c] = true
	}
	return s
}

// Get returns the record with the given id, or (nil, nil) when absent.
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.selectCols, r.desc.Table)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get from %s: %w", r.desc.Table, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get from %s: %w", r.desc.Table, err)
	}
	return item, nil
}

// GetMulti returns a filtered, ordered page of records. Rows are ordered by
// created_at then id when no order_by is given so offset pagination is stable.
func (r *Repository[T]) GetMulti(ctx context.Context, q Query) ([]T, error) {
	where, args := buildWhere(q.Filters, r.filterable, 1)

	query := fmt.Sprintf(`SELECT %s FROM %s%s ORDER BY %s OFFSET $%d LIMIT $%d`,
		r.selectCols, r.desc.Table, where,
		buildOrder(q.OrderBy, q.OrderDesc, r.orderable),
		len(args)+1, len(args)+2,
	)
	args = append(args, q.Skip, q.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.desc.Table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.desc.Table, err)
	}
	return items, nil
}

// Create inserts a new record. Timestamps are assigned by the store so
// created_at == updated_at on the returned record.
func (r *Repository[T]) Create(ctx context.Context, e *T) (*T, error) {
	placeholders := make([]string, len(r.desc.Insert))
	for i := range r.desc.Insert {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) RETURNING %s`,
		r.desc.Table,
		strings.Join(r.desc.Insert, ", "),
		strings.Join(placeholders, ", "),
		r.selectCols,
	)

	rows, err := r.pool.Query(ctx, query, r.desc.InsertArgs(e)...)
	if err != nil {
		return nil, translateWrite(fmt.Errorf("create in %s: %w", r.desc.Table, err))
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if translated := translateWrite(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("create in %s: %w", r.desc.Table, err)
	}
	return created, nil
}

// Update applies only the provided fields. Fields not in the updatable
// whitelist are silently ignored. Returns (nil, nil) when the id is absent.
func (r *Repository[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if r.updatable[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return r.Get(ctx, id)
	}
	sort.Strings(keys)

	set := make([]string, 0, len(keys)+1)
	args := make([]interface{}, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, fields[k])
		set = append(set, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	set = append(set, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`,
		r.desc.Table, strings.Join(set, ", "), len(args), r.selectCols)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateWrite(fmt.Errorf("update %s: %w", r.desc.Table, err))
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if translated := translateWrite(err); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("update %s: %w", r.desc.Table, err)
	}
	return updated, nil
}

// Delete removes the record, returning whether one existed. Deletes are
// rejected with ErrReferenced while foreign keys still point at the record.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.desc.Table), id)
	if err != nil {
		if translated := translateDelete(err); translated != err {
			return false, translated
		}
		return false, fmt.Errorf("delete from %s: %w", r.desc.Table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of records matching the filters.
func (r *Repository[T]) Count(ctx context.Context, filters map[string]interface{}) (int, error) {
	where, args := buildWhere(filters, r.filterable, 1)

	var count int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, r.desc.Table, where), args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.desc.Table, err)
	}
	return count, nil
}

func (r *Repository[T]) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.desc.Table), id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists in %s: %w", r.desc.Table, err)
	}
	return exists, nil
}

// Search runs a case-insensitive substring match OR-combined across the
// searchable text columns.
func (r *Repository[T]) Search(ctx context.Context, term string, limit int) ([]T, error) {
	if len(r.desc.Searchable) == 0 {
		return nil, nil
	}

	clauses := make([]string, len(r.desc.Searchable))
	for i, col := range r.desc.Searchable {
		clauses[i] = fmt.Sprintf("%s ILIKE $1", col)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $2`,
		r.selectCols, r.desc.Table,
		strings.Join(clauses, " OR "),
		r.desc.Searchable[0],
	)

	rows, err := r.pool.Query(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.desc.Table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.desc.Table, err)
	}
	return items, nil
}

// buildWhere assembles a WHERE clause from the filter map. Scalar values
// become equality checks, slices become membership checks; keys outside the
// whitelist are dropped. Keys are sorted so generated SQL is deterministic.
func buildWhere(filters map[string]interface{}, allowed map[string]bool, argStart int) (string, []interface{}) {
	if len(filters) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		if allowed[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", nil
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		v := filters[k]
		if v == nil {
			clauses = append(clauses, k+" IS NULL")
			continue
		}
		args = append(args, v)
		if reflect.ValueOf(v).Kind() == reflect.Slice {
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", k, argStart+len(args)-1))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s = $%d", k, argStart+len(args)-1))
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// buildOrder validates order_by against the whitelist, falling back to the
// stable default.
func buildOrder(orderBy string, desc bool, allowed map[string]bool) string {
	if orderBy == "" || !allowed[orderBy] {
		return "created_at, id"
	}
	if desc {
		return orderBy + " DESC"
	}
	return orderBy + " ASC"
}

// escapeLike neutralizes LIKE metacharacters in user-supplied terms.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}
