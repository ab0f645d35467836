// Package repotest provides a function-field fake of repository.Store for
// service and handler tests.
package repotest

import (
	"context"

	"github.com/jeffbulltech/cosmere-api/internal/repository"
)

// Store implements repository.Store[T]; unset functions return zero values.
type Store[T any] struct {
	GetFn      func(ctx context.Context, id string) (*T, error)
	GetMultiFn func(ctx context.Context, q repository.Query) ([]T, error)
	CreateFn   func(ctx context.Context, e *T) (*T, error)
	UpdateFn   func(ctx context.Context, id string, fields map[string]interface{}) (*T, error)
	DeleteFn   func(ctx context.Context, id string) (bool, error)
	CountFn    func(ctx context.Context, filters map[string]interface{}) (int, error)
	ExistsFn   func(ctx context.Context, id string) (bool, error)
	SearchFn   func(ctx context.Context, term string, limit int) ([]T, error)
}

var _ repository.Store[struct{}] = (*Store[struct{}])(nil)

func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	if s.GetFn == nil {
		return nil, nil
	}
	return s.GetFn(ctx, id)
}

func (s *Store[T]) GetMulti(ctx context.Context, q repository.Query) ([]T, error) {
	if s.GetMultiFn == nil {
		return nil, nil
	}
	return s.GetMultiFn(ctx, q)
}

func (s *Store[T]) Create(ctx context.Context, e *T) (*T, error) {
	if s.CreateFn == nil {
		return e, nil
	}
	return s.CreateFn(ctx, e)
}

func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	if s.UpdateFn == nil {
		return nil, nil
	}
	return s.UpdateFn(ctx, id, fields)
}

func (s *Store[T]) Delete(ctx context.Context, id string) (bool, error) {
	if s.DeleteFn == nil {
		return false, nil
	}
	return s.DeleteFn(ctx, id)
}

func (s *Store[T]) Count(ctx context.Context, filters map[string]interface{}) (int, error) {
	if s.CountFn == nil {
		return 0, nil
	}
	return s.CountFn(ctx, filters)
}

func (s *Store[T]) Exists(ctx context.Context, id string) (bool, error) {
	if s.ExistsFn == nil {
		return false, nil
	}
	return s.ExistsFn(ctx, id)
}

func (s *Store[T]) Search(ctx context.Context, term string, limit int) ([]T, error) {
	if s.SearchFn == nil {
		return nil, nil
	}
	return s.SearchFn(ctx, term, limit)
}
