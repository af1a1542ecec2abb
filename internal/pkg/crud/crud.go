// Package crud provides the generic repository contract shared by every
// persisted entity and a small helper that layers not-found handling on top
// of it.
package crud

import (
	"context"
	"fmt"
)

// Repository is the data-access contract for a single entity type.
//
// FindByID returns (nil, nil) when no entity has the given id. FindAll may
// return nil entries; callers that need a dense slice go through Ops.
// Save assigns a new id when the entity's id is the zero value and otherwise
// overwrites the stored record (upsert).
type Repository[T any, ID comparable] interface {
	FindAll(ctx context.Context) ([]*T, error)
	FindByID(ctx context.Context, id ID) (*T, error)
	ExistsByID(ctx context.Context, id ID) (bool, error)
	Save(ctx context.Context, entity T) (T, error)
	SaveAll(ctx context.Context, entities []T) ([]T, error)
	DeleteByID(ctx context.Context, id ID) error
}

// Ops composes over a Repository. Absent entities are reported with the
// notFound error it was built with, so callers can match them with errors.Is.
type Ops[T any, ID comparable] struct {
	repo     Repository[T, ID]
	notFound error
}

func NewOps[T any, ID comparable](repo Repository[T, ID], notFound error) *Ops[T, ID] {
	return &Ops[T, ID]{
		repo:     repo,
		notFound: notFound,
	}
}

// FindByID returns the entity or an error wrapping the configured notFound error.
func (o *Ops[T, ID]) FindByID(ctx context.Context, id ID) (T, error) {
	var zero T

	entity, err := o.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if entity == nil {
		return zero, fmt.Errorf("%w: id %v", o.notFound, id)
	}

	return *entity, nil
}

// FindAll returns every stored entity in storage order, skipping nil entries.
func (o *Ops[T, ID]) FindAll(ctx context.Context) ([]T, error) {
	entities, err := o.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		result = append(result, *entity)
	}

	return result, nil
}

func (o *Ops[T, ID]) ExistsByID(ctx context.Context, id ID) (bool, error) {
	return o.repo.ExistsByID(ctx, id)
}

func (o *Ops[T, ID]) Save(ctx context.Context, entity T) (T, error) {
	return o.repo.Save(ctx, entity)
}

func (o *Ops[T, ID]) SaveAll(ctx context.Context, entities []T) ([]T, error) {
	return o.repo.SaveAll(ctx, entities)
}

// DeleteIfExists deletes the entity when it exists and reports whether it did.
// A missing id leaves the store untouched.
func (o *Ops[T, ID]) DeleteIfExists(ctx context.Context, id ID) (bool, error) {
	exists, err := o.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := o.repo.DeleteByID(ctx, id); err != nil {
		return false, err
	}

	return true, nil
}
