package crud

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when no record has the requested id.
var ErrNotFound = errors.New("crud: record not found")

// Store is the persistence collaborator used by the generic views.
// Records are pointers to an entity, lists are pointers to slices.
type Store interface {
	List(ctx context.Context, list any) error
	Get(ctx context.Context, record any, id uint) error
	Create(ctx context.Context, record any) error
	Update(ctx context.Context, record any) error
	Delete(ctx context.Context, record any) error
}
