package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// crud holds the storage operations every record kind shares. Entity
// repositories embed it and map gorm's record-not-found onto their own
// sentinel; anything richer (derived keys, conditional writes) lives in the
// embedding repository.
type crud[T any] struct {
	db       *gorm.DB
	notFound error
}

func (c crud[T]) create(ctx context.Context, rec *T) error {
	return wrapStorage(c.db.WithContext(ctx).Create(rec).Error)
}

func (c crud[T]) save(ctx context.Context, rec *T) error {
	return wrapStorage(c.db.WithContext(ctx).Save(rec).Error)
}

func (c crud[T]) findByID(ctx context.Context, id uuid.UUID) (T, error) {
	var rec T
	err := c.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, c.notFound
	}
	return rec, wrapStorage(err)
}

func (c crud[T]) deleteByID(ctx context.Context, id uuid.UUID) error {
	res := c.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return wrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return c.notFound
	}
	return nil
}
