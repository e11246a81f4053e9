package repositories

import (
	"context"

	"franchises-backend/models"
	"franchises-backend/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FranchiseRepository struct {
	crud[models.Franchise]
	limits PageLimits
}

func NewFranchiseRepository(db *gorm.DB, limits PageLimits) *FranchiseRepository {
	return &FranchiseRepository{
		crud:   crud[models.Franchise]{db: db, notFound: ErrFranchiseNotFound},
		limits: limits,
	}
}

func (r *FranchiseRepository) Create(ctx context.Context, f *models.Franchise) error {
	return r.create(ctx, f)
}

func (r *FranchiseRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Franchise, error) {
	return r.findByID(ctx, id)
}

// List pages through all franchises in id order.
func (r *FranchiseRepository) List(ctx context.Context, limit int, cursor string) (pagination.Page[models.Franchise], error) {
	spec := querySpec{sortColumn: "id"}
	return queryPage(ctx, r.db, spec, limit, cursor, r.limits, func(f *models.Franchise) pagination.Position {
		return pagination.Position{"id": f.ID.String()}
	})
}

func (r *FranchiseRepository) Rename(ctx context.Context, id uuid.UUID, newName string) (models.Franchise, error) {
	f, err := r.findByID(ctx, id)
	if err != nil {
		return models.Franchise{}, err
	}
	f.Name = newName
	if err := r.save(ctx, &f); err != nil {
		return models.Franchise{}, err
	}
	return f, nil
}

func (r *FranchiseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}
