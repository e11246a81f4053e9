package repositories

import (
	"context"
	"iter"

	"franchises-backend/models"
	"franchises-backend/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository struct {
	crud[models.Branch]
	limits PageLimits
}

func NewBranchRepository(db *gorm.DB, limits PageLimits) *BranchRepository {
	return &BranchRepository{
		crud:   crud[models.Branch]{db: db, notFound: ErrBranchNotFound},
		limits: limits,
	}
}

func (r *BranchRepository) Create(ctx context.Context, b *models.Branch) error {
	return r.create(ctx, b)
}

func (r *BranchRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Branch, error) {
	return r.findByID(ctx, id)
}

// GetByIDAndFranchise fetches a branch only if it belongs to the franchise.
func (r *BranchRepository) GetByIDAndFranchise(ctx context.Context, id, franchiseID uuid.UUID) (models.Branch, error) {
	b, err := r.findByID(ctx, id)
	if err != nil {
		return models.Branch{}, err
	}
	if b.FranchiseID != franchiseID {
		return models.Branch{}, ErrBranchNotFound
	}
	return b, nil
}

// ListByFranchise pages through a franchise's branches in id order.
func (r *BranchRepository) ListByFranchise(ctx context.Context, franchiseID uuid.UUID, limit int, cursor string) (pagination.Page[models.Branch], error) {
	spec := querySpec{
		filters:    []queryFilter{{expr: "franchise_id = ?", args: []any{franchiseID}}},
		sortColumn: "id",
	}
	return queryPage(ctx, r.db, spec, limit, cursor, r.limits, func(b *models.Branch) pagination.Position {
		return pagination.Position{"franchise_id": b.FranchiseID.String(), "id": b.ID.String()}
	})
}

// StreamByFranchise lazily yields every branch of a franchise by re-paging
// internally. Used by the top-products fan-out.
func (r *BranchRepository) StreamByFranchise(ctx context.Context, franchiseID uuid.UUID) iter.Seq2[models.Branch, error] {
	return streamPages(func(limit int, cursor string) (pagination.Page[models.Branch], error) {
		return r.ListByFranchise(ctx, franchiseID, limit, cursor)
	})
}

func (r *BranchRepository) Rename(ctx context.Context, id uuid.UUID, newName string) (models.Branch, error) {
	b, err := r.findByID(ctx, id)
	if err != nil {
		return models.Branch{}, err
	}
	b.Name = newName
	if err := r.save(ctx, &b); err != nil {
		return models.Branch{}, err
	}
	return b, nil
}

func (r *BranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}
