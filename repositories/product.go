package repositories

import (
	"context"
	"errors"
	"iter"
	"time"

	"franchises-backend/models"
	"franchises-backend/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository is the domain-facing persistence facade for products:
// creation with derived keys, keyset-paginated reads over the three index
// shapes, and the atomic idempotent stock mutation.
type ProductRepository struct {
	crud[models.Product]
	limits PageLimits
}

func NewProductRepository(db *gorm.DB, limits PageLimits) *ProductRepository {
	return &ProductRepository{
		crud:   crud[models.Product]{db: db, notFound: ErrProductNotFound},
		limits: limits,
	}
}

// Create persists a new product with freshly computed derived keys and
// version 0. Name and initial stock are pre-validated by the caller.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Version = 0
	applyDerivedKeys(p)
	return r.create(ctx, p)
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	return r.findByID(ctx, id)
}

// GetByIDAndBranch fetches a product only if it belongs to the branch.
func (r *ProductRepository) GetByIDAndBranch(ctx context.Context, id, branchID uuid.UUID) (models.Product, error) {
	p, err := r.findByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if p.BranchID != branchID {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// ListByBranch pages through a branch's products in id order.
func (r *ProductRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, limit int, cursor string) (pagination.Page[models.Product], error) {
	spec := querySpec{
		filters:    []queryFilter{{expr: "branch_id = ?", args: []any{branchID}}},
		sortColumn: "id",
	}
	return queryPage(ctx, r.db, spec, limit, cursor, r.limits, func(p *models.Product) pagination.Position {
		return pagination.Position{"branch_id": p.BranchID.String(), "id": p.ID.String()}
	})
}

// ListByFranchise pages through all products of a franchise in id order.
func (r *ProductRepository) ListByFranchise(ctx context.Context, franchiseID uuid.UUID, limit int, cursor string) (pagination.Page[models.Product], error) {
	spec := querySpec{
		filters:    []queryFilter{{expr: "franchise_id = ?", args: []any{franchiseID}}},
		sortColumn: "id",
	}
	return queryPage(ctx, r.db, spec, limit, cursor, r.limits, func(p *models.Product) pagination.Position {
		return pagination.Position{"franchise_id": p.FranchiseID.String(), "id": p.ID.String()}
	})
}

// SearchByName pages through a branch's products whose normalized name
// starts with the given prefix, ordered by normalized name then id. The
// begins-with match runs against the name sort key, so it is an index range
// read, not a scan.
func (r *ProductRepository) SearchByName(ctx context.Context, branchID uuid.UUID, prefix string, limit int, cursor string) (pagination.Page[models.Product], error) {
	normalized := NormalizeName(prefix)
	if normalized == "" {
		return pagination.Page[models.Product]{}, ErrPrefixRequired
	}
	spec := querySpec{
		filters: []queryFilter{
			{expr: "branch_id = ?", args: []any{branchID}},
			{expr: `name_sort_key LIKE ? ESCAPE '\'`, args: []any{escapeLike(NamePrefix(normalized)) + "%"}},
		},
		sortColumn: "name_sort_key",
	}
	return queryPage(ctx, r.db, spec, limit, cursor, r.limits, func(p *models.Product) pagination.Position {
		return pagination.Position{"branch_id": p.BranchID.String(), "name_sort_key": p.NameSortKey}
	})
}

// TopByStock returns the branch's highest-stocked product, ties broken by
// lowest id: the first row of the branch partition in rank-key order.
func (r *ProductRepository) TopByStock(ctx context.Context, branchID uuid.UUID) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("rank_sort_key ASC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNoProductsInBranch
	}
	if err != nil {
		return models.Product{}, wrapStorage(err)
	}
	return p, nil
}

// StreamByBranch lazily yields every product of a branch by re-paging
// internally, in the same order as explicit pagination.
func (r *ProductRepository) StreamByBranch(ctx context.Context, branchID uuid.UUID) iter.Seq2[models.Product, error] {
	return streamPages(func(limit int, cursor string) (pagination.Page[models.Product], error) {
		return r.ListByBranch(ctx, branchID, limit, cursor)
	})
}

// ApplyStockDelta applies a bounded, idempotent delta to a product's stock.
//
// The existence and non-negativity preconditions are enforced by the
// conditional UPDATE itself, not by application code racing a read: the
// statement only matches when the row exists and stock+delta >= 0, so
// concurrent callers serialize at the storage engine. The idempotency ledger
// row commits in the same transaction; replaying a token returns the current
// record without reapplying, and a token reused for a different request (or
// racing the original) is a Conflict.
func (r *ProductRepository) ApplyStockDelta(ctx context.Context, id uuid.UUID, delta int, token string) (models.Product, error) {
	if delta == 0 {
		// Read-only fast path.
		return r.findByID(ctx, id)
	}

	var out models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior models.StockMutation
		err := tx.Where("token = ?", token).First(&prior).Error
		switch {
		case err == nil:
			if prior.ProductID != id || prior.Delta != delta {
				return ErrConflict
			}
			// Replay of an applied request: return the current record,
			// apply nothing.
			if err := tx.First(&out, "id = ?", id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			} else if err != nil {
				return err
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock + ? >= 0", id, delta).
			Updates(map[string]any{
				"stock":      gorm.Expr("stock + ?", delta),
				"version":    gorm.Expr("version + 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing record from a delta that would drive
			// stock negative.
			var n int64
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrProductNotFound
			}
			return ErrInvalidDelta
		}

		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return err
		}

		// The rank key depends on the post-write stock, so it is refreshed
		// inside the same transaction as the conditional write.
		applyDerivedKeys(&out)
		if err := tx.Model(&models.Product{}).Where("id = ?", out.ID).
			Updates(map[string]any{
				"name_normalized": out.NameNormalized,
				"name_sort_key":   out.NameSortKey,
				"rank_sort_key":   out.RankSortKey,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&models.StockMutation{
			Token:         token,
			ProductID:     id,
			Delta:         delta,
			ResultStock:   out.Stock,
			ResultVersion: out.Version,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race for the token's unique index; the delta from
			// this transaction rolled back.
			return models.Product{}, ErrConflict
		}
		return models.Product{}, wrapStorage(err)
	}
	return out, nil
}

// Rename updates the product name and recomputes the name-derived keys in
// the same write. The rank key is untouched: stock did not change.
func (r *ProductRepository) Rename(ctx context.Context, id uuid.UUID, newName string) (models.Product, error) {
	p, err := r.findByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	p.Name = newName
	applyDerivedKeys(&p)
	if err := r.save(ctx, &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes the product. Derived keys are plain columns on the row, so
// no orphaned index state can survive the delete.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, id)
}

// DeleteByBranch removes the product only if it belongs to the branch.
func (r *ProductRepository) DeleteByBranch(ctx context.Context, branchID, id uuid.UUID) error {
	if _, err := r.GetByIDAndBranch(ctx, id, branchID); err != nil {
		return err
	}
	return r.deleteByID(ctx, id)
}
