package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is the only record with derived state. NameNormalized, NameSortKey
// and RankSortKey are write-only columns recomputed on every write that
// touches Name or Stock; they exist so that prefix search and "top product by
// branch" are index reads instead of scans. Version backs the conditional
// stock write and is never exposed to clients.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FranchiseID uuid.UUID `gorm:"type:uuid;not null;index:idx_products_franchise_scan" json:"franchise_id"`
	BranchID    uuid.UUID `gorm:"type:uuid;not null;index:idx_products_branch_name,priority:1;index:idx_products_branch_rank,priority:1" json:"branch_id"`
	Name        string    `gorm:"not null" json:"name"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`

	NameNormalized string `gorm:"not null" json:"-"`
	NameSortKey    string `gorm:"not null;index:idx_products_branch_name,priority:2" json:"-"`
	RankSortKey    string `gorm:"not null;index:idx_products_branch_rank,priority:2" json:"-"`
	Version        int64  `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
