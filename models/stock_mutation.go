package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMutation is the idempotency ledger for stock deltas. One row per
// idempotency token, inserted in the same transaction as the conditional
// stock update. The unique index on Token is what turns a concurrent token
// reuse into a rollback instead of a double-applied delta.
type StockMutation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Token         string    `gorm:"not null;uniqueIndex:idx_stock_mutations_token" json:"token"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index:idx_stock_mutations_product_id" json:"product_id"`
	Delta         int       `gorm:"not null" json:"delta"`
	ResultStock   int       `gorm:"not null" json:"result_stock"`
	ResultVersion int64     `gorm:"not null" json:"result_version"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m *StockMutation) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
