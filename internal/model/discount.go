package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount on a variant. At most one per variant is active; a partial
// unique index (see infra.applySchemaPatches) enforces it.
type Discount struct {
	ID        int64           `gorm:"primaryKey"`
	VariantID int64           `gorm:"index;not null"`
	Type      string          `gorm:"type:varchar(16);not null"` // PERCENTAGE | FIXED
	Value     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Discount) TableName() string { return "discounts" }
