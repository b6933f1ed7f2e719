package model

import "time"

// Variant is a color of a product. Discounts and images attach here.
type Variant struct {
	ID        int64   `gorm:"primaryKey"`
	ProductID int64   `gorm:"index;not null"`
	ColorID   int64   `gorm:"index;not null"`
	Name      *string
	Slug      *string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Color     *Color     `gorm:"foreignKey:ColorID"`
	Skus      []Sku      `gorm:"foreignKey:VariantID"`
	Discounts []Discount `gorm:"foreignKey:VariantID"`
	Images    []Image    `gorm:"foreignKey:VariantID"`
}

func (Variant) TableName() string { return "variants" }

// Sku is a sellable size of a variant. BasePrice is in minor units.
type Sku struct {
	ID        int64  `gorm:"primaryKey"`
	VariantID int64  `gorm:"uniqueIndex:idx_sku_variant_size;not null"`
	SizeID    *int64 `gorm:"uniqueIndex:idx_sku_variant_size"`
	StockQty  int    `gorm:"not null;default:0;check:stock_qty >= 0"`
	BasePrice int64  `gorm:"not null;check:base_price >= 0"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Size *Size `gorm:"foreignKey:SizeID"`
}

func (Sku) TableName() string { return "skus" }
