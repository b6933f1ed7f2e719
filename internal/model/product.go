package model

import "time"

// Product is the catalog entry shoppers browse. Its variants carry color,
// SKUs, discounts and images.
type Product struct {
	ID          int64     `gorm:"primaryKey"`
	BrandID     int64     `gorm:"index;not null"`
	CategoryID  int64     `gorm:"index;not null"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	Gender      string    `gorm:"type:varchar(8);index;not null"` // men | women | kids
	IsActive    bool      `gorm:"not null;default:true"`
	IsFeatured  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	Brand    *Brand    `gorm:"foreignKey:BrandID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
	Variants []Variant `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }
