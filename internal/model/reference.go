package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Brand struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Brand) TableName() string { return "brands" }

type Color struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	HEX       string `gorm:"column:hex;type:varchar(7)"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Color) TableName() string { return "colors" }

// Size has a numeric value within a sizing system (EU, US, UK...).
type Size struct {
	ID        int64           `gorm:"primaryKey"`
	Value     decimal.Decimal `gorm:"type:decimal(5,1);not null"`
	System    string          `gorm:"type:varchar(8);not null"`
	IsActive  bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Size) TableName() string { return "sizes" }

// Favourite marks a variant a user saved.
type Favourite struct {
	UserID    int64 `gorm:"primaryKey"`
	VariantID int64 `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (Favourite) TableName() string { return "favourites" }
