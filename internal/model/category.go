package model

import "time"

// Category forms a tree through ParentID.
type Category struct {
	ID        int64  `gorm:"primaryKey"`
	ParentID  *int64 `gorm:"index"`
	Name      string `gorm:"not null"`
	Slug      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Parent *Category `gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string { return "categories" }
