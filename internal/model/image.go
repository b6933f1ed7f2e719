package model

import "time"

// Image of a variant; the earliest one is shown in list views.
type Image struct {
	ID        int64     `gorm:"primaryKey"`
	VariantID int64     `gorm:"index:idx_images_variant_created;not null"`
	URL       string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index:idx_images_variant_created"`
}

func (Image) TableName() string { return "images" }
