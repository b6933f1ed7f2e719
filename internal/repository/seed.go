package repository

import (
	"context"
	"fmt"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedFixture upserts every entity of fx inside one transaction. Ids are
// taken from the fixture, so re-running the same file is idempotent.
func SeedFixture(ctx context.Context, db *gorm.DB, fx *Fixture) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})

		// Parents first so the self-reference is satisfied.
		for _, c := range orderedCategories(fx.Categories) {
			m := model.Category{ID: c.ID, ParentID: c.ParentID, Name: c.Name, Slug: c.Slug}
			if err := upsert.Create(&m).Error; err != nil {
				return fmt.Errorf("seed category %d: %w", c.ID, err)
			}
		}
		for _, b := range fx.Brands {
			m := model.Brand{ID: b.ID, Name: b.Name, IsActive: !b.Inactive}
			if err := upsert.Select("*").Create(&m).Error; err != nil {
				return fmt.Errorf("seed brand %d: %w", b.ID, err)
			}
		}
		for _, c := range fx.Colors {
			m := model.Color{ID: c.ID, Name: c.Name, HEX: c.Hex, IsActive: !c.Inactive}
			if err := upsert.Select("*").Create(&m).Error; err != nil {
				return fmt.Errorf("seed color %d: %w", c.ID, err)
			}
		}
		for _, s := range fx.Sizes {
			m := model.Size{ID: s.ID, Value: s.Value, System: s.System, IsActive: !s.Inactive}
			if err := upsert.Select("*").Create(&m).Error; err != nil {
				return fmt.Errorf("seed size %d: %w", s.ID, err)
			}
		}
		for _, p := range fx.Products {
			if err := seedProduct(upsert, p); err != nil {
				return err
			}
		}
		for _, f := range fx.Favourites {
			m := model.Favourite{UserID: f.UserID, VariantID: f.VariantID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
				return fmt.Errorf("seed favourite %d/%d: %w", f.UserID, f.VariantID, err)
			}
		}
		return resetSequences(tx)
	})
}

var seededTables = []string{"categories", "brands", "colors", "sizes", "products", "variants", "skus", "discounts", "images"}

// resetSequences moves every id sequence past the explicit ids just written.
func resetSequences(tx *gorm.DB) error {
	for _, t := range seededTables {
		sql := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`, t)
		if err := tx.Exec(sql).Error; err != nil {
			return fmt.Errorf("reset sequence %s: %w", t, err)
		}
	}
	return nil
}

func seedProduct(tx *gorm.DB, p FixtureProduct) error {
	prod := model.Product{
		ID:          p.ID,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Gender:      p.Gender,
		IsActive:    !p.Inactive,
		IsFeatured:  p.Featured,
		CreatedAt:   p.CreatedAt,
	}
	// Select("*") writes zero values too, otherwise false booleans fall back
	// to the column default.
	if err := tx.Select("*").Omit("Brand", "Category", "Variants").Create(&prod).Error; err != nil {
		return fmt.Errorf("seed product %d: %w", p.ID, err)
	}
	for _, v := range p.Variants {
		variant := model.Variant{ID: v.ID, ProductID: p.ID, ColorID: v.ColorID, Name: v.Name, Slug: v.Slug, CreatedAt: v.CreatedAt}
		if err := tx.Select("*").Omit("Color", "Skus", "Discounts", "Images").Create(&variant).Error; err != nil {
			return fmt.Errorf("seed variant %d: %w", v.ID, err)
		}
		for _, s := range v.Skus {
			sku := model.Sku{ID: s.ID, VariantID: v.ID, SizeID: s.SizeID, StockQty: s.Stock, BasePrice: s.Price, IsActive: !s.Inactive}
			if err := tx.Select("*").Omit("Size").Create(&sku).Error; err != nil {
				return fmt.Errorf("seed sku %d: %w", s.ID, err)
			}
		}
		for _, d := range v.Discounts {
			disc := model.Discount{ID: d.ID, VariantID: v.ID, Type: d.Type, Value: d.Value, IsActive: !d.Inactive}
			if err := tx.Select("*").Create(&disc).Error; err != nil {
				return fmt.Errorf("seed discount %d: %w", d.ID, err)
			}
		}
		for _, img := range v.Images {
			m := model.Image{ID: img.ID, VariantID: v.ID, URL: img.URL, CreatedAt: img.CreatedAt}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("seed image %d: %w", img.ID, err)
			}
		}
	}
	return nil
}

// orderedCategories returns categories so that every parent precedes its
// children. Validate has already rejected dangling parents.
func orderedCategories(cats []FixtureCategory) []FixtureCategory {
	placed := make(map[int64]bool, len(cats))
	out := make([]FixtureCategory, 0, len(cats))
	for len(out) < len(cats) {
		progress := false
		for _, c := range cats {
			if placed[c.ID] || (c.ParentID != nil && !placed[*c.ParentID]) {
				continue
			}
			placed[c.ID] = true
			out = append(out, c)
			progress = true
		}
		if !progress {
			// cycle: append the rest as is and let the database reject it
			for _, c := range cats {
				if !placed[c.ID] {
					out = append(out, c)
				}
			}
			break
		}
	}
	return out
}
