package infra

import (
	"fmt"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx, creates or updates the
// catalog tables, then applies the SQL patches GORM cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the catalog schema. Used at startup and by the
// integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Brand{},
		&model.Color{},
		&model.Size{},
		&model.Product{},
		&model.Variant{},
		&model.Sku{},
		&model.Discount{},
		&model.Image{},
		&model.Favourite{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express
// (partial and expression indexes, the search fold function). Every statement is guarded by
// IF NOT EXISTS so re-running on a patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// at most one active discount per variant
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_discounts_one_active
		    ON discounts (variant_id) WHERE is_active`,
		// product listing only ever reads active products
		`CREATE INDEX IF NOT EXISTS idx_products_active_created
		    ON products (created_at, id) WHERE is_active`,
		// search compares folded text: accents stripped (ß becomes ss), then lower-cased
		`CREATE EXTENSION IF NOT EXISTS unaccent`,
		`CREATE OR REPLACE FUNCTION catalog_fold(t text) RETURNS text
		    LANGUAGE sql IMMUTABLE PARALLEL SAFE
		    AS $$ SELECT lower(public.unaccent('public.unaccent'::regdictionary, t)) $$`,
		`CREATE INDEX IF NOT EXISTS idx_brands_folded_name ON brands (catalog_fold(name))`,
		`CREATE INDEX IF NOT EXISTS idx_products_folded_name ON products (catalog_fold(name))`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_discounts_type') THEN
		    ALTER TABLE discounts ADD CONSTRAINT chk_discounts_type CHECK (type IN ('PERCENTAGE', 'FIXED'));
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_gender') THEN
		    ALTER TABLE products ADD CONSTRAINT chk_products_gender CHECK (gender IN ('men', 'women', 'kids'));
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
