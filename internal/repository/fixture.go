package repository

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fixture is a catalog snapshot in YAML form. It backs the in-memory store
// and is what cmd/seedcatalog writes into Postgres.
type Fixture struct {
	Categories []FixtureCategory  `yaml:"categories"`
	Brands     []FixtureBrand     `yaml:"brands"`
	Colors     []FixtureColor     `yaml:"colors"`
	Sizes      []FixtureSize      `yaml:"sizes"`
	Products   []FixtureProduct   `yaml:"products"`
	Favourites []FixtureFavourite `yaml:"favourites"`
}

type FixtureCategory struct {
	ID       int64  `yaml:"id"`
	ParentID *int64 `yaml:"parentId"`
	Name     string `yaml:"name"`
	Slug     string `yaml:"slug"`
}

type FixtureBrand struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Inactive bool   `yaml:"inactive"`
}

type FixtureColor struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Hex      string `yaml:"hex"`
	Inactive bool   `yaml:"inactive"`
}

type FixtureSize struct {
	ID       int64           `yaml:"id"`
	Value    decimal.Decimal `yaml:"value"`
	System   string          `yaml:"system"`
	Inactive bool            `yaml:"inactive"`
}

type FixtureProduct struct {
	ID          int64            `yaml:"id"`
	BrandID     int64            `yaml:"brandId"`
	CategoryID  int64            `yaml:"categoryId"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Gender      string           `yaml:"gender"`
	Inactive    bool             `yaml:"inactive"`
	Featured    bool             `yaml:"featured"`
	CreatedAt   time.Time        `yaml:"createdAt"`
	Variants    []FixtureVariant `yaml:"variants"`
}

type FixtureVariant struct {
	ID        int64             `yaml:"id"`
	ColorID   int64             `yaml:"colorId"`
	Name      *string           `yaml:"name"`
	Slug      *string           `yaml:"slug"`
	CreatedAt time.Time         `yaml:"createdAt"`
	Skus      []FixtureSku      `yaml:"skus"`
	Discounts []FixtureDiscount `yaml:"discounts"`
	Images    []FixtureImage    `yaml:"images"`
}

type FixtureSku struct {
	ID       int64  `yaml:"id"`
	SizeID   *int64 `yaml:"sizeId"`
	Stock    int    `yaml:"stock"`
	Price    int64  `yaml:"price"` // minor units
	Inactive bool   `yaml:"inactive"`
}

type FixtureDiscount struct {
	ID       int64           `yaml:"id"`
	Type     string          `yaml:"type"`
	Value    decimal.Decimal `yaml:"value"`
	Inactive bool            `yaml:"inactive"`
}

type FixtureImage struct {
	ID        int64     `yaml:"id"`
	URL       string    `yaml:"url"`
	CreatedAt time.Time `yaml:"createdAt"`
}

type FixtureFavourite struct {
	UserID    int64 `yaml:"userId"`
	VariantID int64 `yaml:"variantId"`
}

// LoadFixture reads and parses a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture and checks its references.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate reports dangling references and duplicate ids.
func (f *Fixture) Validate() error {
	cats := make(map[int64]bool)
	for _, c := range f.Categories {
		if cats[c.ID] {
			return fmt.Errorf("fixture: duplicate category %d", c.ID)
		}
		cats[c.ID] = true
	}
	for _, c := range f.Categories {
		if c.ParentID != nil && !cats[*c.ParentID] {
			return fmt.Errorf("fixture: category %d has unknown parent %d", c.ID, *c.ParentID)
		}
	}
	brands := idSet(f.Brands, func(b FixtureBrand) int64 { return b.ID })
	colors := idSet(f.Colors, func(c FixtureColor) int64 { return c.ID })
	sizes := idSet(f.Sizes, func(s FixtureSize) int64 { return s.ID })

	variants := make(map[int64]bool)
	for _, p := range f.Products {
		if !brands[p.BrandID] {
			return fmt.Errorf("fixture: product %d has unknown brand %d", p.ID, p.BrandID)
		}
		if !cats[p.CategoryID] {
			return fmt.Errorf("fixture: product %d has unknown category %d", p.ID, p.CategoryID)
		}
		for _, v := range p.Variants {
			if variants[v.ID] {
				return fmt.Errorf("fixture: duplicate variant %d", v.ID)
			}
			variants[v.ID] = true
			if !colors[v.ColorID] {
				return fmt.Errorf("fixture: variant %d has unknown color %d", v.ID, v.ColorID)
			}
			active := 0
			for _, d := range v.Discounts {
				if !d.Inactive {
					active++
				}
			}
			if active > 1 {
				return fmt.Errorf("fixture: variant %d has %d active discounts", v.ID, active)
			}
			for _, s := range v.Skus {
				if s.SizeID != nil && !sizes[*s.SizeID] {
					return fmt.Errorf("fixture: sku %d has unknown size %d", s.ID, *s.SizeID)
				}
				if s.Price < 0 || s.Stock < 0 {
					return fmt.Errorf("fixture: sku %d has negative price or stock", s.ID)
				}
			}
		}
	}
	for _, fav := range f.Favourites {
		if !variants[fav.VariantID] {
			return fmt.Errorf("fixture: favourite of unknown variant %d", fav.VariantID)
		}
	}
	return nil
}

func idSet[T any](items []T, id func(T) int64) map[int64]bool {
	out := make(map[int64]bool, len(items))
	for _, it := range items {
		out[id(it)] = true
	}
	return out
}
