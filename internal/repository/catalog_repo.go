package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogRepository is the read-only catalog store the engine queries.
// Services depend on this interface; the gorm implementation lives below and
// an in-memory snapshot implementation in snapshot_repo.go.
type CatalogRepository interface {
	// ScanRows returns the fanned-out product rows (active products only)
	// that satisfy every predicate.
	ScanRows(ctx context.Context, preds []catalog.RowPredicate) ([]catalog.Row, error)
	ListCategories(ctx context.Context) ([]catalog.CategoryRecord, error)
	ListBrands(ctx context.Context) ([]catalog.Option, error)
	ListColors(ctx context.Context) ([]catalog.Option, error)
	ListSizes(ctx context.Context) ([]catalog.Option, error)
	// FindVariant resolves a numeric variant id or a variant slug to its
	// product and variant ids. Returns catalog.ErrNotFound when nothing matches.
	FindVariant(ctx context.Context, idOrSlug string) (productID, variantID int64, err error)
	// SearchCandidates returns variants of active products whose brand,
	// product or variant name contains any of the tokens.
	SearchCandidates(ctx context.Context, tokens []string) ([]catalog.SearchDocument, error)
	FavouriteVariantIDs(ctx context.Context, userID int64, variantIDs []int64) (map[int64]bool, error)
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

// rowRecord mirrors the SELECT list of baseQuery.
type rowRecord struct {
	ProductID          int64
	ProductName        string
	ProductDescription string
	Gender             string
	IsFeatured         bool
	ProductCreatedAt   time.Time
	BrandID            int64
	BrandName          string
	CategoryID         int64
	CategoryName       string
	VariantID          int64
	VariantName        *string
	VariantSlug        *string
	VariantCreatedAt   time.Time
	ColorID            int64
	ColorName          string
	ColorHex           *string
	SkuID              int64
	SizeID             *int64
	SizeValue          decimal.NullDecimal
	SizeSystem         *string
	StockQty           int
	BasePrice          int64
	SkuActive          bool
	DiscountID         *int64
	DiscountType       *string
	DiscountValue      decimal.NullDecimal
	ImageID            *int64
	ImageURL           *string
	ImageCreatedAt     *time.Time
}

const rowSelect = `p.id AS product_id, p.name AS product_name, p.description AS product_description,
p.gender, p.is_featured, p.created_at AS product_created_at,
b.id AS brand_id, b.name AS brand_name, c.id AS category_id, c.name AS category_name,
v.id AS variant_id, v.name AS variant_name, v.slug AS variant_slug, v.created_at AS variant_created_at,
co.id AS color_id, co.name AS color_name, co.hex AS color_hex,
s.id AS sku_id, s.size_id, sz.value AS size_value, sz.system AS size_system,
s.stock_qty, s.base_price, s.is_active AS sku_active,
d.id AS discount_id, d.type AS discount_type, d.value AS discount_value,
i.id AS image_id, i.url AS image_url, i.created_at AS image_created_at`

func (r *catalogRepo) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Joins("JOIN brands b ON b.id = p.brand_id").
		Joins("JOIN categories c ON c.id = p.category_id").
		Joins("JOIN variants v ON v.product_id = p.id").
		Joins("JOIN colors co ON co.id = v.color_id").
		Joins("JOIN skus s ON s.variant_id = v.id").
		Where("p.is_active = ?", true)
}

// applyPredicates folds typed predicates into WHERE clauses. Only clauses for
// present filters are added.
func applyPredicates(q *gorm.DB, preds []catalog.RowPredicate) (*gorm.DB, error) {
	for _, pred := range preds {
		switch p := pred.(type) {
		case catalog.CategoryIn:
			q = q.Where("p.category_id IN ?", nonEmpty(p.IDs))
		case catalog.BrandIn:
			q = q.Where("p.brand_id IN ?", nonEmpty(p.IDs))
		case catalog.ColorIn:
			q = q.Where("v.color_id IN ?", nonEmpty(p.IDs))
		case catalog.SizeIn:
			q = q.Where("s.size_id IN ?", nonEmpty(p.IDs))
		case catalog.GenderIn:
			genders := make([]string, 0, len(p.Values))
			for _, g := range p.Values {
				genders = append(genders, string(g))
			}
			q = q.Where("p.gender IN ?", genders)
		case catalog.FeaturedOnly:
			q = q.Where("p.is_featured = ?", true)
		case catalog.ProductIs:
			q = q.Where("p.id = ?", p.ID)
		default:
			return nil, fmt.Errorf("unsupported predicate %T", pred)
		}
	}
	return q, nil
}

// nonEmpty keeps "IN ?" well formed; id 0 never exists.
func nonEmpty(ids []int64) []int64 {
	if len(ids) == 0 {
		return []int64{0}
	}
	return ids
}

func (r *catalogRepo) ScanRows(ctx context.Context, preds []catalog.RowPredicate) ([]catalog.Row, error) {
	q, err := applyPredicates(r.baseQuery(ctx), preds)
	if err != nil {
		return nil, err
	}
	var recs []rowRecord
	err = q.Select(rowSelect).
		Joins("LEFT JOIN sizes sz ON sz.id = s.size_id").
		Joins("LEFT JOIN discounts d ON d.variant_id = v.id AND d.is_active = true").
		Joins("LEFT JOIN images i ON i.variant_id = v.id").
		Order("p.created_at, p.id, v.id, s.id, i.created_at, i.id").
		Scan(&recs).Error
	if err != nil {
		return nil, err
	}

	rows := make([]catalog.Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, rec.toRow())
	}
	return rows, nil
}

func (rec rowRecord) toRow() catalog.Row {
	row := catalog.Row{
		ProductID:          rec.ProductID,
		ProductName:        rec.ProductName,
		ProductDescription: rec.ProductDescription,
		Gender:             catalog.Gender(rec.Gender),
		IsFeatured:         rec.IsFeatured,
		ProductCreatedAt:   rec.ProductCreatedAt,
		BrandID:            rec.BrandID,
		BrandName:          rec.BrandName,
		CategoryID:         rec.CategoryID,
		CategoryName:       rec.CategoryName,
		VariantID:          rec.VariantID,
		VariantName:        rec.VariantName,
		VariantSlug:        rec.VariantSlug,
		VariantCreatedAt:   rec.VariantCreatedAt,
		ColorID:            rec.ColorID,
		ColorName:          rec.ColorName,
		ColorHex:           deref(rec.ColorHex),
		SkuID:              rec.SkuID,
		SizeID:             rec.SizeID,
		SizeValue:          rec.SizeValue,
		SizeSystem:         deref(rec.SizeSystem),
		StockQty:           rec.StockQty,
		BasePrice:          rec.BasePrice,
		SkuActive:          rec.SkuActive,
	}
	if rec.DiscountID != nil && rec.DiscountValue.Valid {
		row.Discount = &catalog.Discount{
			ID:    *rec.DiscountID,
			Type:  catalog.DiscountType(deref(rec.DiscountType)),
			Value: rec.DiscountValue.Decimal,
		}
	}
	if rec.ImageID != nil {
		img := &catalog.Image{ID: *rec.ImageID, URL: deref(rec.ImageURL)}
		if rec.ImageCreatedAt != nil {
			img.CreatedAt = *rec.ImageCreatedAt
		}
		row.Image = img
	}
	return row
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]catalog.CategoryRecord, error) {
	var list []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.CategoryRecord, 0, len(list))
	for _, c := range list {
		out = append(out, catalog.CategoryRecord{ID: c.ID, ParentID: c.ParentID, Name: c.Name, Slug: c.Slug})
	}
	return out, nil
}

func (r *catalogRepo) ListBrands(ctx context.Context) ([]catalog.Option, error) {
	var list []model.Brand
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Option, 0, len(list))
	for _, b := range list {
		out = append(out, catalog.Option{ID: b.ID, Name: b.Name})
	}
	return out, nil
}

func (r *catalogRepo) ListColors(ctx context.Context) ([]catalog.Option, error) {
	var list []model.Color
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Option, 0, len(list))
	for _, c := range list {
		out = append(out, catalog.Option{ID: c.ID, Name: c.Name, Hex: c.HEX})
	}
	return out, nil
}

func (r *catalogRepo) ListSizes(ctx context.Context) ([]catalog.Option, error) {
	var list []model.Size
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("system asc, value asc").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Option, 0, len(list))
	for _, s := range list {
		out = append(out, SizeOption(s))
	}
	return out, nil
}

// SizeOption renders a size as a facet option, e.g. "42.5 EU".
func SizeOption(s model.Size) catalog.Option {
	return catalog.Option{ID: s.ID, Name: s.Value.String() + " " + s.System, Value: s.Value}
}

func (r *catalogRepo) FindVariant(ctx context.Context, idOrSlug string) (int64, int64, error) {
	var v model.Variant
	q := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = variants.product_id AND products.is_active = true")
	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		q = q.Where("variants.id = ?", id)
	} else {
		q = q.Where("variants.slug = ?", idOrSlug)
	}
	if err := q.First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, catalog.ErrNotFound
		}
		return 0, 0, err
	}
	return v.ProductID, v.ID, nil
}

type searchRecord struct {
	ProductID   int64
	VariantID   int64
	ProductName string
	VariantName *string
	VariantSlug *string
	BrandName   string
}

// SearchCandidates pre-filters variants whose folded brand, product or
// variant name contains any token. Tokens arrive folded by catalog.Tokenize.
func (r *catalogRepo) SearchCandidates(ctx context.Context, tokens []string) ([]catalog.SearchDocument, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	patterns := make([]string, 0, len(tokens))
	for _, t := range tokens {
		patterns = append(patterns, "%"+escapeLike(t)+"%")
	}
	arr := pq.Array(patterns)

	var recs []searchRecord
	err := r.db.WithContext(ctx).
		Table("variants AS v").
		Select("p.id AS product_id, v.id AS variant_id, p.name AS product_name, v.name AS variant_name, v.slug AS variant_slug, b.name AS brand_name").
		Joins("JOIN products p ON p.id = v.product_id").
		Joins("JOIN brands b ON b.id = p.brand_id").
		Where("p.is_active = ?", true).
		Where("catalog_fold(b.name) LIKE ANY (?) OR catalog_fold(p.name) LIKE ANY (?) OR catalog_fold(coalesce(v.name, '')) LIKE ANY (?)", arr, arr, arr).
		Order("p.id, v.id").
		Scan(&recs).Error
	if err != nil {
		return nil, err
	}

	docs := make([]catalog.SearchDocument, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, catalog.SearchDocument{
			ProductID:     rec.ProductID,
			VariantID:     rec.VariantID,
			ProductName:   rec.ProductName,
			VariantName:   deref(rec.VariantName),
			VariantSlug:   deref(rec.VariantSlug),
			BrandName:     rec.BrandName,
			ProductActive: true,
		})
	}
	return docs, nil
}

func (r *catalogRepo) FavouriteVariantIDs(ctx context.Context, userID int64, variantIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	if len(variantIDs) == 0 {
		return out, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.Favourite{}).
		Where("user_id = ? AND variant_id IN ?", userID, variantIDs).
		Pluck("variant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
