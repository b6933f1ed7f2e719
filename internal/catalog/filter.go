package catalog

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// RawFilter is the filter request exactly as it arrives on the query string.
type RawFilter struct {
	Category string `form:"category"`
	BrandIDs string `form:"brandIds"`
	ColorIDs string `form:"colorIds"`
	SizeIDs  string `form:"sizeIds"`
	Gender   string `form:"gender"`
	Price    string `form:"price"`
	Sale     string `form:"sale"`
	Featured string `form:"featured"`
	InStock  string `form:"inStock"`
	Sort     string `form:"sort"`
	Page     string `form:"page"`
	PerPage  string `form:"perPage"`
}

// SortMode orders the product list.
type SortMode string

const (
	SortDefault   SortMode = ""
	SortPriceAsc  SortMode = "price"
	SortPriceDesc SortMode = "-price"
)

// PriceRange is an inclusive window in minor units.
type PriceRange struct {
	Min int64
	Max int64
}

// FilterSet is the typed, validated form of a RawFilter.
type FilterSet struct {
	CategorySlug string
	BrandIDs     []int64
	ColorIDs     []int64
	SizeIDs      []int64
	Genders      []Gender
	Price        *PriceRange
	OnSale       bool
	Featured     bool
	InStock      bool
	Sort         SortMode
	Page         int
	PerPage      int
}

// Normalize turns raw input into a FilterSet. It never fails: tokens of the
// wrong type are dropped, malformed values fall back to "no filter" and
// pagination falls back to the configured defaults.
func Normalize(raw RawFilter, s Settings) FilterSet {
	fs := FilterSet{
		CategorySlug: strings.TrimSpace(raw.Category),
		BrandIDs:     parseIDList(raw.BrandIDs),
		ColorIDs:     parseIDList(raw.ColorIDs),
		SizeIDs:      parseIDList(raw.SizeIDs),
		Genders:      parseGenders(raw.Gender),
		Price:        parsePriceRange(raw.Price, s),
		OnSale:       parseFlag(raw.Sale),
		Featured:     parseFlag(raw.Featured),
		InStock:      parseFlag(raw.InStock),
		Sort:         parseSort(raw.Sort),
		Page:         1,
		PerPage:      s.DefaultPageSize,
	}

	if page, err := strconv.Atoi(strings.TrimSpace(raw.Page)); err == nil && validate.Var(page, "min=1") == nil {
		fs.Page = page
	}
	maxPage := s.MaxPageSize
	if maxPage <= 0 {
		maxPage = DefaultSettings().MaxPageSize
	}
	if perPage, err := strconv.Atoi(strings.TrimSpace(raw.PerPage)); err == nil &&
		validate.Var(perPage, "min=1,max="+strconv.Itoa(maxPage)) == nil {
		fs.PerPage = perPage
	}
	if fs.PerPage <= 0 {
		fs.PerPage = DefaultSettings().DefaultPageSize
	}
	return fs
}

// parseIDList splits a comma-separated list, keeping positive integers once
// each in first-seen order.
func parseIDList(s string) []int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := make(map[int64]struct{})
	var ids []int64
	for _, tok := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func parseGenders(s string) []Gender {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := make(map[Gender]struct{})
	var out []Gender
	for _, tok := range strings.Split(s, ",") {
		g, ok := ParseGender(strings.ToLower(strings.TrimSpace(tok)))
		if !ok {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// parsePriceRange reads "min,max" in display units.
func parsePriceRange(s string, st Settings) *PriceRange {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil
	}
	lo, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	hi, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	if lo.IsNegative() || hi.IsNegative() || lo.GreaterThan(hi) {
		return nil
	}
	return &PriceRange{Min: st.ToMinor(lo), Max: st.ToMinor(hi)}
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func parseSort(s string) SortMode {
	s = strings.TrimSpace(s)
	if validate.Var(s, "oneof=price -price") != nil {
		return SortDefault
	}
	return SortMode(s)
}
