package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/dto"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/infra"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/metrics"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const categoriesCacheKey = "catalog:categories:v1"

// CatalogService is the storefront read API. Every method is read-only and
// fails atomically: either the whole response is built or an error wrapping
// catalog.ErrUnavailable (or catalog.ErrNotFound) is returned.
type CatalogService interface {
	ListProducts(ctx context.Context, fs catalog.FilterSet, userID *int64) (*dto.ProductListResponse, error)
	GetFilters(ctx context.Context, fs catalog.FilterSet) (*dto.FiltersResponse, error)
	Browse(ctx context.Context, fs catalog.FilterSet, userID *int64) (*dto.BrowseResponse, error)
	GetProductDetails(ctx context.Context, idOrSlug string, userID *int64) (*dto.ProductDetails, error)
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
	GetCategoryTree(ctx context.Context) ([]dto.CategoryNode, error)
}

// CatalogOptions tunes the service. Zero durations fall back to defaults.
type CatalogOptions struct {
	Settings         catalog.Settings
	StoreTimeout     time.Duration
	FacetTimeout     time.Duration
	CategoryCacheTTL time.Duration
}

type catalogService struct {
	repo    repository.CatalogRepository
	rdb     *redis.Client
	breaker *infra.CircuitBreaker
	opts    CatalogOptions
}

// NewCatalogService wires the catalog engine to a store. rdb may be nil, in
// which case the category list is read from the store on every request.
func NewCatalogService(repo repository.CatalogRepository, rdb *redis.Client, breaker *infra.CircuitBreaker, opts CatalogOptions) CatalogService {
	if breaker == nil {
		breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	if opts.Settings == (catalog.Settings{}) {
		opts.Settings = catalog.DefaultSettings()
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	if opts.FacetTimeout <= 0 {
		opts.FacetTimeout = 3 * time.Second
	}
	if opts.CategoryCacheTTL <= 0 {
		opts.CategoryCacheTTL = 10 * time.Minute
	}
	return &catalogService{repo: repo, rdb: rdb, breaker: breaker, opts: opts}
}

// ── Store access ──────────────────────────────────────────────────────────────

// call runs one store operation under its own timeout and the breaker, and
// folds any failure into catalog.ErrUnavailable.
func (s *catalogService) call(ctx context.Context, op string, timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := s.breaker.ExecuteContext(ctx, fn)
	metrics.ObserveStoreCall(op, err, time.Since(start))
	if err == nil {
		return nil
	}
	if !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("op", op).Msg("catalog store call failed")
	}
	return fmt.Errorf("%s: %w: %w", op, catalog.ErrUnavailable, err)
}

func (s *catalogService) scan(ctx context.Context, op string, timeout time.Duration, plan catalog.Plan) ([]catalog.VariantAggregate, error) {
	var rows []catalog.Row
	err := s.call(ctx, op, timeout, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.ScanRows(ctx, plan.Rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return catalog.Evaluate(rows, plan), nil
}

// hierarchy loads the category list, through Redis when available.
func (s *catalogService) hierarchy(ctx context.Context) (*catalog.Hierarchy, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, categoriesCacheKey).Bytes(); err == nil {
			var records []catalog.CategoryRecord
			if jsonErr := json.Unmarshal(cached, &records); jsonErr == nil {
				metrics.CacheHit()
				return catalog.NewHierarchy(records), nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("category cache read failed")
		}
		metrics.CacheMiss()
	}

	var records []catalog.CategoryRecord
	err := s.call(ctx, "categories", s.opts.StoreTimeout, func(ctx context.Context) error {
		var err error
		records, err = s.repo.ListCategories(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := s.rdb.Set(ctx, categoriesCacheKey, data, s.opts.CategoryCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("category cache write failed")
			}
		}
	}
	return catalog.NewHierarchy(records), nil
}

func (s *catalogService) favourites(ctx context.Context, userID *int64, variantIDs []int64) (map[int64]bool, error) {
	if userID == nil || len(variantIDs) == 0 {
		return map[int64]bool{}, nil
	}
	var favs map[int64]bool
	err := s.call(ctx, "favourites", s.opts.StoreTimeout, func(ctx context.Context) error {
		var err error
		favs, err = s.repo.FavouriteVariantIDs(ctx, *userID, variantIDs)
		return err
	})
	return favs, err
}

// ── Product list ──────────────────────────────────────────────────────────────

func (s *catalogService) ListProducts(ctx context.Context, fs catalog.FilterSet, userID *int64) (*dto.ProductListResponse, error) {
	h, err := s.hierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return s.listProducts(ctx, fs, h.ResolveSubtree(fs.CategorySlug), userID)
}

func (s *catalogService) listProducts(ctx context.Context, fs catalog.FilterSet, scope catalog.CategoryScope, userID *int64) (*dto.ProductListResponse, error) {
	plan := fs.Plan(scope, "")
	vs, err := s.scan(ctx, "list_products", s.opts.StoreTimeout, plan)
	if err != nil {
		return nil, err
	}
	products := catalog.Assemble(vs)
	catalog.SortProducts(products, fs.Sort)
	page := catalog.Paginate(products, fs.Page, fs.PerPage)

	var variantIDs []int64
	for _, p := range page.Items {
		for _, v := range p.Variants {
			variantIDs = append(variantIDs, v.ID)
		}
	}
	favs, err := s.favourites(ctx, userID, variantIDs)
	if err != nil {
		return nil, err
	}

	m := mapper{s.opts.Settings}
	resp := &dto.ProductListResponse{
		Data:       make([]dto.ProductSummary, 0, len(page.Items)),
		Pagination: m.pagination(page),
	}
	for _, p := range page.Items {
		resp.Data = append(resp.Data, m.productSummary(p, favs))
	}
	return resp, nil
}

// ── Filters ───────────────────────────────────────────────────────────────────

func (s *catalogService) GetFilters(ctx context.Context, fs catalog.FilterSet) (*dto.FiltersResponse, error) {
	h, err := s.hierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return s.filters(ctx, fs, h)
}

// filters builds the facet panel. Each facet re-runs the query with its own
// dimension left out, concurrently and under its own timeout.
func (s *catalogService) filters(ctx context.Context, fs catalog.FilterSet, h *catalog.Hierarchy) (*dto.FiltersResponse, error) {
	scope := h.ResolveSubtree(fs.CategorySlug)
	g, gctx := errgroup.WithContext(ctx)

	var brands, colors, sizes []catalog.Option
	list := func(op string, dst *[]catalog.Option, fn func(context.Context) ([]catalog.Option, error)) {
		g.Go(func() error {
			return s.call(gctx, op, s.opts.FacetTimeout, func(ctx context.Context) error {
				var err error
				*dst, err = fn(ctx)
				return err
			})
		})
	}
	list("list_brands", &brands, s.repo.ListBrands)
	list("list_colors", &colors, s.repo.ListColors)
	list("list_sizes", &sizes, s.repo.ListSizes)

	// nil means the facet was not queried: nothing in it can be disabled.
	avail := make(map[catalog.Dimension]*catalog.Availability)
	dims := []catalog.Dimension{catalog.DimBrand, catalog.DimColor, catalog.DimSize, catalog.DimGender, catalog.DimPrice}
	results := make([]*catalog.Availability, len(dims))
	for i, d := range dims {
		if d != catalog.DimPrice && !fs.ConstrainedBesides(d, scope) {
			continue
		}
		i, d := i, d
		g.Go(func() error {
			plan := fs.Plan(scope, d)
			vs, err := s.scan(gctx, "facet_"+string(d), s.opts.FacetTimeout, plan)
			if err != nil {
				return err
			}
			a := catalog.CollectAvailability(vs, plan.HasVariant(catalog.DimInStock))
			results[i] = &a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, d := range dims {
		avail[d] = results[i]
	}

	m := mapper{s.opts.Settings}
	resp := &dto.FiltersResponse{
		Categories: m.categoryTree(h.BuildTree(), fs.CategorySlug),
		Brands:     m.facetOptions(catalog.MarkOptions(brands, fs.BrandIDs, availableIDs(avail[catalog.DimBrand], catalog.DimBrand), avail[catalog.DimBrand] != nil)),
		Colors:     m.facetOptions(catalog.MarkOptions(colors, fs.ColorIDs, availableIDs(avail[catalog.DimColor], catalog.DimColor), avail[catalog.DimColor] != nil)),
		Sizes:      m.facetOptions(catalog.MarkOptions(sizes, fs.SizeIDs, availableIDs(avail[catalog.DimSize], catalog.DimSize), avail[catalog.DimSize] != nil)),
	}
	var genders map[catalog.Gender]struct{}
	if a := avail[catalog.DimGender]; a != nil {
		genders = a.Genders
	}
	resp.Genders = m.genderOptions(catalog.MarkGenders(fs.Genders, genders, avail[catalog.DimGender] != nil))

	var priceAvail catalog.Availability
	if a := avail[catalog.DimPrice]; a != nil {
		priceAvail = *a
	}
	resp.Price = m.priceFacet(catalog.BuildPriceFacet(fs, priceAvail))
	return resp, nil
}

func availableIDs(a *catalog.Availability, d catalog.Dimension) map[int64]struct{} {
	if a == nil {
		return nil
	}
	switch d {
	case catalog.DimBrand:
		return a.Brands
	case catalog.DimColor:
		return a.Colors
	case catalog.DimSize:
		return a.Sizes
	}
	return nil
}

// ── Browse ────────────────────────────────────────────────────────────────────

// Browse returns a product page and its filter panel from one category
// snapshot, running both halves concurrently.
func (s *catalogService) Browse(ctx context.Context, fs catalog.FilterSet, userID *int64) (*dto.BrowseResponse, error) {
	h, err := s.hierarchy(ctx)
	if err != nil {
		return nil, err
	}
	scope := h.ResolveSubtree(fs.CategorySlug)

	var (
		products *dto.ProductListResponse
		filters  *dto.FiltersResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.listProducts(gctx, fs, scope, userID)
		return err
	})
	g.Go(func() error {
		var err error
		filters, err = s.filters(gctx, fs, h)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.BrowseResponse{Products: *products, Filters: *filters}, nil
}

// ── Product details ───────────────────────────────────────────────────────────

func (s *catalogService) GetProductDetails(ctx context.Context, idOrSlug string, userID *int64) (*dto.ProductDetails, error) {
	var (
		productID, variantID int64
		notFound             bool
	)
	err := s.call(ctx, "find_variant", s.opts.StoreTimeout, func(ctx context.Context) error {
		var err error
		productID, variantID, err = s.repo.FindVariant(ctx, idOrSlug)
		if errors.Is(err, catalog.ErrNotFound) {
			notFound = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, catalog.ErrNotFound
	}

	var rows []catalog.Row
	err = s.call(ctx, "product_rows", s.opts.StoreTimeout, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.ScanRows(ctx, []catalog.RowPredicate{catalog.ProductIs{ID: productID}})
		return err
	})
	if err != nil {
		return nil, err
	}

	bundles := catalog.Reduce(rows)
	var (
		current  *catalog.VariantAggregate
		siblings []catalog.VariantAggregate
	)
	for _, b := range bundles {
		agg := catalog.Aggregate(b, catalog.SkuConstraint{OnlyActive: true})
		if b.ID == variantID {
			current = &agg
			continue
		}
		if len(agg.Matched) > 0 {
			siblings = append(siblings, agg)
		}
	}
	if current == nil {
		return nil, catalog.ErrNotFound
	}

	favs, err := s.favourites(ctx, userID, []int64{variantID})
	if err != nil {
		return nil, err
	}
	m := mapper{s.opts.Settings}
	return m.productDetails(*current, siblings, favs[variantID]), nil
}

// ── Search ────────────────────────────────────────────────────────────────────

func (s *catalogService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	resp := &dto.SearchResponse{Query: query, Data: []dto.SearchResult{}}
	tokens := catalog.Tokenize(query)
	if len(tokens) == 0 {
		return resp, nil
	}

	var docs []catalog.SearchDocument
	err := s.call(ctx, "search", s.opts.StoreTimeout, func(ctx context.Context) error {
		var err error
		docs, err = s.repo.SearchCandidates(ctx, tokens)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, hit := range catalog.Rank(query, docs) {
		resp.Data = append(resp.Data, dto.SearchResult{
			ProductID:   hit.ProductID,
			VariantID:   hit.VariantID,
			ProductName: hit.ProductName,
			VariantName: hit.VariantName,
			VariantSlug: hit.VariantSlug,
			BrandName:   hit.BrandName,
			Rank:        hit.Rank,
		})
	}
	return resp, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (s *catalogService) GetCategoryTree(ctx context.Context) ([]dto.CategoryNode, error) {
	h, err := s.hierarchy(ctx)
	if err != nil {
		return nil, err
	}
	return mapper{s.opts.Settings}.categoryTree(h.BuildTree(), ""), nil
}
