package handler

import (
	"net/http"
	"strings"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/apierror"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/catalog"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/middleware"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public storefront catalog.
type CatalogHandler struct {
	svc      service.CatalogService
	settings catalog.Settings
}

func NewCatalogHandler(svc service.CatalogService, settings catalog.Settings) *CatalogHandler {
	return &CatalogHandler{svc: svc, settings: settings}
}

type searchQuery struct {
	Q string `form:"q" validate:"max=200"`
}

// filterSet reads the filter query string. Malformed values are normalized
// away, never rejected.
func (h *CatalogHandler) filterSet(c *gin.Context) (catalog.FilterSet, bool) {
	var raw catalog.RawFilter
	if !bindQuery(c, &raw) {
		return catalog.FilterSet{}, false
	}
	return catalog.Normalize(raw, h.settings), true
}

// ListProducts godoc
// @Summary List products matching the filters
// @Tags catalog
// @Produce json
// @Param category query string false "Category slug (includes descendants)"
// @Param brandIds query string false "Comma-separated brand ids"
// @Param colorIds query string false "Comma-separated color ids"
// @Param sizeIds query string false "Comma-separated size ids"
// @Param gender query string false "Comma-separated genders (men,women,kids)"
// @Param price query string false "min,max in display units"
// @Param sale query bool false "Only discounted variants"
// @Param featured query bool false "Only featured products"
// @Param inStock query bool false "Only variants with stock"
// @Param sort query string false "price | -price"
// @Param page query int false "1-based page"
// @Param perPage query int false "Page size"
// @Success 200 {object} dto.ProductListResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	fs, ok := h.filterSet(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListProducts(c.Request.Context(), fs, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetFilters godoc
// @Summary Facet panel for the current filters
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.FiltersResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/filters [get]
func (h *CatalogHandler) GetFilters(c *gin.Context) {
	fs, ok := h.filterSet(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetFilters(c.Request.Context(), fs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Browse godoc
// @Summary Product page and facet panel in one response
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.BrowseResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/catalog [get]
func (h *CatalogHandler) Browse(c *gin.Context) {
	fs, ok := h.filterSet(c)
	if !ok {
		return
	}
	resp, err := h.svc.Browse(c.Request.Context(), fs, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProductDetails godoc
// @Summary Product details for a variant id or slug
// @Tags catalog
// @Produce json
// @Param idOrSlug path string true "Variant id or slug"
// @Success 200 {object} dto.ProductDetails
// @Failure 404 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/products/{idOrSlug} [get]
func (h *CatalogHandler) GetProductDetails(c *gin.Context) {
	idOrSlug := strings.TrimSpace(c.Param("idOrSlug"))
	if err := validate.Var(idOrSlug, "required,max=160"); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product identifier"))
		return
	}
	resp, err := h.svc.GetProductDetails(c.Request.Context(), idOrSlug, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search godoc
// @Summary Full-text search over brand, product and variant names
// @Tags catalog
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} dto.SearchResponse
// @Failure 422 {object} apierror.ValidationError
// @Failure 503 {object} apierror.APIError
// @Router /v1/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	var q searchQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), q.Q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategoryTree godoc
// @Summary Category navigation tree
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryNode
// @Failure 503 {object} apierror.APIError
// @Router /v1/categories [get]
func (h *CatalogHandler) GetCategoryTree(c *gin.Context) {
	resp, err := h.svc.GetCategoryTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
