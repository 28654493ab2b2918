package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/services"
)

// ProductProvider is the service surface ProductController depends on.
type ProductProvider interface {
	ListProducts(ctx context.Context, categorySlug string) ([]services.ProductSummary, error)
	SearchProducts(ctx context.Context, query string) ([]services.ProductSummary, error)
	GetProduct(ctx context.Context, id int64) (*services.ProductDetail, error)
}

type ProductController struct {
	products ProductProvider
	cache    *CacheManager
}

// NewProductController builds a product controller. The cache may be nil, in
// which case every request reads the catalog directly.
func NewProductController(products ProductProvider, cache *CacheManager) *ProductController {
	return &ProductController{products: products, cache: cache}
}

// List returns product summaries, optionally filtered with ?category=<slug>.
func (pc *ProductController) List(c *gin.Context) {
	category := c.Query("category")

	if pc.cache != nil {
		var cached []services.ProductSummary
		if pc.cache.GetList(c.Request.Context(), category, "", &cached) {
			c.JSON(http.StatusOK, gin.H{"products": cached})
			return
		}
	}

	products, err := pc.products.ListProducts(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.SetListAsync(category, "", products)
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Search matches product names case-insensitively via ?query=.
func (pc *ProductController) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, apperrors.New(http.StatusBadRequest, "query parameter is required", nil))
		return
	}

	products, err := pc.products.SearchProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns the full detail view of one product.
func (pc *ProductController) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid product id", err))
		return
	}

	if pc.cache != nil {
		var cached services.ProductDetail
		if pc.cache.GetProduct(c.Request.Context(), id, &cached) {
			c.JSON(http.StatusOK, gin.H{"product": cached})
			return
		}
	}

	product, err := pc.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.SetProductAsync(id, product)
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}
