package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/services"
)

// CategoryProvider is the service surface CategoryController depends on.
type CategoryProvider interface {
	ListCategories(ctx context.Context) ([]services.CategoryView, error)
}

type CategoryController struct {
	categories CategoryProvider
}

func NewCategoryController(categories CategoryProvider) *CategoryController {
	return &CategoryController{categories: categories}
}

// List returns all categories with derived product counts.
func (cc *CategoryController) List(c *gin.Context) {
	categories, err := cc.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
