package services

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"storefront-backend/common/logger"
	"storefront-backend/repository"
)

// CategoryView is a category with its product count derived at read time.
type CategoryView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ImageURL     string `json:"image_url"`
	ProductCount int64  `json:"product_count"`
}

type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// ListCategories returns all categories with derived product counts. A failed
// count degrades to zero rather than failing the listing.
func (s *CategoryService) ListCategories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		logger.Log.Error("failed to list categories", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to fetch categories")
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		count, err := s.products.CountByCategorySlug(ctx, c.Slug)
		if err != nil {
			logger.Log.Warn("failed to count products for category",
				zap.String("slug", c.Slug), zap.Error(err))
			count = 0
		}
		views = append(views, CategoryView{
			ID:           c.ID,
			Name:         c.Name,
			Slug:         c.Slug,
			ImageURL:     c.ImageURL,
			ProductCount: count,
		})
	}
	return views, nil
}
