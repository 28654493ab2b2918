package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"storefront-backend/common/logger"
	"storefront-backend/models"
	"storefront-backend/repository"
)

// PlaceholderImage is used wherever a product's media blob yields no usable
// image.
const PlaceholderImage = "https://via.placeholder.com/100"

// ProductSummary is the list/search view of a product.
type ProductSummary struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Price              string   `json:"price"`
	MRP                string   `json:"mrp"`
	DiscountPercentage int      `json:"discount_percentage"`
	Rating             float64  `json:"rating"`
	ReviewCount        int      `json:"review_count"`
	CategorySlug       string   `json:"category_slug"`
	Image              string   `json:"image"`
	StatusTags         []string `json:"status_tags,omitempty"`
}

// ProductDetail is the full detail-page view. Attribute blobs that fail to
// parse are omitted rather than failing the request.
type ProductDetail struct {
	ProductSummary
	Info      string          `json:"info,omitempty"`
	SoldCount string          `json:"sold_count,omitempty"`
	Media     []models.Media  `json:"media,omitempty"`
	Colors    json.RawMessage `json:"colors,omitempty"`

	SwitchOptions     json.RawMessage `json:"switch_options,omitempty"`
	FeatureIconGrid   json.RawMessage `json:"feature_icon_grid,omitempty"`
	HeroVideo         json.RawMessage `json:"hero_video,omitempty"`
	FeatureStats      json.RawMessage `json:"feature_stats,omitempty"`
	FeatureBannerText json.RawMessage `json:"feature_banner_text,omitempty"`
	FeatureBannerImg  json.RawMessage `json:"feature_banner_image,omitempty"`
	FeatureSections   json.RawMessage `json:"feature_sections,omitempty"`
	GalleryBanners    json.RawMessage `json:"gallery_banners,omitempty"`
	Specs             json.RawMessage `json:"specs,omitempty"`
}

type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ListProducts returns product summaries, optionally filtered by category.
func (s *ProductService) ListProducts(ctx context.Context, categorySlug string) ([]ProductSummary, error) {
	var (
		products []models.Product
		err      error
	)
	if categorySlug != "" {
		products, err = s.products.FindByCategorySlug(ctx, categorySlug)
	} else {
		products, err = s.products.FindAll(ctx)
	}
	if err != nil {
		logger.Log.Error("failed to list products", zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to fetch products")
	}
	return summaries(products), nil
}

// SearchProducts matches product names case-insensitively.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]ProductSummary, error) {
	products, err := s.products.SearchByName(ctx, query)
	if err != nil {
		logger.Log.Error("failed to search products", zap.String("query", query), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to search products")
	}
	return summaries(products), nil
}

// GetProduct returns the full detail view for one product.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newServiceError(http.StatusNotFound, "product not found")
		}
		logger.Log.Error("failed to fetch product", zap.Int64("product_id", id), zap.Error(err))
		return nil, newServiceError(http.StatusInternalServerError, "failed to fetch product")
	}

	detail := &ProductDetail{
		ProductSummary: summary(product),
		Info:           product.Info,
		SoldCount:      product.SoldCount,
		Media:          ParseMedia(product.MediaJSON),
	}
	detail.Colors = rawBlob(product.ColorsJSON)
	detail.SwitchOptions = rawBlob(product.SwitchOptionsJSON)
	detail.FeatureIconGrid = rawBlob(product.FeatureIconGridJSON)
	detail.HeroVideo = rawBlob(product.HeroVideoJSON)
	detail.FeatureStats = rawBlob(product.FeatureStatsJSON)
	detail.FeatureBannerText = rawBlob(product.FeatureBannerTextJSON)
	detail.FeatureBannerImg = rawBlob(product.FeatureBannerImgJSON)
	detail.FeatureSections = rawBlob(product.FeatureSectionsJSON)
	detail.GalleryBanners = rawBlob(product.GalleryBannersJSON)
	detail.Specs = rawBlob(product.SpecsJSON)
	return detail, nil
}

func summaries(products []models.Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for i := range products {
		out = append(out, summary(&products[i]))
	}
	return out
}

func summary(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:                 p.ID,
		Name:               p.Name,
		Price:              models.FormatAmount(p.Price),
		MRP:                models.FormatAmount(p.MRP),
		DiscountPercentage: p.DiscountPercentage,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		CategorySlug:       p.CategorySlug,
		Image:              PrimaryImage(p.MediaJSON),
		StatusTags:         p.StatusTags,
	}
}

// ParseMedia decodes a product's media blob. Malformed blobs yield nil.
func ParseMedia(mediaJSON string) []models.Media {
	if mediaJSON == "" {
		return nil
	}
	var media []models.Media
	if err := json.Unmarshal([]byte(mediaJSON), &media); err != nil {
		return nil
	}
	return media
}

// PrimaryImage resolves the display image from a media blob. The first image
// entry wins; a placeholder covers empty or malformed blobs.
func PrimaryImage(mediaJSON string) string {
	for _, m := range ParseMedia(mediaJSON) {
		if m.Type == "image" && m.Src != "" {
			return m.Src
		}
	}
	return PlaceholderImage
}

// rawBlob passes a stored attribute blob through when it is valid JSON.
func rawBlob(blob string) json.RawMessage {
	if blob == "" || !json.Valid([]byte(blob)) {
		return nil
	}
	return json.RawMessage(blob)
}
