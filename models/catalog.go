package models

// Product is a catalog item stored in MongoDB. The *JSON fields are opaque
// blobs used only for detail-page rendering; they are parsed best-effort and
// never block a request when malformed.
type Product struct {
	ID                 int64    `bson:"_id" json:"id"`
	Name               string   `bson:"name" json:"name"`
	Price              int64    `bson:"price" json:"price"`
	MRP                int64    `bson:"mrp" json:"mrp"`
	DiscountPercentage int      `bson:"discount_percentage" json:"discount_percentage"`
	Rating             float64  `bson:"rating" json:"rating"`
	ReviewCount        int      `bson:"review_count" json:"review_count"`
	CategorySlug       string   `bson:"category_slug" json:"category_slug"`
	Info               string   `bson:"info,omitempty" json:"info,omitempty"`
	SoldCount          string   `bson:"sold_count,omitempty" json:"sold_count,omitempty"`
	StatusTags         []string `bson:"status_tags,omitempty" json:"status_tags,omitempty"`

	MediaJSON             string `bson:"media_json,omitempty" json:"-"`
	ColorsJSON            string `bson:"colors_json,omitempty" json:"-"`
	SwitchOptionsJSON     string `bson:"switch_options_json,omitempty" json:"-"`
	FeatureIconGridJSON   string `bson:"feature_icon_grid_json,omitempty" json:"-"`
	HeroVideoJSON         string `bson:"hero_video_json,omitempty" json:"-"`
	FeatureStatsJSON      string `bson:"feature_stats_json,omitempty" json:"-"`
	FeatureBannerTextJSON string `bson:"feature_banner_text_json,omitempty" json:"-"`
	FeatureBannerImgJSON  string `bson:"feature_banner_image_json,omitempty" json:"-"`
	FeatureSectionsJSON   string `bson:"feature_sections_json,omitempty" json:"-"`
	GalleryBannersJSON    string `bson:"gallery_banners_json,omitempty" json:"-"`
	SpecsJSON             string `bson:"specs_json,omitempty" json:"-"`
}

// Category groups products by slug. The product count is derived at read time.
type Category struct {
	ID       int64  `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Slug     string `bson:"slug" json:"slug"`
	ImageURL string `bson:"image_url" json:"image_url"`
}

// Media is one entry of a product's media blob.
type Media struct {
	Type string `json:"type"`
	Src  string `json:"src"`
}
