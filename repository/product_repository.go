package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/models"
)

// ProductRepository defines read access to the product catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByCategorySlug(ctx context.Context, slug string) ([]models.Product, error)
	SearchByName(ctx context.Context, term string) ([]models.Product, error)
	CountByCategorySlug(ctx context.Context, slug string) (int64, error)
}

// MongoProductRepository implements ProductRepository on the catalog database.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProductRepository) FindByCategorySlug(ctx context.Context, slug string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"category_slug": slug})
}

// SearchByName matches product names case-insensitively. The term is quoted
// so user input is never interpreted as a regex.
func (r *MongoProductRepository) SearchByName(ctx context.Context, term string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return r.find(ctx, bson.M{"name": bson.M{"$regex": pattern}})
}

func (r *MongoProductRepository) CountByCategorySlug(ctx context.Context, slug string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"category_slug": slug})
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
