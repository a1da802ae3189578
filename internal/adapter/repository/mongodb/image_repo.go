package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akwaba/listing-service/internal/listing/domain"
)

type ImageRepository struct {
	collection *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{collection: db.Collection("listing_images")}
}

func (r *ImageRepository) Insert(ctx context.Context, image *domain.ListingImage) error {
	image.CreatedAt = time.Now()
	doc := &imageDocument{
		ListingID: image.ListingID,
		URL:       image.URL,
		IsPrimary: image.IsPrimary,
		CreatedAt: image.CreatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert listing image: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		image.ID = oid.Hex()
	}
	return nil
}

// FindByListingID returns primary-first, then insertion order, which is the
// display order of the gallery.
func (r *ImageRepository) FindByListingID(ctx context.Context, listingID string) ([]domain.ListingImage, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_primary", Value: -1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query listing images: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode listing images: %w", err)
	}

	images := make([]domain.ListingImage, 0, len(docs))
	for _, doc := range docs {
		images = append(images, toDomainImage(doc))
	}
	return images, nil
}
