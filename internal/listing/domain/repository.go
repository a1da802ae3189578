package domain

import "context"

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByQuery(ctx context.Context, query ListingQuery) ([]*Listing, error)
}

// ImageRepository persists listing image metadata. FindByListingID returns
// images primary-first, then by insertion order.
type ImageRepository interface {
	Insert(ctx context.Context, image *ListingImage) error
	FindByListingID(ctx context.Context, listingID string) ([]ListingImage, error)
}
