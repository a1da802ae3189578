package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akwaba/listing-service/internal/listing/domain"
)

type listingDocument struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	OwnerID      string              `bson:"owner_id"`
	Title        string              `bson:"title"`
	Description  string              `bson:"description,omitempty"`
	ListingKind  domain.ListingKind  `bson:"listing_kind"`
	PropertyKind domain.PropertyKind `bson:"property_kind"`
	PriceXOF     int64               `bson:"price_xof"`
	City         string              `bson:"city,omitempty"`
	Commune      string              `bson:"commune,omitempty"`
	Bedrooms     int                 `bson:"bedrooms,omitempty"`
	Bathrooms    int                 `bson:"bathrooms,omitempty"`
	AreaM2       int                 `bson:"area_m2,omitempty"`
	Furnished    bool                `bson:"furnished"`
	HasParking   bool                `bson:"has_parking"`
	HasAC        bool                `bson:"has_ac"`

	ContactPhone    string `bson:"contact_phone,omitempty"`
	ContactWhatsApp string `bson:"contact_whatsapp,omitempty"`
	ContactEmail    string `bson:"contact_email,omitempty"`

	Status    domain.ListingStatus `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

type imageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID string             `bson:"listing_id"`
	URL       string             `bson:"url"`
	IsPrimary bool               `bson:"is_primary"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	docID := primitive.NilObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid listing id %q: %w", l.ID, err)
		}
	}
	return &listingDocument{
		ID:              docID,
		OwnerID:         l.OwnerID,
		Title:           l.Title,
		Description:     l.Description,
		ListingKind:     l.ListingKind,
		PropertyKind:    l.PropertyKind,
		PriceXOF:        l.PriceXOF,
		City:            l.City,
		Commune:         l.Commune,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		AreaM2:          l.AreaM2,
		Furnished:       l.Furnished,
		HasParking:      l.HasParking,
		HasAC:           l.HasAC,
		ContactPhone:    l.ContactPhone,
		ContactWhatsApp: l.ContactWhatsApp,
		ContactEmail:    l.ContactEmail,
		Status:          l.Status,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	return &domain.Listing{
		ID:              d.ID.Hex(),
		OwnerID:         d.OwnerID,
		Title:           d.Title,
		Description:     d.Description,
		ListingKind:     d.ListingKind,
		PropertyKind:    d.PropertyKind,
		PriceXOF:        d.PriceXOF,
		City:            d.City,
		Commune:         d.Commune,
		Bedrooms:        d.Bedrooms,
		Bathrooms:       d.Bathrooms,
		AreaM2:          d.AreaM2,
		Furnished:       d.Furnished,
		HasParking:      d.HasParking,
		HasAC:           d.HasAC,
		ContactPhone:    d.ContactPhone,
		ContactWhatsApp: d.ContactWhatsApp,
		ContactEmail:    d.ContactEmail,
		Status:          d.Status,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func toDomainImage(d *imageDocument) domain.ListingImage {
	return domain.ListingImage{
		ID:        d.ID.Hex(),
		ListingID: d.ListingID,
		URL:       d.URL,
		IsPrimary: d.IsPrimary,
		CreatedAt: d.CreatedAt,
	}
}
