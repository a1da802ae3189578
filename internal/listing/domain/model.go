package domain

import "time"

type ListingStatus string

const (
	StatusPublished ListingStatus = "published"
	StatusDraft     ListingStatus = "draft"
	StatusArchived  ListingStatus = "archived"
)

// ListingKind is the offer type. ListingKindAny is only meaningful inside
// FilterCriteria and never stored on a listing.
type ListingKind string

const (
	ListingKindAny    ListingKind = "any"
	ListingKindSale   ListingKind = "sale"
	ListingKindRental ListingKind = "rental"
)

type PropertyKind string

const (
	PropertyKindAny       PropertyKind = "any"
	PropertyKindApartment PropertyKind = "apartment"
	PropertyKindHouse     PropertyKind = "house"
	PropertyKindVilla     PropertyKind = "villa"
	PropertyKindStudio    PropertyKind = "studio"
)

type Listing struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	ListingKind  ListingKind
	PropertyKind PropertyKind
	PriceXOF     int64
	City         string
	Commune      string
	Bedrooms     int
	Bathrooms    int
	AreaM2       int
	Furnished    bool
	HasParking   bool
	HasAC        bool

	ContactPhone    string
	ContactWhatsApp string
	ContactEmail    string

	Status    ListingStatus
	Images    []ListingImage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryImage returns the flagged primary, falling back to the first image.
// A listing can legitimately carry images without a primary flag when the
// designated primary failed to upload; the fallback is display-only and is
// never written back.
func (l *Listing) PrimaryImage() (ListingImage, bool) {
	for _, img := range l.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(l.Images) > 0 {
		return l.Images[0], true
	}
	return ListingImage{}, false
}

type ListingImage struct {
	ID        string
	ListingID string
	URL       string
	IsPrimary bool
	CreatedAt time.Time
}

// Identity is the authenticated caller, resolved once per request by the auth
// middleware and passed explicitly to anything that needs it.
type Identity struct {
	UserID string
	Email  string
}
