package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/akwaba/listing-service/internal/listing/domain"
	"github.com/akwaba/listing-service/internal/listing/filter"
	"github.com/akwaba/listing-service/internal/platform/logger"
	"github.com/akwaba/listing-service/internal/platform/metrics"
)

// EventPublisher is the messaging side, satisfied by the NATS adapter.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// DetailCache caches the assembled detail view (listing + images).
type DetailCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// Notifier sends the publish confirmation; satisfied by the mailer.
type Notifier interface {
	SendListingPublishedEmail(toEmail, listingTitle string) error
}

const (
	SubjectListingPublished = "listing.published"
	SubjectImagesUploaded   = "listing.images_uploaded"
)

type ListingUsecase struct {
	repo     domain.ListingRepository
	images   domain.ImageRepository
	cache    DetailCache
	events   EventPublisher
	notifier Notifier
	logger   *logger.Logger
}

func NewListingUsecase(repo domain.ListingRepository, images domain.ImageRepository, cache DetailCache, events EventPublisher, notifier Notifier, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:     repo,
		images:   images,
		cache:    cache,
		events:   events,
		notifier: notifier,
		logger:   log,
	}
}

type CreateListingInput struct {
	Title        string
	Description  string
	ListingKind  domain.ListingKind
	PropertyKind domain.PropertyKind
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
}

// CreateListing writes the listing record for the publish flow. This write is
// the only hard stop in publishing: image uploads happen afterwards and never
// roll it back.
func (uc *ListingUsecase) CreateListing(ctx context.Context, owner domain.Identity, in CreateListingInput) (*domain.Listing, error) {
	if owner.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidListingData)
	}
	if in.PriceXOF < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidListingData)
	}

	uc.logger.Info("ListingUsecase.CreateListing: creating listing",
		"owner_id", owner.UserID, "title", in.Title, "listing_kind", in.ListingKind)

	listing := &domain.Listing{
		OwnerID:         owner.UserID,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		ListingKind:     in.ListingKind,
		PropertyKind:    in.PropertyKind,
		PriceXOF:        in.PriceXOF,
		City:            in.City,
		Commune:         in.Commune,
		Bedrooms:        in.Bedrooms,
		Bathrooms:       in.Bathrooms,
		AreaM2:          in.AreaM2,
		Furnished:       in.Furnished,
		HasParking:      in.HasParking,
		HasAC:           in.HasAC,
		ContactPhone:    in.ContactPhone,
		ContactWhatsApp: in.ContactWhatsApp,
		ContactEmail:    in.ContactEmail,
		Status:          domain.StatusPublished,
	}
	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("ListingUsecase.CreateListing: repo create failed", "owner_id", owner.UserID, "error", err.Error())
		return nil, err
	}
	metrics.ListingsPublishedTotal.Inc()

	if uc.events != nil {
		if err := uc.events.Publish(ctx, SubjectListingPublished, map[string]string{
			"listing_id": listing.ID,
			"owner_id":   listing.OwnerID,
		}); err != nil {
			uc.logger.Warn("ListingUsecase.CreateListing: publish event failed", "listing_id", listing.ID, "error", err.Error())
		}
	}
	if uc.notifier != nil && owner.Email != "" {
		if err := uc.notifier.SendListingPublishedEmail(owner.Email, listing.Title); err != nil {
			uc.logger.Warn("ListingUsecase.CreateListing: confirmation email failed", "listing_id", listing.ID, "error", err.Error())
		}
	}
	return listing, nil
}

// GetListing loads the detail view: the published listing plus its images
// primary-first. Cached reads bypass both stores.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetListing(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status != domain.StatusPublished {
		return nil, domain.ErrListingNotFound
	}

	images, err := uc.images.FindByListingID(ctx, id)
	if err != nil {
		uc.logger.Warn("ListingUsecase.GetListing: loading images failed", "listing_id", id, "error", err.Error())
		images = nil
	}
	listing.Images = images

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Debug("ListingUsecase.GetListing: cache set failed", "listing_id", id, "error", err.Error())
		}
	}
	return listing, nil
}

// SearchListings compiles the applied criteria and runs exactly one query.
func (uc *ListingUsecase) SearchListings(ctx context.Context, criteria domain.FilterCriteria) ([]*domain.Listing, error) {
	query := filter.Compile(criteria)
	listings, err := uc.repo.FindByQuery(ctx, query)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		uc.logger.Error("ListingUsecase.SearchListings: query failed", "clauses", len(query.Clauses), "error", err.Error())
		return nil, err
	}
	metrics.SearchQueriesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return listings, nil
}
