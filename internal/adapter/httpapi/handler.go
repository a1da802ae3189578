// Package httpapi exposes the browse and publish surface as a JSON/multipart
// HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akwaba/listing-service/internal/adapter/httpapi/middleware"
	"github.com/akwaba/listing-service/internal/listing/domain"
	"github.com/akwaba/listing-service/internal/listing/media"
	"github.com/akwaba/listing-service/internal/listing/usecase"
	"github.com/akwaba/listing-service/internal/platform/logger"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// files spill to disk.
const maxUploadMemory = 32 << 20

type Handler struct {
	listings *usecase.ListingUsecase
	uploads  *usecase.MediaUsecase
	previews media.PreviewAllocator
	logger   *logger.Logger
}

func NewHandler(listings *usecase.ListingUsecase, uploads *usecase.MediaUsecase, previews media.PreviewAllocator, log *logger.Logger) *Handler {
	return &Handler{listings: listings, uploads: uploads, previews: previews, logger: log}
}

type imageResponse struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

type listingCardResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	PriceXOF     int64          `json:"price_xof"`
	ListingKind  string         `json:"listing_kind"`
	PropertyKind string         `json:"property_kind"`
	City         string         `json:"city,omitempty"`
	Commune      string         `json:"commune,omitempty"`
	Bedrooms     int            `json:"bedrooms,omitempty"`
	Bathrooms    int            `json:"bathrooms,omitempty"`
	Furnished    bool           `json:"furnished"`
	HasParking   bool           `json:"has_parking"`
	HasAC        bool           `json:"has_ac"`
	CreatedAt    time.Time      `json:"created_at"`
	PrimaryImage *imageResponse `json:"primary_image,omitempty"`
}

type listingDetailResponse struct {
	listingCardResponse
	Description     string          `json:"description,omitempty"`
	AreaM2          int             `json:"area_m2,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	ContactWhatsApp string          `json:"contact_whatsapp,omitempty"`
	ContactEmail    string          `json:"contact_email,omitempty"`
	Images          []imageResponse `json:"images"`
}

type searchResponse struct {
	Listings []listingCardResponse `json:"listings"`
}

type uploadOutcomeResponse struct {
	Index     int    `json:"index"`
	Filename  string `json:"filename"`
	URL       string `json:"url,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	Uploaded  bool   `json:"uploaded"`
}

type publishResponse struct {
	Listing listingDetailResponse   `json:"listing"`
	Images  []uploadOutcomeResponse `json:"images"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleSearchListings runs one query for the applied filter carried in the
// URL query string. On failure the error is surfaced and the result list is
// empty — never the previous page's results.
func (h *Handler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	criteria := criteriaFromQuery(r)

	listings, err := h.listings.SearchListings(r.Context(), criteria)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "searching listings failed, please retry"})
		return
	}

	resp := searchResponse{Listings: make([]listingCardResponse, 0, len(listings))}
	for _, l := range listings {
		resp.Listings = append(resp.Listings, toCardResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.listings.GetListing(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "listing not found"})
			return
		}
		h.logger.Error("Handler.HandleGetListing: lookup failed", "listing_id", id, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "loading listing failed, please retry"})
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(listing))
}

// HandlePublishListing creates the listing record, then runs the staged
// images through the upload pipeline. The record write is the only fatal
// step; per-image failures are reported in the response but never fail the
// publish.
func (h *Handler) HandlePublishListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := createInputFromForm(r)
	listing, err := h.listings.CreateListing(r.Context(), identity, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidListingData):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrUnauthenticated):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		default:
			h.logger.Error("Handler.HandlePublishListing: create failed", "owner_id", identity.UserID, "error", err.Error())
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "creating the listing failed, please retry"})
		}
		return
	}

	staged := media.NewStagingArea(h.previews)
	defer staged.Clear()

	files, err := readUploadedFiles(r.MultipartForm.File["photos"])
	if err != nil {
		h.logger.Warn("Handler.HandlePublishListing: reading uploads failed", "listing_id", listing.ID, "error", err.Error())
	}
	staged.Select(files)
	if idx, err := strconv.Atoi(r.FormValue("primary_index")); err == nil {
		staged.SetPrimary(idx)
	}

	outcomes := h.uploads.UploadImages(r.Context(), listing.ID, staged)

	resp := publishResponse{
		Listing: toDetailResponse(listing),
		Images:  make([]uploadOutcomeResponse, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		resp.Images = append(resp.Images, uploadOutcomeResponse{
			Index:     o.Index,
			Filename:  o.Filename,
			URL:       o.URL,
			IsPrimary: o.IsPrimary,
			Uploaded:  o.Err == nil,
		})
		if o.Err == nil {
			resp.Listing.Images = append(resp.Listing.Images, imageResponse{URL: o.URL, IsPrimary: o.IsPrimary})
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func criteriaFromQuery(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()
	criteria := domain.DefaultFilter()
	if v := q.Get("listing_kind"); v != "" {
		criteria.ListingKind = domain.ListingKind(v)
	}
	if v := q.Get("property_kind"); v != "" {
		criteria.PropertyKind = domain.PropertyKind(v)
	}
	criteria.Commune = q.Get("commune")
	criteria.PriceMin = q.Get("price_min")
	criteria.PriceMax = q.Get("price_max")
	criteria.BedroomsMin = q.Get("bedrooms_min")
	criteria.BathroomsMin = q.Get("bathrooms_min")
	criteria.FurnishedOnly = q.Get("furnished_only") == "true"
	criteria.ParkingOnly = q.Get("parking_only") == "true"
	criteria.ACOnly = q.Get("ac_only") == "true"
	return criteria
}

func createInputFromForm(r *http.Request) usecase.CreateListingInput {
	price, _ := strconv.ParseInt(r.FormValue("price_xof"), 10, 64)
	bedrooms, _ := strconv.Atoi(r.FormValue("bedrooms"))
	bathrooms, _ := strconv.Atoi(r.FormValue("bathrooms"))
	areaM2, _ := strconv.Atoi(r.FormValue("area_m2"))
	return usecase.CreateListingInput{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		ListingKind:     domain.ListingKind(r.FormValue("listing_kind")),
		PropertyKind:    domain.PropertyKind(r.FormValue("property_kind")),
		PriceXOF:        price,
		City:            r.FormValue("city"),
		Commune:         r.FormValue("commune"),
		Bedrooms:        bedrooms,
		Bathrooms:       bathrooms,
		AreaM2:          areaM2,
		Furnished:       r.FormValue("furnished") == "true",
		HasParking:      r.FormValue("has_parking") == "true",
		HasAC:           r.FormValue("has_ac") == "true",
		ContactPhone:    r.FormValue("contact_phone"),
		ContactWhatsApp: r.FormValue("contact_whatsapp"),
		ContactEmail:    r.FormValue("contact_email"),
	}
}

func readUploadedFiles(headers []*multipart.FileHeader) ([]media.File, error) {
	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return files, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return files, err
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		files = append(files, media.File{Name: fh.Filename, ContentType: contentType, Data: data})
	}
	return files, nil
}

func toCardResponse(l *domain.Listing) listingCardResponse {
	card := listingCardResponse{
		ID:           l.ID,
		Title:        l.Title,
		PriceXOF:     l.PriceXOF,
		ListingKind:  string(l.ListingKind),
		PropertyKind: string(l.PropertyKind),
		City:         l.City,
		Commune:      l.Commune,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		Furnished:    l.Furnished,
		HasParking:   l.HasParking,
		HasAC:        l.HasAC,
		CreatedAt:    l.CreatedAt,
	}
	if img, ok := l.PrimaryImage(); ok {
		card.PrimaryImage = &imageResponse{URL: img.URL, IsPrimary: img.IsPrimary}
	}
	return card
}

func toDetailResponse(l *domain.Listing) listingDetailResponse {
	detail := listingDetailResponse{
		listingCardResponse: toCardResponse(l),
		Description:         l.Description,
		AreaM2:              l.AreaM2,
		ContactPhone:        l.ContactPhone,
		ContactWhatsApp:     l.ContactWhatsApp,
		ContactEmail:        l.ContactEmail,
		Images:              make([]imageResponse, 0, len(l.Images)),
	}
	for _, img := range l.Images {
		detail.Images = append(detail.Images, imageResponse{URL: img.URL, IsPrimary: img.IsPrimary})
	}
	return detail
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
