package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwaba/listing-service/internal/listing/domain"
	"github.com/akwaba/listing-service/internal/listing/media"
	"github.com/akwaba/listing-service/internal/listing/usecase"
	"github.com/akwaba/listing-service/internal/platform/logger"
)

type stubListingRepo struct {
	queries  []domain.ListingQuery
	results  []*domain.Listing
	queryErr error
	created  []*domain.Listing
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) error {
	l.ID = "new-listing"
	r.created = append(r.created, l)
	return nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	for _, l := range r.results {
		if l.ID == id {
			copied := *l
			return &copied, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (r *stubListingRepo) FindByQuery(_ context.Context, q domain.ListingQuery) ([]*domain.Listing, error) {
	r.queries = append(r.queries, q)
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return r.results, nil
}

type stubImageRepo struct {
	inserted []domain.ListingImage
}

func (r *stubImageRepo) Insert(_ context.Context, img *domain.ListingImage) error {
	r.inserted = append(r.inserted, *img)
	return nil
}

func (r *stubImageRepo) FindByListingID(_ context.Context, listingID string) ([]domain.ListingImage, error) {
	var out []domain.ListingImage
	for _, img := range r.inserted {
		if img.ListingID == listingID {
			out = append(out, img)
		}
	}
	return out, nil
}

type stubBlobStorage struct {
	uploads []string
}

func (s *stubBlobStorage) Upload(_ context.Context, path string, _ []byte, _ string) error {
	s.uploads = append(s.uploads, path)
	return nil
}

func (s *stubBlobStorage) PublicURL(path string) string { return "https://cdn.test/" + path }

const testSecret = "test-secret"

func newTestRouter(t *testing.T, listings *stubListingRepo, images *stubImageRepo, storage *stubBlobStorage) http.Handler {
	t.Helper()
	log := logger.New()
	listingUC := usecase.NewListingUsecase(listings, images, nil, nil, nil, log)
	mediaUC := usecase.NewMediaUsecase(storage, images, nil, nil, log)
	h := NewHandler(listingUC, mediaUC, media.NewTempFilePreviews(t.TempDir()), log)
	return NewRouter(h, testSecret, log)
}

func signedToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "owner@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestSearchBuildsCriteriaFromQueryString(t *testing.T) {
	repo := &stubListingRepo{}
	router := newTestRouter(t, repo, &stubImageRepo{}, &stubBlobStorage{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/listings?listing_kind=rental&commune=Cocody&price_min=300k&furnished_only=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.queries, 1)

	q := repo.queries[0]
	byField := map[string]domain.Clause{}
	for _, c := range q.Clauses {
		byField[c.Field+string(c.Op)] = c
	}
	assert.Equal(t, "rental", byField[domain.FieldListingKind+"eq"].Value)
	assert.Equal(t, "Cocody", byField[domain.FieldCommune+"contains"].Value)
	assert.Equal(t, int64(300000), byField[domain.FieldPriceXOF+"gte"].Value)
	assert.Equal(t, true, byField[domain.FieldFurnished+"eq"].Value)
}

func TestSearchFailureSurfacesErrorWithEmptyResults(t *testing.T) {
	repo := &stubListingRepo{queryErr: errors.New("store down")}
	router := newTestRouter(t, repo, &stubImageRepo{}, &stubBlobStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestGetListingNotFound(t *testing.T) {
	router := newTestRouter(t, &stubListingRepo{}, &stubImageRepo{}, &stubBlobStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/listings/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetListingDetail(t *testing.T) {
	listings := &stubListingRepo{results: []*domain.Listing{{
		ID:     "l1",
		Title:  "Villa",
		Status: domain.StatusPublished,
	}}}
	images := &stubImageRepo{inserted: []domain.ListingImage{
		{ListingID: "l1", URL: "u-primary", IsPrimary: true},
		{ListingID: "l1", URL: "u-second"},
	}}
	router := newTestRouter(t, listings, images, &stubBlobStorage{})

	req := httptest.NewRequest(http.MethodGet, "/api/listings/l1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listingDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 2)
	assert.True(t, resp.Images[0].IsPrimary)
	require.NotNil(t, resp.PrimaryImage)
	assert.Equal(t, "u-primary", resp.PrimaryImage.URL)
}

func publishRequest(t *testing.T, fields map[string]string, photos []string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, name := range photos {
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {`form-data; name="photos"; filename="` + name + `"`},
			"Content-Type":        {"image/jpeg"},
		})
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/listings", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestPublishRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &stubListingRepo{}, &stubImageRepo{}, &stubBlobStorage{})

	req := publishRequest(t, map[string]string{"title": "Villa"}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublishCreatesListingAndUploadsImages(t *testing.T) {
	listings := &stubListingRepo{}
	images := &stubImageRepo{}
	storage := &stubBlobStorage{}
	router := newTestRouter(t, listings, images, storage)

	req := publishRequest(t, map[string]string{
		"title":         "Villa à Cocody",
		"price_xof":     "450000",
		"listing_kind":  "rental",
		"property_kind": "villa",
		"commune":       "Cocody",
		"primary_index": "1",
	}, []string{"front.jpg", "salon.jpg", "cour.jpg"})
	req.Header.Set("Authorization", "Bearer "+signedToken(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, listings.created, 1)
	assert.Equal(t, "user-1", listings.created[0].OwnerID)

	require.Len(t, images.inserted, 3)
	assert.False(t, images.inserted[0].IsPrimary)
	assert.True(t, images.inserted[1].IsPrimary)
	assert.False(t, images.inserted[2].IsPrimary)

	var resp publishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new-listing", resp.Listing.ID)
	require.Len(t, resp.Images, 3)
	for _, img := range resp.Images {
		assert.True(t, img.Uploaded)
	}
}

func TestPublishRejectsBadToken(t *testing.T) {
	router := newTestRouter(t, &stubListingRepo{}, &stubImageRepo{}, &stubBlobStorage{})

	req := publishRequest(t, map[string]string{"title": "Villa"}, nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublishMissingTitleIsBadRequest(t *testing.T) {
	router := newTestRouter(t, &stubListingRepo{}, &stubImageRepo{}, &stubBlobStorage{})

	req := publishRequest(t, map[string]string{"price_xof": "100"}, nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
