package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akwaba/listing-service/internal/listing/domain"
	"github.com/akwaba/listing-service/internal/listing/media"
	"github.com/akwaba/listing-service/internal/platform/logger"
	"github.com/akwaba/listing-service/internal/platform/metrics"
)

// BlobStorage is the blob-store side of the pipeline, satisfied by the MinIO
// adapter.
type BlobStorage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

// UploadOutcome is the per-file result of a pipeline run.
type UploadOutcome struct {
	Index     int
	Filename  string
	Path      string
	URL       string
	IsPrimary bool
	Err       error
}

type MediaUsecase struct {
	storage BlobStorage
	images  domain.ImageRepository
	cache   DetailCache
	events  EventPublisher
	logger  *logger.Logger
}

func NewMediaUsecase(storage BlobStorage, images domain.ImageRepository, cache DetailCache, events EventPublisher, log *logger.Logger) *MediaUsecase {
	return &MediaUsecase{
		storage: storage,
		images:  images,
		cache:   cache,
		events:  events,
		logger:  log,
	}
}

// UploadImages runs the staged set through the blob store, strictly in
// selection order, one file at a time. A file is uploaded, then its metadata
// row inserted with the primary flag taken from the staged index. Any
// per-file failure is recorded and the batch moves on: no retry, no abort,
// no rollback of the listing. A successfully uploaded blob whose metadata
// insert fails stays orphaned.
//
// The sequential loop is deliberate: the primary flag derives from a single
// advancing index, and one in-flight request bounds the load on the store.
// A cancelled context stops scheduling further files but is not an error.
func (uc *MediaUsecase) UploadImages(ctx context.Context, listingID string, staged *media.StagingArea) []UploadOutcome {
	files := staged.Files()
	primaryIndex := staged.PrimaryIndex()
	outcomes := make([]UploadOutcome, 0, len(files))
	inserted := 0
	primaryInserted := false

	for i, f := range files {
		if ctx.Err() != nil {
			uc.logger.Warn("MediaUsecase.UploadImages: context done, not scheduling remaining files",
				"listing_id", listingID, "remaining", len(files)-i)
			break
		}

		out := UploadOutcome{
			Index:     i,
			Filename:  f.Name,
			Path:      objectPath(listingID, f.Name),
			IsPrimary: i == primaryIndex,
		}

		if err := uc.storage.Upload(ctx, out.Path, f.Data, f.ContentType); err != nil {
			uc.logger.Error("MediaUsecase.UploadImages: upload failed",
				"listing_id", listingID, "index", i, "path", out.Path, "error", err.Error())
			metrics.ImageUploadsTotal.WithLabelValues(metrics.OutcomeUploadFailed).Inc()
			out.Err = err
			outcomes = append(outcomes, out)
			continue
		}

		out.URL = uc.storage.PublicURL(out.Path)
		img := &domain.ListingImage{
			ListingID: listingID,
			URL:       out.URL,
			IsPrimary: out.IsPrimary,
		}
		if err := uc.images.Insert(ctx, img); err != nil {
			// The blob stays behind; accepted cost, not cleaned up.
			uc.logger.Error("MediaUsecase.UploadImages: metadata insert failed, blob orphaned",
				"listing_id", listingID, "index", i, "url", out.URL, "error", err.Error())
			metrics.ImageUploadsTotal.WithLabelValues(metrics.OutcomeMetadataFailed).Inc()
			out.Err = err
			outcomes = append(outcomes, out)
			continue
		}

		metrics.ImageUploadsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		inserted++
		if out.IsPrimary {
			primaryInserted = true
		}
		outcomes = append(outcomes, out)
	}

	if inserted > 0 && !primaryInserted {
		// Known gap: if the designated primary fails, no other image is
		// promoted and the listing ends up with zero primary-flagged images.
		uc.logger.Warn("MediaUsecase.UploadImages: designated primary not persisted, listing has no primary image",
			"listing_id", listingID, "primary_index", primaryIndex, "inserted", inserted)
	}

	if inserted > 0 {
		if uc.cache != nil {
			if err := uc.cache.DeleteListing(ctx, listingID); err != nil {
				uc.logger.Debug("MediaUsecase.UploadImages: cache invalidation failed", "listing_id", listingID, "error", err.Error())
			}
		}
		if uc.events != nil {
			if err := uc.events.Publish(ctx, SubjectImagesUploaded, map[string]interface{}{
				"listing_id": listingID,
				"count":      inserted,
			}); err != nil {
				uc.logger.Warn("MediaUsecase.UploadImages: publish event failed", "listing_id", listingID, "error", err.Error())
			}
		}
	}
	return outcomes
}

// objectPath builds a collision-resistant blob key: listing scope, a fresh
// uuid, and the sanitized original name for operator readability.
func objectPath(listingID, filename string) string {
	return fmt.Sprintf("%s/%s-%s", listingID, uuid.New().String(), media.SanitizeFilename(filename))
}
