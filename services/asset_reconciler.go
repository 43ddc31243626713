package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/sahilchouksey/university-catalog/model"
	"github.com/sahilchouksey/university-catalog/utils"
)

// Storage folders, one per asset slot. Folder choice is a property of the
// slot being set, not of the entity holding it.
const (
	FolderUniversityImage = "university_image"
	FolderUniversityPDF   = "university_pdf"
	FolderCategoryPDF     = "category_pdf"
	FolderCoursePDF       = "course_pdf"
)

// AssetStore is the minimal object-storage contract the catalog consumes.
// Implemented by digitalocean.SpacesClient in production.
type AssetStore interface {
	Upload(ctx context.Context, data []byte, folder, filename string) (string, error)
	Delete(ctx context.Context, url string) error
}

// OrphanRecorder persists URLs whose post-commit deletion failed so the
// background sweeper can retry them.
type OrphanRecorder interface {
	AddOrphanAsset(o model.OrphanAsset) error
}

// FileUpload carries raw asset bytes from the transport layer. A nil
// *FileUpload means the slot was not provided.
type FileUpload struct {
	Filename string
	Content  []byte
}

// AssetReconciler applies the slot-change policy: new bytes are uploaded
// before any reference is swapped, and previous objects are reclaimed only
// after the owning document has committed. Reclamation is best-effort and
// never fails the triggering operation.
type AssetReconciler struct {
	store   AssetStore
	orphans OrphanRecorder
	logger  *utils.Logger
}

func NewAssetReconciler(store AssetStore, orphans OrphanRecorder, logger *utils.Logger) *AssetReconciler {
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &AssetReconciler{
		store:   store,
		orphans: orphans,
		logger:  logger,
	}
}

// Upload stores the file under the slot's folder and returns the new asset
// reference. Any storage failure comes back as an UploadError and the caller
// must abort before mutating the document.
func (r *AssetReconciler) Upload(ctx context.Context, file *FileUpload, folder string) (string, error) {
	assetURL, err := r.store.Upload(ctx, file.Content, folder, file.Filename)
	if err != nil {
		return "", &UploadError{Folder: folder, Err: err}
	}

	if LooksLikePDF(file.Content) {
		if pages, err := PDFPageCount(file.Content); err == nil {
			r.logger.Logf("uploaded %s to %s (%d pages)", assetURL, folder, pages)
		} else {
			r.logger.Logf("uploaded %s to %s (page count unavailable: %v)", assetURL, folder, err)
		}
	} else {
		r.logger.Logf("uploaded %s to %s", assetURL, folder)
	}

	return assetURL, nil
}

// Release reclaims a stored object after its reference has been dropped from
// a committed document. Failures are logged and queued for the sweeper; they
// never propagate.
func (r *AssetReconciler) Release(ctx context.Context, assetURL, reason string) {
	if assetURL == "" {
		return
	}

	err := r.store.Delete(ctx, assetURL)
	if err == nil {
		r.logger.Logf("released %s (%s)", assetURL, reason)
		return
	}
	r.logger.Logf("failed to release %s (%s): %v", assetURL, reason, err)

	if r.orphans == nil {
		return
	}
	record := model.OrphanAsset{
		URL:    assetURL,
		Folder: folderFromURL(assetURL),
		Reason: reason,
	}
	if err := r.orphans.AddOrphanAsset(record); err != nil {
		r.logger.Logf("failed to queue orphan %s: %v", assetURL, err)
	}
}

// ReleaseAll reclaims every reference in the list, best-effort.
func (r *AssetReconciler) ReleaseAll(ctx context.Context, assetURLs []string, reason string) {
	for _, u := range assetURLs {
		r.Release(ctx, u, reason)
	}
}

// folderFromURL recovers the storage folder from an asset URL. Keys are laid
// out as <folder>/<timestamp>_<name>, so the folder is the second-to-last
// path segment.
func folderFromURL(assetURL string) string {
	parsed, err := url.Parse(assetURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2]
}
