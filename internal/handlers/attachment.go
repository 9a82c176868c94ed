package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/fleet-control/internal/db"
	"github.com/ukydev/fleet-control/internal/middleware"
	"github.com/ukydev/fleet-control/internal/models"
	"github.com/ukydev/fleet-control/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttachmentHandler serves attachment metadata. File bytes go straight to
// the object store through presigned URLs.
type AttachmentHandler struct {
	attachments db.AttachmentCollection
	store       storage.ObjectStore
	maxBytes    int64
	now         Clock
}

// NewAttachmentHandler creates a new attachment handler. store is nil when no
// bucket is configured.
func NewAttachmentHandler(attachments db.AttachmentCollection, store storage.ObjectStore, maxBytes int64, now Clock) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, store: store, maxBytes: maxBytes, now: orNow(now)}
}

// CreateAttachmentRequest describes a file about to be uploaded.
type CreateAttachmentRequest struct {
	FileName      string `json:"file_name"`
	Description   string `json:"description"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	ContentType   string `json:"content_type"`
}

// CreateAttachmentResponse carries the stored metadata and where to PUT the bytes.
type CreateAttachmentResponse struct {
	Attachment models.Attachment    `json:"attachment"`
	Upload     storage.PresignedURL `json:"upload"`
}

func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.AttachmentFilter{Query: q.Get("q"), FileType: q.Get("type")}
	attachments, err := h.attachments.FindAttachments(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}

func (h *AttachmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, r, storage.ErrNotConfigured)
		return
	}
	var req CreateAttachmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	a := models.Attachment{
		ID:            primitive.NewObjectID(),
		FileName:      strings.TrimSpace(req.FileName),
		Description:   strings.TrimSpace(req.Description),
		FileType:      models.FileTypeOf(req.FileName),
		FileSizeBytes: req.FileSizeBytes,
		UploadedAt:    h.now(),
	}
	if err := a.Validate(h.maxBytes); err != nil {
		writeError(w, r, err)
		return
	}
	a.ObjectKey = storage.ObjectKey(a.FileName)

	upload, err := h.store.PresignUpload(r.Context(), a.ObjectKey, req.ContentType, a.FileSizeBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.attachments.InsertAttachment(r.Context(), a); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateAttachmentResponse{Attachment: a, Upload: upload})
}

// Download redirects to a short-lived GET URL for the file.
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, r, storage.ErrNotConfigured)
		return
	}
	a, err := h.attachments.FindAttachmentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	url, err := h.store.PresignDownload(r.Context(), a.ObjectKey, a.FileName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, url.URL, http.StatusTemporaryRedirect)
}

// Delete removes the stored object first, then its metadata.
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, r, storage.ErrNotConfigured)
		return
	}
	id := chi.URLParam(r, "id")
	a, err := h.attachments.FindAttachmentByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.store.Delete(r.Context(), a.ObjectKey); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.attachments.DeleteAttachment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	middleware.LoggerFromContext(r.Context()).WithField("attachment_id", id).Info("Attachment deleted")
	w.WriteHeader(http.StatusNoContent)
}
