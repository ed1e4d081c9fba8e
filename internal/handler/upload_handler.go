package handler

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/backend/internal/service"
	"github.com/ledgerline/backend/internal/storage"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler stores blog cover images.
type UploadHandler struct {
	storage storage.Storage
	now     func() time.Time
}

// NewUploadHandler returns an UploadHandler backed by store.
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{storage: store, now: time.Now}
}

// Upload handles POST /api/admin/uploads.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(64<<10))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
		return
	}

	// The client's Content-Type is not trusted; sniff the first 512 bytes.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}
	head = head[:n]
	ct := http.DetectContentType(head)
	ext, ok := allowedImageTypes[ct]
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "invalid_content_type")
		return
	}

	now := h.now().In(service.OfficeZone)
	key := path.Join("blog", now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	url, err := h.storage.Save(r.Context(), key, io.MultiReader(bytes.NewReader(head), file), ct)
	if err != nil {
		slog.Error("image upload failed", "error", err, "key", key, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url, "key": key})
}

// Delete handles DELETE /api/admin/uploads/{key...}.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, err := storage.CleanKey(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_key")
		return
	}
	if err := h.storage.Delete(r.Context(), key); err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			writeError(w, http.StatusBadRequest, "invalid_key")
			return
		}
		slog.Error("image delete failed", "error", err, "key", key, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeUploads serves stored files read-only under prefix. Directories answer
// 404 so the upload tree cannot be listed.
func ServeUploads(prefix, dir string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(filesOnly{http.Dir(dir)}))
}

type filesOnly struct {
	root http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
