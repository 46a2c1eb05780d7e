package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/storage"
)

// ImageHandler serves vehicle photo uploads and downloads backed by the
// image store. Clients upload first, then set the returned URL on the
// vehicle's image fields.
type ImageHandler struct {
	store storage.ImageStore
}

func NewImageHandler(store storage.ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, err := ActorFromContext(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		respondError(w, fmt.Errorf("filename query parameter is required: %w", domain.ErrInvalidArgument))
		return
	}

	key := h.store.NewKey(filename)
	if err := h.store.Save(key, r.Header.Get("Content-Type"), r.Body); err != nil {
		respondError(w, fmt.Errorf("%v: %w", err, domain.ErrInvalidArgument))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": h.store.URL(key),
	})
}

func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondError(w, fmt.Errorf("key query parameter is required: %w", domain.ErrInvalidArgument))
		return
	}

	file, err := h.store.Open(key)
	if err != nil {
		respondError(w, fmt.Errorf("image %s: %w", key, domain.ErrNotFound))
		return
	}
	defer file.Close()

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, file); err != nil {
		// Headers are already written; nothing left but to log.
		logger.Error("failed to stream image", "key", key, "error", err)
	}
}
