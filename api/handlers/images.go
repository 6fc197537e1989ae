package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rashtra/rashtra-api/config"
	"github.com/rashtra/rashtra-api/storage"
)

// Images serves the photos held by the in-memory image store, so that the
// memory:// URLs on complaints resolve to /images/<key>
type Images struct {
	Store *storage.MemoryStore
}

// ImageHandler writes the stored photo with its original content type
func (i Images) ImageHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	img, err := i.Store.Get(storage.MemoryScheme + key)
	if errors.Is(err, storage.ErrImageNotFound) {
		config.ErrorStatus("image not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to get image", http.StatusInternalServerError, w, err)
		return
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(img.Data)
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}
