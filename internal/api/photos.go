package api

import (
	"database/sql"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"

	"github.com/fleetassist/missions/internal/imaging"
	"github.com/fleetassist/missions/internal/model"
	"github.com/fleetassist/missions/internal/storage"
	"github.com/fleetassist/missions/internal/store"
)

// maxPhotoSize limits photo uploads to 10 MB.
const maxPhotoSize = 10 << 20

// PhotosHandler handles photo upload endpoints.
type PhotosHandler struct {
	DB      *sql.DB
	Storage storage.Storage
}

// Upload handles POST /api/missions/{id}/photos. Expects a multipart
// form with a "photo" file and a "type" field; re-uploading the same
// type replaces the existing photo record.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid mission id")
		return
	}

	exists, err := store.MissionExists(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to check mission")
		return
	}
	if !exists {
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	photoType := r.FormValue("type")
	if photoType == "" {
		jsonError(w, http.StatusBadRequest, "photo type required")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	if !model.AllowedPhotoMIME[mime] {
		jsonError(w, http.StatusBadRequest, "photo must be JPEG, PNG, or WEBP")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read photo")
		return
	}

	processed, err := imaging.Process(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid image data")
		return
	}

	filename := uuid.New().String() + path.Ext(header.Filename)
	key := "missions/" + strconv.FormatInt(id, 10) + "/" + photoType + "/" + filename

	url, err := h.Storage.Store(r.Context(), key, processed.MIME, processed.Data)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	photo := &model.Photo{
		MissionID:    id,
		PhotoType:    photoType,
		Filename:     filename,
		OriginalName: header.Filename,
		SizeBytes:    int64(len(processed.Data)),
		MimeType:     processed.MIME,
		URL:          url,
		DeviceInfo:   r.FormValue("device_info"),
	}
	if lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64); err == nil {
		photo.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64); err == nil {
		photo.Longitude = &lon
	}

	saved, err := store.UpsertPhoto(r.Context(), h.DB, photo)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}
	if saved == nil {
		// Mission deleted between the existence check and the upsert.
		jsonError(w, http.StatusNotFound, "mission not found")
		return
	}
	jsonData(w, http.StatusCreated, saved)
}
