package handlers

import (
	"net/http"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/internal/upload"
	"edu-backend/pkg/utils"
)

type GalleryHandler struct {
	Gallery *repositories.GalleryRepository
	Uploads *upload.Local
}

func NewGalleryHandler(gallery *repositories.GalleryRepository, uploads *upload.Local) *GalleryHandler {
	return &GalleryHandler{Gallery: gallery, Uploads: uploads}
}

// Create accepts a multipart form with a title and one file under
// "media".
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "media file is required")
		return
	}
	file.Close()

	url, mediaType, err := h.Uploads.Save(header, "gallery")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &models.GalleryItem{
		Title:     r.FormValue("title"),
		MediaURL:  url,
		MediaType: mediaType,
	}
	if err := h.Gallery.Create(r.Context(), item); err != nil {
		h.Uploads.Remove(url)
		utils.Error(w, http.StatusInternalServerError, "Could not create gallery item")
		return
	}
	utils.Created(w, "Gallery item created", item)
}

func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	item, err := h.Gallery.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Gallery item not found")
		return
	}
	utils.OK(w, "", item)
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	items, total, err := h.Gallery.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list gallery")
		return
	}
	utils.OK(w, "", utils.Paginated{Items: items, Total: total, Page: page, Limit: limit})
}

// Update changes the title and optionally replaces the media file.
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	item, err := h.Gallery.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Gallery item not found")
		return
	}

	if title := r.FormValue("title"); title != "" {
		item.Title = title
	}

	oldURL := ""
	if file, header, err := r.FormFile("media"); err == nil {
		file.Close()
		url, mediaType, err := h.Uploads.Save(header, "gallery")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		oldURL = item.MediaURL
		item.MediaURL = url
		item.MediaType = mediaType
	}

	if err := h.Gallery.Update(r.Context(), item); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not update gallery item")
		return
	}
	if oldURL != "" {
		h.Uploads.Remove(oldURL)
	}
	utils.OK(w, "Gallery item updated", item)
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	item, err := h.Gallery.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Gallery item not found")
		return
	}

	if err := h.Gallery.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete gallery item")
		return
	}
	h.Uploads.Remove(item.MediaURL)
	utils.OK(w, "Gallery item deleted", nil)
}
