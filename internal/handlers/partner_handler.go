package handlers

import (
	"net/http"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/internal/upload"
	"edu-backend/pkg/utils"
)

type PartnerHandler struct {
	Partners *repositories.PartnerRepository
	Uploads  *upload.Local
}

func NewPartnerHandler(partners *repositories.PartnerRepository, uploads *upload.Local) *PartnerHandler {
	return &PartnerHandler{Partners: partners, Uploads: uploads}
}

// Create accepts a multipart form with name, website_url and a "logo"
// image.
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	if r.FormValue("name") == "" {
		utils.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "logo file is required")
		return
	}
	file.Close()

	url, mediaType, err := h.Uploads.Save(header, "partners")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if mediaType != models.MediaTypeImage {
		h.Uploads.Remove(url)
		utils.Error(w, http.StatusBadRequest, "logo must be an image")
		return
	}

	partner := &models.Partner{
		Name:       r.FormValue("name"),
		LogoURL:    url,
		WebsiteURL: r.FormValue("website_url"),
	}
	if err := h.Partners.Create(r.Context(), partner); err != nil {
		h.Uploads.Remove(url)
		utils.Error(w, http.StatusInternalServerError, "Could not create partner")
		return
	}
	utils.Created(w, "Partner created", partner)
}

func (h *PartnerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	partner, err := h.Partners.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Partner not found")
		return
	}
	utils.OK(w, "", partner)
}

func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	partners, err := h.Partners.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list partners")
		return
	}
	utils.OK(w, "", partners)
}

func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	partner, err := h.Partners.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Partner not found")
		return
	}

	if name := r.FormValue("name"); name != "" {
		partner.Name = name
	}
	if site := r.FormValue("website_url"); site != "" {
		partner.WebsiteURL = site
	}

	oldURL := ""
	if file, header, err := r.FormFile("logo"); err == nil {
		file.Close()
		url, mediaType, err := h.Uploads.Save(header, "partners")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if mediaType != models.MediaTypeImage {
			h.Uploads.Remove(url)
			utils.Error(w, http.StatusBadRequest, "logo must be an image")
			return
		}
		oldURL = partner.LogoURL
		partner.LogoURL = url
	}

	if err := h.Partners.Update(r.Context(), partner); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not update partner")
		return
	}
	if oldURL != "" {
		h.Uploads.Remove(oldURL)
	}
	utils.OK(w, "Partner updated", partner)
}

func (h *PartnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	partner, err := h.Partners.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Partner not found")
		return
	}

	if err := h.Partners.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete partner")
		return
	}
	h.Uploads.Remove(partner.LogoURL)
	utils.OK(w, "Partner deleted", nil)
}
