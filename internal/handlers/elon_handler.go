package handlers

import (
	"net/http"
	"time"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/internal/upload"
	"edu-backend/pkg/utils"
)

type ElonHandler struct {
	Elons   *repositories.ElonRepository
	Uploads *upload.Local
}

func NewElonHandler(elons *repositories.ElonRepository, uploads *upload.Local) *ElonHandler {
	return &ElonHandler{Elons: elons, Uploads: uploads}
}

func (h *ElonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	endsAt, err := time.Parse(time.RFC3339, r.FormValue("ends_at"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ends_at must be an RFC3339 timestamp")
		return
	}

	elon := &models.Elon{
		TitleEn:   r.FormValue("title_en"),
		TitleRu:   r.FormValue("title_ru"),
		TitleUz:   r.FormValue("title_uz"),
		ContentEn: r.FormValue("content_en"),
		ContentRu: r.FormValue("content_ru"),
		ContentUz: r.FormValue("content_uz"),
		EndsAt:    endsAt,
	}

	medias, ok := saveFormMedias(w, r, h.Uploads, "medias", "elon")
	if !ok {
		return
	}
	elon.Medias = medias

	if err := h.Elons.Create(r.Context(), elon); err != nil {
		removeMedias(h.Uploads, medias)
		utils.Error(w, http.StatusInternalServerError, "Could not create elon")
		return
	}
	utils.Created(w, "Elon created", elon)
}

func (h *ElonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	elon, err := h.Elons.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Elon not found")
		return
	}
	utils.OK(w, "", elon)
}

func (h *ElonHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	items, total, err := h.Elons.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list elons")
		return
	}
	utils.OK(w, "", utils.Paginated{Items: items, Total: total, Page: page, Limit: limit})
}

func (h *ElonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	existing, err := h.Elons.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Elon not found")
		return
	}

	if v := r.FormValue("ends_at"); v != "" {
		endsAt, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "ends_at must be an RFC3339 timestamp")
			return
		}
		existing.EndsAt = endsAt
	}
	existing.TitleEn = r.FormValue("title_en")
	existing.TitleRu = r.FormValue("title_ru")
	existing.TitleUz = r.FormValue("title_uz")
	existing.ContentEn = r.FormValue("content_en")
	existing.ContentRu = r.FormValue("content_ru")
	existing.ContentUz = r.FormValue("content_uz")

	medias, ok := saveFormMedias(w, r, h.Uploads, "medias", "elon")
	if !ok {
		return
	}
	existing.Medias = append(existing.Medias, medias...)

	if err := h.Elons.Update(r.Context(), existing); err != nil {
		removeMedias(h.Uploads, medias)
		utils.Error(w, http.StatusInternalServerError, "Could not update elon")
		return
	}
	utils.OK(w, "Elon updated", existing)
}

func (h *ElonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	elon, err := h.Elons.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Elon not found")
		return
	}

	if err := h.Elons.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete elon")
		return
	}
	removeMedias(h.Uploads, elon.Medias)
	utils.OK(w, "Elon deleted", nil)
}
