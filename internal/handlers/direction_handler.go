package handlers

import (
	"encoding/json"
	"net/http"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/pkg/utils"
)

type DirectionHandler struct {
	Directions *repositories.DirectionRepository
}

func NewDirectionHandler(directions *repositories.DirectionRepository) *DirectionHandler {
	return &DirectionHandler{Directions: directions}
}

func (h *DirectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DirectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	direction := &models.Direction{
		TitleEn:       req.TitleEn,
		TitleRu:       req.TitleRu,
		TitleUz:       req.TitleUz,
		DescriptionEn: req.DescriptionEn,
		DescriptionRu: req.DescriptionRu,
		DescriptionUz: req.DescriptionUz,
	}
	if err := h.Directions.Create(r.Context(), direction); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not create direction")
		return
	}
	utils.Created(w, "Direction created", direction)
}

func (h *DirectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	direction, err := h.Directions.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Direction not found")
		return
	}
	utils.OK(w, "", direction)
}

func (h *DirectionHandler) List(w http.ResponseWriter, r *http.Request) {
	directions, err := h.Directions.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list directions")
		return
	}
	utils.OK(w, "", directions)
}

func (h *DirectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req models.DirectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	direction := &models.Direction{
		ID:            id,
		TitleEn:       req.TitleEn,
		TitleRu:       req.TitleRu,
		TitleUz:       req.TitleUz,
		DescriptionEn: req.DescriptionEn,
		DescriptionRu: req.DescriptionRu,
		DescriptionUz: req.DescriptionUz,
	}
	if err := h.Directions.Update(r.Context(), direction); err != nil {
		utils.Error(w, http.StatusNotFound, "Direction not found")
		return
	}
	utils.OK(w, "Direction updated", direction)
}

func (h *DirectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.Directions.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete direction")
		return
	}
	utils.OK(w, "Direction deleted", nil)
}
