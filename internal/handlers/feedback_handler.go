package handlers

import (
	"encoding/json"
	"net/http"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/pkg/utils"
)

type FeedbackHandler struct {
	Feedback *repositories.FeedbackRepository
}

func NewFeedbackHandler(feedback *repositories.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{Feedback: feedback}
}

// Create stores visitor feedback. It stays hidden until an admin
// approves it.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" || req.Message == "" {
		utils.Error(w, http.StatusBadRequest, "full_name and message are required")
		return
	}
	if req.Rating < 1 {
		req.Rating = 1
	} else if req.Rating > 5 {
		req.Rating = 5
	}

	feedback := &models.Feedback{
		FullName:    req.FullName,
		Workplace:   req.Workplace,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Rating:      req.Rating,
		Message:     req.Message,
	}
	if err := h.Feedback.Create(r.Context(), feedback); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not save feedback")
		return
	}
	utils.Created(w, "Feedback submitted", feedback)
}

// ListApproved is the public feed.
func (h *FeedbackHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	items, err := h.Feedback.ListApproved(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list feedback")
		return
	}
	utils.OK(w, "", items)
}

// List returns all feedback, approved or not. Admin only.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	items, total, err := h.Feedback.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list feedback")
		return
	}
	utils.OK(w, "", utils.Paginated{Items: items, Total: total, Page: page, Limit: limit})
}

// Get returns a single feedback entry regardless of approval. Admin only.
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	feedback, err := h.Feedback.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Feedback not found")
		return
	}
	utils.OK(w, "", feedback)
}

func (h *FeedbackHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if _, err := h.Feedback.Get(r.Context(), id); err != nil {
		utils.Error(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err := h.Feedback.Approve(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not approve feedback")
		return
	}
	utils.OK(w, "Feedback approved", nil)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.Feedback.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete feedback")
		return
	}
	utils.OK(w, "Feedback deleted", nil)
}
