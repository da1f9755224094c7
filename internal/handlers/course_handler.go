package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/pkg/utils"
)

const courseDateLayout = "2006-01-02"

type CourseHandler struct {
	Courses    *repositories.CourseRepository
	Directions *repositories.DirectionRepository
}

func NewCourseHandler(courses *repositories.CourseRepository, directions *repositories.DirectionRepository) *CourseHandler {
	return &CourseHandler{Courses: courses, Directions: directions}
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	course, ok := h.decodeCourse(w, r, 0)
	if !ok {
		return
	}

	if err := h.Courses.Create(r.Context(), course); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not create course")
		return
	}
	utils.Created(w, "Course created", course)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	course, err := h.Courses.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Course not found")
		return
	}
	utils.OK(w, "", course)
}

// List returns courses, optionally filtered by ?direction_id=.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	directionID, _ := strconv.Atoi(r.URL.Query().Get("direction_id"))

	courses, total, err := h.Courses.List(r.Context(), directionID, page, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list courses")
		return
	}
	utils.OK(w, "", utils.Paginated{Items: courses, Total: total, Page: page, Limit: limit})
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	course, ok := h.decodeCourse(w, r, id)
	if !ok {
		return
	}

	if err := h.Courses.Update(r.Context(), course); err != nil {
		utils.Error(w, http.StatusNotFound, "Course not found")
		return
	}
	utils.OK(w, "Course updated", course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.Courses.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete course")
		return
	}
	utils.OK(w, "Course deleted", nil)
}

// decodeCourse reads the request body, validates the dates and the
// direction reference, and builds the course model.
func (h *CourseHandler) decodeCourse(w http.ResponseWriter, r *http.Request, id int) (*models.Course, bool) {
	var req models.CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	startDate, err := time.Parse(courseDateLayout, req.StartDate)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return nil, false
	}
	endsAt, err := time.Parse(courseDateLayout, req.EndsAt)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "ends_at must be YYYY-MM-DD")
		return nil, false
	}

	exists, err := h.Directions.Exists(r.Context(), req.DirectionID)
	if err != nil || !exists {
		utils.Error(w, http.StatusBadRequest, "direction_id does not exist")
		return nil, false
	}

	return &models.Course{
		ID:            id,
		TitleEn:       req.TitleEn,
		TitleRu:       req.TitleRu,
		TitleUz:       req.TitleUz,
		DescriptionEn: req.DescriptionEn,
		DescriptionRu: req.DescriptionRu,
		DescriptionUz: req.DescriptionUz,
		StartDate:     startDate,
		EndsAt:        endsAt,
		DirectionID:   req.DirectionID,
	}, true
}
