package handlers

import (
	"log"
	"net/http"

	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/internal/upload"
	"edu-backend/pkg/utils"
)

// Multipart forms up to 32 MB stay in memory, the rest spills to disk.
const maxMultipartMemory = 32 << 20

type NewsHandler struct {
	News    *repositories.NewsRepository
	Uploads *upload.Local
}

func NewNewsHandler(news *repositories.NewsRepository, uploads *upload.Local) *NewsHandler {
	return &NewsHandler{News: news, Uploads: uploads}
}

// Create accepts a multipart form with the localized fields and any
// number of attachments under "medias".
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	news := &models.News{
		TitleEn:   r.FormValue("title_en"),
		TitleRu:   r.FormValue("title_ru"),
		TitleUz:   r.FormValue("title_uz"),
		ContentEn: r.FormValue("content_en"),
		ContentRu: r.FormValue("content_ru"),
		ContentUz: r.FormValue("content_uz"),
	}

	medias, ok := saveFormMedias(w, r, h.Uploads, "medias", "news")
	if !ok {
		return
	}
	news.Medias = medias

	if err := h.News.Create(r.Context(), news); err != nil {
		removeMedias(h.Uploads, medias)
		utils.Error(w, http.StatusInternalServerError, "Could not create news")
		return
	}
	utils.Created(w, "News created", news)
}

func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	news, err := h.News.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "News not found")
		return
	}
	utils.OK(w, "", news)
}

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	items, total, err := h.News.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list news")
		return
	}
	utils.OK(w, "", utils.Paginated{Items: items, Total: total, Page: page, Limit: limit})
}

// Update rewrites the localized fields and appends any new attachments.
// Existing attachments are kept.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	existing, err := h.News.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "News not found")
		return
	}

	existing.TitleEn = r.FormValue("title_en")
	existing.TitleRu = r.FormValue("title_ru")
	existing.TitleUz = r.FormValue("title_uz")
	existing.ContentEn = r.FormValue("content_en")
	existing.ContentRu = r.FormValue("content_ru")
	existing.ContentUz = r.FormValue("content_uz")

	medias, ok := saveFormMedias(w, r, h.Uploads, "medias", "news")
	if !ok {
		return
	}
	existing.Medias = append(existing.Medias, medias...)

	if err := h.News.Update(r.Context(), existing); err != nil {
		removeMedias(h.Uploads, medias)
		utils.Error(w, http.StatusInternalServerError, "Could not update news")
		return
	}
	utils.OK(w, "News updated", existing)
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.Error(w, http.StatusBadRequest, "Invalid id")
		return
	}

	news, err := h.News.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "News not found")
		return
	}

	if err := h.News.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not delete news")
		return
	}
	removeMedias(h.Uploads, news.Medias)
	utils.OK(w, "News deleted", nil)
}

// saveFormMedias stores every file uploaded under the field name into
// the named subdirectory and returns the media rows to persist. On a
// rejected file everything already stored is rolled back.
func saveFormMedias(w http.ResponseWriter, r *http.Request, uploads *upload.Local, field, subdir string) ([]models.Media, bool) {
	if r.MultipartForm == nil {
		return nil, true
	}

	var medias []models.Media
	for _, header := range r.MultipartForm.File[field] {
		url, mediaType, err := uploads.Save(header, subdir)
		if err != nil {
			removeMedias(uploads, medias)
			utils.Error(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		medias = append(medias, models.Media{URL: url, Type: mediaType})
	}
	return medias, true
}

func removeMedias(uploads *upload.Local, medias []models.Media) {
	for _, m := range medias {
		if err := uploads.Remove(m.URL); err != nil {
			log.Printf("[Upload] Could not remove %s: %v", m.URL, err)
		}
	}
}
