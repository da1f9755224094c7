package models

import "time"

type News struct {
	ID          int       `json:"id"`
	TitleEn     string    `json:"title_en"`
	TitleRu     string    `json:"title_ru"`
	TitleUz     string    `json:"title_uz"`
	ContentEn   string    `json:"content_en"`
	ContentRu   string    `json:"content_ru"`
	ContentUz   string    `json:"content_uz"`
	PublishedAt time.Time `json:"published_at"`
	Medias      []Media   `json:"medias"`
}
