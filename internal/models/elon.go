package models

import "time"

// Elon is a featured announcement with an expiry date.
type Elon struct {
	ID          int       `json:"id"`
	TitleEn     string    `json:"title_en"`
	TitleRu     string    `json:"title_ru"`
	TitleUz     string    `json:"title_uz"`
	ContentEn   string    `json:"content_en"`
	ContentRu   string    `json:"content_ru"`
	ContentUz   string    `json:"content_uz"`
	EndsAt      time.Time `json:"ends_at"`
	PublishedAt time.Time `json:"published_at"`
	Medias      []Media   `json:"medias"`
}
