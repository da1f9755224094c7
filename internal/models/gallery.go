package models

import "time"

type GalleryItem struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
}
