package models

import "time"

type Direction struct {
	ID            int       `json:"id"`
	TitleEn       string    `json:"title_en"`
	TitleRu       string    `json:"title_ru"`
	TitleUz       string    `json:"title_uz"`
	DescriptionEn string    `json:"description_en"`
	DescriptionRu string    `json:"description_ru"`
	DescriptionUz string    `json:"description_uz"`
	CreatedAt     time.Time `json:"created_at"`
}

type DirectionRequest struct {
	TitleEn       string `json:"title_en"`
	TitleRu       string `json:"title_ru"`
	TitleUz       string `json:"title_uz"`
	DescriptionEn string `json:"description_en"`
	DescriptionRu string `json:"description_ru"`
	DescriptionUz string `json:"description_uz"`
}
