package models

import "time"

type Course struct {
	ID            int        `json:"id"`
	TitleEn       string     `json:"title_en"`
	TitleRu       string     `json:"title_ru"`
	TitleUz       string     `json:"title_uz"`
	DescriptionEn string     `json:"description_en"`
	DescriptionRu string     `json:"description_ru"`
	DescriptionUz string     `json:"description_uz"`
	StartDate     time.Time  `json:"start_date"`
	EndsAt        time.Time  `json:"ends_at"`
	DirectionID   int        `json:"direction_id"`
	Direction     *Direction `json:"direction,omitempty"`
	PublishedAt   time.Time  `json:"published_at"`
}

type CourseRequest struct {
	TitleEn       string `json:"title_en"`
	TitleRu       string `json:"title_ru"`
	TitleUz       string `json:"title_uz"`
	DescriptionEn string `json:"description_en"`
	DescriptionRu string `json:"description_ru"`
	DescriptionUz string `json:"description_uz"`
	StartDate     string `json:"start_date"`
	EndsAt        string `json:"ends_at"`
	DirectionID   int    `json:"direction_id"`
}
