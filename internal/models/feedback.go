package models

import "time"

type Feedback struct {
	ID          int       `json:"id"`
	FullName    string    `json:"full_name"`
	Workplace   string    `json:"workplace"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateFeedbackRequest struct {
	FullName    string `json:"full_name"`
	Workplace   string `json:"workplace"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Rating      int    `json:"rating"`
	Message     string `json:"message"`
}
