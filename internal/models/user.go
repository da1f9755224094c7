package models

import "time"

// User statuses
const (
	UserStatusActive   = "ACTIVE"
	UserStatusEnrolled = "ENROLLED"
)

type User struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	MiddleName  string    `json:"middle_name"`
	PhoneNumber string    `json:"phone_number"`
	Status      string    `json:"status"`
	Role        string    `json:"role"`
	Address     *string   `json:"address,omitempty"`
	Workplace   *string   `json:"workplace,omitempty"`
	Position    *string   `json:"position,omitempty"`
	CourseID    *int      `json:"course_id,omitempty"`
	DirectionID *int      `json:"direction_id,omitempty"`
	Course      *Course   `json:"course,omitempty"`
	Direction   *Direction `json:"direction,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
	CourseID    int    `json:"course_id"`
	DirectionID int    `json:"direction_id"`
}

// RequestCodeRequest starts the phone-verification flow for registration.
type RequestCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// VerifyCodeRequest is the non-consuming pre-check of a registration code.
type VerifyCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// RegisterVerifyRequest completes registration: consumes the code and
// creates the account.
type RegisterVerifyRequest struct {
	Code        string `json:"code"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequestCode struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type LoginVerifyRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

type UpdateProfileRequest struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	PhoneNumber string `json:"phone_number"`
}

type CourseRegistrationRequest struct {
	CourseID    int    `json:"course_id"`
	DirectionID int    `json:"direction_id"`
	Address     string `json:"address"`
	Workplace   string `json:"workplace"`
	Position    string `json:"position"`
}

type CourseSelectionRequest struct {
	CourseID    int `json:"course_id"`
	DirectionID int `json:"direction_id"`
}
