package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"edu-backend/internal/middleware"
	"edu-backend/internal/models"
	"edu-backend/internal/services"
	"edu-backend/internal/sms"
	"edu-backend/pkg/utils"
)

type UserHandler struct {
	Verification *services.VerificationService
	Users        *services.UserService
}

func NewUserHandler(verification *services.VerificationService, users *services.UserService) *UserHandler {
	return &UserHandler{Verification: verification, Users: users}
}

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// RequestRegisterCode sends a verification code to a phone number that
// is not registered yet.
func (h *UserHandler) RequestRegisterCode(w http.ResponseWriter, r *http.Request) {
	var req models.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PhoneNumber == "" {
		utils.Error(w, http.StatusBadRequest, "phone_number is required")
		return
	}

	if err := h.Verification.RegisterRequestCode(r.Context(), req.PhoneNumber); err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Verification code sent", nil)
}

// CheckRegisterCode validates a code without consuming it.
func (h *UserHandler) CheckRegisterCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Verification.CheckRegisterCode(r.Context(), req.PhoneNumber, req.Code); err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Code is valid", nil)
}

// RegisterVerify consumes the code and creates the account.
func (h *UserHandler) RegisterVerify(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PhoneNumber == "" || req.Code == "" || req.Email == "" {
		utils.Error(w, http.StatusBadRequest, "phone_number, code and email are required")
		return
	}

	user, token, err := h.Verification.RegisterVerify(r.Context(), &req)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.Created(w, "Registration complete", authPayload{User: user, Token: token})
}

// LoginRequestCode sends a login code to an existing account.
func (h *UserHandler) LoginRequestCode(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequestCode
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Verification.LoginRequestCode(r.Context(), req.Email, req.PhoneNumber); err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Verification code sent", nil)
}

// LoginVerify consumes the login code and returns a token.
func (h *UserHandler) LoginVerify(w http.ResponseWriter, r *http.Request) {
	var req models.LoginVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.Verification.LoginVerify(r.Context(), req.Email, req.PhoneNumber, req.Code)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Login successful", authPayload{User: user, Token: token})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "", user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Profile updated", user)
}

// RegisterForCourse enrolls the authenticated user in a course.
func (h *UserHandler) RegisterForCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CourseRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Users.RegisterForCourse(r.Context(), userID, &req)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Course registration saved", user)
}

func (h *UserHandler) SelectCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CourseSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Users.SelectCourse(r.Context(), userID, &req)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.OK(w, "Course selection updated", user)
}

// CreateUser creates an account without phone verification. Admin only.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.PhoneNumber == "" || req.FirstName == "" {
		utils.Error(w, http.StatusBadRequest, "email, phone_number and first_name are required")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), &req)
	if err != nil {
		respondVerificationError(w, err)
		return
	}
	utils.Created(w, "User created", user)
}

// ListUsers returns every registered user. Admin only.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not list users")
		return
	}
	utils.OK(w, "", users)
}

// respondVerificationError maps service errors onto HTTP statuses. SMS
// gateway failures relay the provider's own message so the client can
// surface it.
func respondVerificationError(w http.ResponseWriter, err error) {
	var gwErr *sms.GatewayError
	switch {
	case errors.Is(err, services.ErrUserExists):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCode):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCourseNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.As(err, &gwErr):
		utils.Error(w, http.StatusBadGateway, gwErr.Message)
	default:
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
