package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"edu-backend/internal/auth"
	"edu-backend/internal/middleware"
	"edu-backend/internal/models"
	"edu-backend/internal/repositories"
	"edu-backend/pkg/utils"
)

type AdminHandler struct {
	Admins     *repositories.AdminRepository
	JWTManager *auth.JWTManager
}

func NewAdminHandler(admins *repositories.AdminRepository, jwtManager *auth.JWTManager) *AdminHandler {
	return &AdminHandler{Admins: admins, JWTManager: jwtManager}
}

// Login authenticates an admin by username and password.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.Admins.GetByUsername(r.Context(), req.Username)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !auth.VerifyPassword(admin.Password, req.Password) {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.JWTManager.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not sign token")
		return
	}

	log.Printf("[Admin] %s logged in", admin.Username)
	utils.OK(w, "Login successful", map[string]interface{}{
		"admin": admin,
		"token": token,
	})
}

// Create registers another admin account. Admin only.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not hash password")
		return
	}

	admin := &models.Admin{
		Username: req.Username,
		Password: hash,
		Role:     auth.RoleAdmin,
	}
	if err := h.Admins.Create(r.Context(), admin); err != nil {
		utils.Error(w, http.StatusConflict, "Admin with this username already exists")
		return
	}
	utils.Created(w, "Admin created", admin)
}

// GetMe returns the authenticated admin.
func (h *AdminHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	admin, err := h.Admins.Get(r.Context(), adminID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Admin not found")
		return
	}
	utils.OK(w, "", admin)
}

// Update changes the authenticated admin's username or password.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.Admins.Get(r.Context(), adminID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Admin not found")
		return
	}

	if req.Username != "" {
		admin.Username = req.Username
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Could not hash password")
			return
		}
		admin.Password = hash
	}

	if err := h.Admins.Update(r.Context(), admin); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Could not update admin")
		return
	}
	utils.OK(w, "Admin updated", admin)
}
