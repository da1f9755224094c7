package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"edu-backend/internal/auth"
	"edu-backend/internal/cache"
	"edu-backend/internal/config"
	"edu-backend/internal/database"
	"edu-backend/internal/handlers"
	"edu-backend/internal/health"
	h "edu-backend/internal/http"
	"edu-backend/internal/middleware"
	"edu-backend/internal/models"
	"edu-backend/internal/otp"
	"edu-backend/internal/repositories"
	"edu-backend/internal/services"
	"edu-backend/internal/sms"
	"edu-backend/internal/upload"
)

func main() {
	cfg := config.Load()

	// Connect to PostgreSQL
	pool := database.Connect(cfg)
	defer pool.Close()

	// Run database migrations
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to Redis (verification codes and SMS gateway tokens)
	redisCache, err := cache.NewRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()
	log.Println("[Redis] Cache connected successfully")

	// SMS provider: Eskiz in production, mock when no credentials are set
	var smsProvider sms.Provider
	if cfg.Eskiz.Email != "" && cfg.Eskiz.Password != "" {
		smsProvider = sms.NewEskiz(cfg, redisCache)
		log.Println("[SMS] Using Eskiz gateway for OTP delivery")
	} else {
		smsProvider = sms.NewMock()
		log.Println("WARNING: ESKIZ_EMAIL/ESKIZ_SECRET not set, codes will only print to logs")
	}

	// Local upload storage
	uploads, err := upload.NewLocal(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare upload storage: %v", err)
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	adminRepo := repositories.NewAdminRepository(pool)
	directionRepo := repositories.NewDirectionRepository(pool)
	courseRepo := repositories.NewCourseRepository(pool)
	newsRepo := repositories.NewNewsRepository(pool)
	elonRepo := repositories.NewElonRepository(pool)
	galleryRepo := repositories.NewGalleryRepository(pool)
	partnerRepo := repositories.NewPartnerRepository(pool)
	feedbackRepo := repositories.NewFeedbackRepository(pool)

	seedAdmin(adminRepo)

	// Initialize services
	otpStore := otp.NewStore(redisCache, time.Duration(cfg.OTP.TTLSeconds)*time.Second)
	verificationService := services.NewVerificationService(otpStore, userRepo, smsProvider, jwtManager)
	userService := services.NewUserService(userRepo, courseRepo, directionRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(verificationService, userService)
	adminHandler := handlers.NewAdminHandler(adminRepo, jwtManager)
	directionHandler := handlers.NewDirectionHandler(directionRepo)
	courseHandler := handlers.NewCourseHandler(courseRepo, directionRepo)
	newsHandler := handlers.NewNewsHandler(newsRepo, uploads)
	elonHandler := handlers.NewElonHandler(elonRepo, uploads)
	galleryHandler := handlers.NewGalleryHandler(galleryRepo, uploads)
	partnerHandler := handlers.NewPartnerHandler(partnerRepo, uploads)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool, redisCache))

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		userHandler,
		adminHandler,
		directionHandler,
		courseHandler,
		newsHandler,
		elonHandler,
		galleryHandler,
		partnerHandler,
		feedbackHandler,
		healthHandler,
		authMiddleware,
		uploads.Dir(),
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// seedAdmin creates the initial admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when it does not exist yet.
func seedAdmin(adminRepo *repositories.AdminRepository) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := adminRepo.GetByUsername(ctx, username); err == nil {
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("[Admin] Could not hash seed password: %v", err)
		return
	}
	admin := &models.Admin{Username: username, Password: hash, Role: auth.RoleAdmin}
	if err := adminRepo.Create(ctx, admin); err != nil {
		log.Printf("[Admin] Could not seed admin account: %v", err)
		return
	}
	log.Printf("[Admin] Seeded initial admin %q", username)
}
