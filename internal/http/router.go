package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edu-backend/internal/handlers"
	"edu-backend/internal/middleware"
)

func NewRouter(
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	directionHandler *handlers.DirectionHandler,
	courseHandler *handlers.CourseHandler,
	newsHandler *handlers.NewsHandler,
	elonHandler *handlers.ElonHandler,
	galleryHandler *handlers.GalleryHandler,
	partnerHandler *handlers.PartnerHandler,
	feedbackHandler *handlers.FeedbackHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) *mux.Router {
	r := mux.NewRouter()

	// Serve uploaded files
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	admin := authMiddleware.RequireAdmin

	// Public API routes - phone verification flows
	r.HandleFunc("/api/users/register/request-code", userHandler.RequestRegisterCode).Methods("POST")
	r.HandleFunc("/api/users/register/check-code", userHandler.CheckRegisterCode).Methods("POST")
	r.HandleFunc("/api/users/register/verify", userHandler.RegisterVerify).Methods("POST")
	r.HandleFunc("/api/users/login/request-code", userHandler.LoginRequestCode).Methods("POST")
	r.HandleFunc("/api/users/login/verify", userHandler.LoginVerify).Methods("POST")

	// Public API routes - Admin authentication
	r.HandleFunc("/api/admin/login", adminHandler.Login).Methods("POST")

	// Protected API routes - User profile
	meAPI := r.PathPrefix("/api/users/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", userHandler.GetProfile).Methods("GET")
	meAPI.HandleFunc("", userHandler.UpdateProfile).Methods("PUT")
	meAPI.HandleFunc("/course-registration", userHandler.RegisterForCourse).Methods("POST")
	meAPI.HandleFunc("/course", userHandler.SelectCourse).Methods("PUT")

	// Protected API routes - User directory (admin only)
	r.Handle("/api/users", admin(http.HandlerFunc(userHandler.ListUsers))).Methods("GET")
	r.Handle("/api/users", admin(http.HandlerFunc(userHandler.CreateUser))).Methods("POST")

	// Protected API routes - Admin account
	r.Handle("/api/admin", admin(http.HandlerFunc(adminHandler.Create))).Methods("POST")
	r.Handle("/api/admin/me", admin(http.HandlerFunc(adminHandler.GetMe))).Methods("GET")
	r.Handle("/api/admin/me", admin(http.HandlerFunc(adminHandler.Update))).Methods("PUT")

	// Directions - public reads, admin writes
	r.HandleFunc("/api/directions", directionHandler.List).Methods("GET")
	r.HandleFunc("/api/directions/{id}", directionHandler.Get).Methods("GET")
	r.Handle("/api/directions", admin(http.HandlerFunc(directionHandler.Create))).Methods("POST")
	r.Handle("/api/directions/{id}", admin(http.HandlerFunc(directionHandler.Update))).Methods("PUT")
	r.Handle("/api/directions/{id}", admin(http.HandlerFunc(directionHandler.Delete))).Methods("DELETE")

	// Courses - public reads, admin writes
	r.HandleFunc("/api/courses", courseHandler.List).Methods("GET")
	r.HandleFunc("/api/courses/{id}", courseHandler.Get).Methods("GET")
	r.Handle("/api/courses", admin(http.HandlerFunc(courseHandler.Create))).Methods("POST")
	r.Handle("/api/courses/{id}", admin(http.HandlerFunc(courseHandler.Update))).Methods("PUT")
	r.Handle("/api/courses/{id}", admin(http.HandlerFunc(courseHandler.Delete))).Methods("DELETE")

	// News - public reads, admin writes
	r.HandleFunc("/api/news", newsHandler.List).Methods("GET")
	r.HandleFunc("/api/news/{id}", newsHandler.Get).Methods("GET")
	r.Handle("/api/news", admin(http.HandlerFunc(newsHandler.Create))).Methods("POST")
	r.Handle("/api/news/{id}", admin(http.HandlerFunc(newsHandler.Update))).Methods("PUT")
	r.Handle("/api/news/{id}", admin(http.HandlerFunc(newsHandler.Delete))).Methods("DELETE")

	// Elons - public reads, admin writes
	r.HandleFunc("/api/elons", elonHandler.List).Methods("GET")
	r.HandleFunc("/api/elons/{id}", elonHandler.Get).Methods("GET")
	r.Handle("/api/elons", admin(http.HandlerFunc(elonHandler.Create))).Methods("POST")
	r.Handle("/api/elons/{id}", admin(http.HandlerFunc(elonHandler.Update))).Methods("PUT")
	r.Handle("/api/elons/{id}", admin(http.HandlerFunc(elonHandler.Delete))).Methods("DELETE")

	// Gallery - public reads, admin writes
	r.HandleFunc("/api/gallery", galleryHandler.List).Methods("GET")
	r.HandleFunc("/api/gallery/{id}", galleryHandler.Get).Methods("GET")
	r.Handle("/api/gallery", admin(http.HandlerFunc(galleryHandler.Create))).Methods("POST")
	r.Handle("/api/gallery/{id}", admin(http.HandlerFunc(galleryHandler.Update))).Methods("PUT")
	r.Handle("/api/gallery/{id}", admin(http.HandlerFunc(galleryHandler.Delete))).Methods("DELETE")

	// Partners - public reads, admin writes
	r.HandleFunc("/api/partners", partnerHandler.List).Methods("GET")
	r.HandleFunc("/api/partners/{id}", partnerHandler.Get).Methods("GET")
	r.Handle("/api/partners", admin(http.HandlerFunc(partnerHandler.Create))).Methods("POST")
	r.Handle("/api/partners/{id}", admin(http.HandlerFunc(partnerHandler.Update))).Methods("PUT")
	r.Handle("/api/partners/{id}", admin(http.HandlerFunc(partnerHandler.Delete))).Methods("DELETE")

	// Feedback - anyone can submit, only approved entries are public
	r.HandleFunc("/api/feedback", feedbackHandler.Create).Methods("POST")
	r.HandleFunc("/api/feedback", feedbackHandler.ListApproved).Methods("GET")
	r.Handle("/api/feedback/all", admin(http.HandlerFunc(feedbackHandler.List))).Methods("GET")
	r.Handle("/api/feedback/{id}", admin(http.HandlerFunc(feedbackHandler.Get))).Methods("GET")
	r.Handle("/api/feedback/{id}/approve", admin(http.HandlerFunc(feedbackHandler.Approve))).Methods("PUT")
	r.Handle("/api/feedback/{id}", admin(http.HandlerFunc(feedbackHandler.Delete))).Methods("DELETE")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
