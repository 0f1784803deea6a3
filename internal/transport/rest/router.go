package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"bimatch/internal/service"
	"bimatch/internal/transport/rest/handler"
	"bimatch/internal/transport/rest/middleware"
	"bimatch/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	SessionService *service.SessionService
	TokenService   *service.TokenService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	profileHandler := handler.NewProfileHandler(c.SessionService)
	gestureHandler := ws.NewGestureHandler(c.SessionService)

	// Initialize middleware
	sessionMW := middleware.NewSessionMiddleware(c.TokenService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/contact/validate", sessionHandler.ValidateField).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/contact/fields/{field}", sessionHandler.SetField).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/contact", sessionHandler.SubmitContact).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/dilemmas/current", sessionHandler.CurrentCard).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/decisions", sessionHandler.SubmitDecision).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/restart", sessionHandler.Restart).Methods("POST", "OPTIONS")
	v1.HandleFunc("/profiles/{profileId}", profileHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket gesture stream
	v1.HandleFunc("/ws/sessions/{id}/gesture", gestureHandler.GestureWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Routes touching the persisted record require the session token
	tokenRoutes := v1.NewRoute().Subrouter()
	tokenRoutes.Use(sessionMW.RequireSession)

	tokenRoutes.HandleFunc("/sessions/{id}/result", sessionHandler.Result).Methods("GET", "OPTIONS")
	tokenRoutes.HandleFunc("/sessions/{id}/contact/export", sessionHandler.ExportContact).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
