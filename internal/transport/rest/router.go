package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"aligniq/internal/catalog"
	"aligniq/internal/service"
	"aligniq/internal/transport/rest/handler"
	"aligniq/internal/transport/rest/middleware"
	"aligniq/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Catalog             *catalog.Catalog
	AuthService         *service.AuthService
	ConversationService *service.ConversationService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	catalogHandler := handler.NewCatalogHandler(c.Catalog)
	convHandler := handler.NewConversationHandler(c.ConversationService)
	wsHandler := ws.NewHandler(c.WSHub, c.ConversationService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/catalog", catalogHandler.List).Methods("GET", "OPTIONS")

	// WebSocket live totals feed
	v1.HandleFunc("/ws/conversations/{id}", wsHandler.ConversationWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Conversation routes shared by the rep-led and surgeon-alone flows.
	// A rep token, when present, attaches ownership and enables force
	// completion; without one the flow is anonymous.
	convRoutes := v1.NewRoute().Subrouter()
	convRoutes.Use(authMW.AttachRep)

	convRoutes.HandleFunc("/conversations", convHandler.Start).Methods("POST", "OPTIONS")
	convRoutes.HandleFunc("/conversations/{id}", convHandler.Get).Methods("GET", "OPTIONS")
	convRoutes.HandleFunc("/conversations/{id}/snapshot", convHandler.GetSnapshot).Methods("GET", "OPTIONS")
	convRoutes.HandleFunc("/conversations/{id}/responses", convHandler.SubmitResponse).Methods("POST", "OPTIONS")
	convRoutes.HandleFunc("/conversations/{id}/complete", convHandler.Complete).Methods("POST", "OPTIONS")
	convRoutes.HandleFunc("/conversations/{id}/restart", convHandler.Restart).Methods("POST", "OPTIONS")
	convRoutes.HandleFunc("/conversations/{id}/recommendation", convHandler.GetRecommendation).Methods("GET", "OPTIONS")

	// Rep routes (require rep auth)
	repRoutes := v1.NewRoute().Subrouter()
	repRoutes.Use(authMW.RequireRep)

	repRoutes.HandleFunc("/conversations", convHandler.List).Methods("GET", "OPTIONS")
	repRoutes.HandleFunc("/conversations/{id}/abandon", convHandler.Abandon).Methods("POST", "OPTIONS")
	repRoutes.HandleFunc("/conversations/{id}/recommendation", convHandler.OverrideRecommendation).Methods("PUT", "OPTIONS")

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
