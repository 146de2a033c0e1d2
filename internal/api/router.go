package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/statline-game/statline/internal/api/handler"
	"github.com/statline-game/statline/internal/api/middleware"
	"github.com/statline-game/statline/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game routes
	api.HandleFunc("/games/daily", gameHandler.StartDaily).Methods(http.MethodPost)
	api.HandleFunc("/games/random", gameHandler.StartRandom).Methods(http.MethodPost)
	api.HandleFunc("/games/guess", gameHandler.Guess).Methods(http.MethodPost)
	api.HandleFunc("/games/reveal", gameHandler.Reveal).Methods(http.MethodPost)

	// Player routes
	api.HandleFunc("/players/autocomplete", gameHandler.Autocomplete).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
