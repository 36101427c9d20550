package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizdash/quizdash-go/internal/api/handler"
	"github.com/quizdash/quizdash-go/internal/api/middleware"
	"github.com/quizdash/quizdash-go/internal/services/auth"
	"github.com/quizdash/quizdash-go/internal/services/recovery"
	"github.com/quizdash/quizdash-go/internal/services/session"
	"github.com/quizdash/quizdash-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       auth.ServiceInterface
	SessionController session.ControllerInterface
	RecoveryService   recovery.ServiceInterface
	Broadcaster       sse.BroadcasterInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.SessionController)
	matchHandler := handler.NewMatchHandler(cfg.SessionController, cfg.RecoveryService)
	eventsHandler := handler.NewEventsHandler(cfg.SessionController, cfg.Broadcaster)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/ready", roomHandler.Ready).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/heartbeat", roomHandler.Heartbeat).Methods(http.MethodPost)

	// Match routes
	rooms.HandleFunc("/{code}/answer", matchHandler.SubmitAnswer).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/powerup", matchHandler.UsePowerUp).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/snapshot", matchHandler.Snapshot).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/results", matchHandler.Results).Methods(http.MethodGet)

	// Event stream
	rooms.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
