package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"

	"github.com/mcoot/octiline/internal/api/handler"
	"github.com/mcoot/octiline/internal/api/middleware"
	"github.com/mcoot/octiline/internal/api/response"
	"github.com/mcoot/octiline/internal/api/sse"
	"github.com/mcoot/octiline/internal/services/bot"
	"github.com/mcoot/octiline/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	BotService     *bot.Service
	HubManager     *sse.HubManager
	CORS           middleware.CORSConfig
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.GameController, cfg.BotService)
	eventsHandler := handler.NewEventsHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	wsHandler := handler.NewWebSocketHandler(cfg.GameController, cfg.BotService, cfg.HubManager, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.CORS(cfg.CORS))

	// Streaming routes are registered first and left uncompressed
	api.HandleFunc("/sessions/{id}/events", eventsHandler.Stream).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/ws", wsHandler.Handle).Methods(http.MethodGet)

	// JSON routes
	api.Handle("/sessions", gzip(sessionHandler.Create)).Methods(http.MethodPost)
	api.Handle("/sessions/{id}", gzip(sessionHandler.Get)).Methods(http.MethodGet)
	api.Handle("/sessions/{id}", gzip(sessionHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/sessions/{id}/clicks", gzip(sessionHandler.Click)).Methods(http.MethodPost)
	api.Handle("/sessions/{id}/reset", gzip(sessionHandler.Reset)).Methods(http.MethodPost)
	api.Handle("/sessions/{id}/error", gzip(sessionHandler.ReportError)).Methods(http.MethodPost)
	api.Handle("/sessions/{id}/moves", gzip(sessionHandler.Moves)).Methods(http.MethodGet)
	api.Handle("/sessions/{id}/bot", gzip(sessionHandler.Bot)).Methods(http.MethodPost)
	api.Handle("/history", gzip(sessionHandler.History)).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Preflight requests are answered by the CORS middleware
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NoContent(w)
	})

	return r
}

func gzip(h http.HandlerFunc) http.Handler {
	return gzhttp.GzipHandler(h)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
