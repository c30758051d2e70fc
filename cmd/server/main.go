package main

import (
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/user/xiuxian-engine/config"
	"github.com/user/xiuxian-engine/internal/game"
	"github.com/user/xiuxian-engine/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "./config/config.json", "Path to configuration file")
	flag.Parse()

	// Set up logger
	logger := setupLogger()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize session manager
	manager := game.NewManager(cfg)
	manager.SetLogger(logger)

	// Set up HTTP server for the rendering/input collaborator
	server := setupHTTPServer(cfg, manager, logger)

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(logger)
}

func setupLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

// createSessionRequest is the body of POST /sessions
type createSessionRequest struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	Talent     *int   `json:"talent,omitempty"`
}

// actionRequest is the body of POST /sessions/{session_id}/actions
type actionRequest struct {
	Action string `json:"action"`
}

// restartRequest is the body of POST /sessions/{session_id}/restart
type restartRequest struct {
	Difficulty string `json:"difficulty"`
}

// actionResponse bundles the action outcome with the fresh snapshot
type actionResponse struct {
	Result   *types.ActionResult `json:"result"`
	Snapshot *types.StatusView   `json:"snapshot"`
}

func setupHTTPServer(cfg config.Config, manager *game.Manager, logger *zap.Logger) *http.Server {
	// Create router
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Set up routes
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Session creation
	router.Post("/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		difficulty, ok := resolveDifficulty(req.Difficulty, cfg)
		if !ok {
			http.Error(w, "Unknown difficulty", http.StatusBadRequest)
			return
		}

		var view *types.StatusView
		var err error
		if req.Talent != nil {
			view, err = manager.CreateSessionWithTalent(req.Name, *req.Talent, difficulty)
		} else {
			view, err = manager.CreateSession(req.Name, difficulty)
		}
		if err != nil {
			writeGameError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, view)
	})

	// Status snapshot
	router.Get("/sessions/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")

		view, err := manager.Snapshot(sessionID)
		if err != nil {
			writeGameError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})

	// Action application
	router.Post("/sessions/{session_id}/actions", func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")

		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		kind := types.ActionKind(req.Action)
		if !kind.Valid() {
			http.Error(w, "Unknown action", http.StatusBadRequest)
			return
		}

		result, err := manager.ApplyAction(sessionID, kind)
		if err != nil {
			writeGameError(w, err, logger)
			return
		}

		snapshot, err := manager.Snapshot(sessionID)
		if err != nil {
			writeGameError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, actionResponse{Result: result, Snapshot: snapshot})
	})

	// Session restart
	router.Post("/sessions/{session_id}/restart", func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")

		var req restartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		difficulty, ok := resolveDifficulty(req.Difficulty, cfg)
		if !ok {
			http.Error(w, "Unknown difficulty", http.StatusBadRequest)
			return
		}

		view, err := manager.RestartSession(sessionID, difficulty)
		if err != nil {
			writeGameError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, view)
	})

	// Session removal (quit signal)
	router.Delete("/sessions/{session_id}", func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session_id")

		if err := manager.RemoveSession(sessionID); err != nil {
			writeGameError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	// Create HTTP server
	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

// resolveDifficulty maps a request's difficulty name to its preset,
// falling back to the configured default when the name is empty
func resolveDifficulty(name string, cfg config.Config) (types.DifficultySettings, bool) {
	if name == "" {
		name = cfg.Game.DefaultDifficulty
	}
	return types.PresetDifficulty(name)
}

// writeGameError maps domain errors to HTTP status codes
func writeGameError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, game.ErrInvalidPhase):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, game.ErrInsufficientResource):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("Unexpected error", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func waitForShutdown(logger *zap.Logger) {
	// Set up channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	// Perform cleanup
	logger.Info("Shutting down")
}
