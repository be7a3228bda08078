package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/finance-be/internal/http/respond"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and basic status.
type HealthHandler struct {
	service   string
	startedAt time.Time
	db        Pinger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(service string, startedAt time.Time, db Pinger) *HealthHandler {
	return &HealthHandler{service: service, startedAt: startedAt, db: db}
}

// Register wires the root and health endpoints, always outside the API prefix.
func (h *HealthHandler) Register(rt *Router) {
	root := rt.Unprefixed()
	root.Public("GET /{$}", h.handleRoot)
	root.Public("GET /health", h.handleHealth)
}

func (h *HealthHandler) handleRoot(w http.ResponseWriter, r *http.Request) error {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the " + h.service + "!",
		"health":  "/health",
	})
	return nil
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) error {
	database := "ok"
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		database = "unavailable"
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"service":  h.service,
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
		"database": database,
	})
	return nil
}
