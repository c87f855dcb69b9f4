package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/karanagg166/TaskFlow/logging"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler pings the database through a circuit breaker so a flapping
// Mongo does not pile up health probes.
type HealthHandler struct {
	Client  *mongo.Client
	Breaker *gobreaker.CircuitBreaker
}

func NewHealthHandler(client *mongo.Client, breaker *gobreaker.CircuitBreaker) *HealthHandler {
	return &HealthHandler{Client: client, Breaker: breaker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_, err := h.Breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		return nil, h.Client.Ping(ctx, nil)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: HEALTH_CHECK_FAILED, Description: Database ping failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "ok",
	})
}
