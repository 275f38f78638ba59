package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/obbank/jwks-aggregator/internal/jwks"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const (
	heartbeatMessage = "Bank's JWKS service up!"
	aggregateFailure = "An error occurred trying to create JWKS output"
)

// Aggregator produces the keyset envelope served on /jwks/endpoint.
type Aggregator interface {
	Aggregate(ctx context.Context) (jwks.Envelope, error)
}

// Handler exposes the keyset aggregator over HTTP.
type Handler struct {
	aggregator Aggregator
	logger     *zap.Logger
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(aggregator Aggregator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		aggregator: aggregator,
		logger:     logger,
	}
}

func (h *Handler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("heartbeat request", zap.String("request_id", requestIDFromContext(r.Context())))
	writeText(w, http.StatusOK, heartbeatMessage)
}

func (h *Handler) handleEndpoint(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFromContext(r.Context())
	h.logger.Debug("retrieving JWKS", zap.String("request_id", requestID))

	envelope, err := h.aggregator.Aggregate(r.Context())
	if err != nil {
		h.logger.Error("failed to create JWKS output",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		writeText(w, http.StatusInternalServerError, aggregateFailure)
		return
	}

	writeJSON(w, http.StatusOK, envelope)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	enc := json.NewEncoder(w)
	// Keys are relayed verbatim; URLs such as x5u keep their & < > intact.
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
