package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/aduanas/casengine/internal/catalog"
	"github.com/aduanas/casengine/internal/domain"
	"github.com/aduanas/casengine/internal/rules"
	"github.com/aduanas/casengine/internal/service"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casengine_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casengine_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})
)

var validate = validator.New()

type Handler struct {
	svc     *service.CaseService
	catalog catalog.Provider
	clock   service.Clock
	logger  *zap.Logger
}

func NewHandler(svc *service.CaseService, cat catalog.Provider, clock service.Clock, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, catalog: cat, clock: clock, logger: logger}
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload any, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}

// respondServiceError maps engine outcomes onto HTTP statuses. Gate
// failures (recoverable, user edits and retries) are 422 with the
// violation list; illegal-state attempts are 409; inconsistencies 500.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, method, endpoint string) {
	var vErr *rules.ValidationError
	if errors.As(err, &vErr) {
		h.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "validation failed",
			"violations": vErr.Violations,
		}, method, endpoint)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found", method, endpoint)
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, domain.ErrFindingConverted),
		errors.Is(err, domain.ErrOrderPaid),
		errors.Is(err, domain.ErrOrderAnnulled),
		errors.Is(err, domain.ErrAnnulTerminal):
		h.respondError(w, http.StatusConflict, err.Error(), method, endpoint)
	case errors.Is(err, domain.ErrNonPositiveAmount),
		errors.Is(err, domain.ErrExceedsBalance),
		errors.Is(err, domain.ErrFuturePayment),
		errors.Is(err, domain.ErrMotiveRequired),
		errors.Is(err, domain.ErrMotiveTooShort):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), method, endpoint)
	case errors.Is(err, domain.ErrTotalsMismatch):
		h.logger.Error("totals mismatch surfaced to API", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, err.Error(), method, endpoint)
	default:
		h.logger.Error("unhandled service error", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", method, endpoint)
	}
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
