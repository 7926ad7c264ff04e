package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aduanas/casengine/internal/domain"
	"github.com/aduanas/casengine/internal/ledger"
	"github.com/aduanas/casengine/internal/rules"
)

type transitionRequest struct {
	Next string `json:"next" validate:"required"`
}

type annulRequest struct {
	Reason string `json:"reason" validate:"required"`
	User   string `json:"user"`
}

type generateOrderRequest struct {
	DueDate time.Time `json:"due_date" validate:"required"`
}

type paymentRequest struct {
	Amount        int64     `json:"amount" validate:"required,gt=0"`
	Date          time.Time `json:"date" validate:"required"`
	Method        string    `json:"method" validate:"required,oneof=transfer deposit cash check cashier_check other"`
	Bank          string    `json:"bank"`
	ReceiptNumber string    `json:"receipt_number"`
	Notes         string    `json:"notes"`
	RegisteredBy  string    `json:"registered_by" validate:"required"`
}

func (h *Handler) ConvertFinding(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/findings/{id}/convert"))
	defer timer.ObserveDuration()

	acc, err := h.svc.ConvertFinding(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "POST", "/findings/{id}/convert")
		return
	}
	h.respondJSON(w, http.StatusCreated, acc, "POST", "/findings/{id}/convert")
}

func (h *Handler) GetAccusation(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.GetAccusation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "GET", "/accusations/{id}")
		return
	}
	now := h.clock.Now()
	h.respondJSON(w, http.StatusOK, map[string]any{
		"accusation":      acc,
		"effective_state": acc.EffectiveState(now),
		"permissions":     domain.AccusationCapabilities(acc.EffectiveState(now)),
	}, "GET", "/accusations/{id}")
}

func (h *Handler) TransitionAccusation(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body", "POST", "/accusations/{id}/transition")
		return
	}
	acc, err := h.svc.TransitionAccusation(r.Context(), mux.Vars(r)["id"], domain.AccusationState(req.Next))
	if err != nil {
		h.respondServiceError(w, err, "POST", "/accusations/{id}/transition")
		return
	}
	h.respondJSON(w, http.StatusOK, acc, "POST", "/accusations/{id}/transition")
}

func (h *Handler) GetCharge(w http.ResponseWriter, r *http.Request) {
	charge, err := h.svc.GetCharge(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "GET", "/charges/{id}")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"charge":      charge,
		"totals":      ledger.ComputeTotals(charge.LineItems),
		"permissions": domain.ChargeCapabilities(charge.State),
		"issuance":    rules.CanIssueCharge(charge),
	}, "GET", "/charges/{id}")
}

func (h *Handler) TransitionCharge(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body", "POST", "/charges/{id}/transition")
		return
	}
	charge, err := h.svc.TransitionCharge(r.Context(), mux.Vars(r)["id"], domain.ChargeState(req.Next))
	if err != nil {
		h.respondServiceError(w, err, "POST", "/charges/{id}/transition")
		return
	}
	h.respondJSON(w, http.StatusOK, charge, "POST", "/charges/{id}/transition")
}

func (h *Handler) IssueCharge(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/charges/{id}/issue"))
	defer timer.ObserveDuration()

	charge, err := h.svc.IssueCharge(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "POST", "/charges/{id}/issue")
		return
	}
	h.respondJSON(w, http.StatusOK, charge, "POST", "/charges/{id}/issue")
}

func (h *Handler) AnnulCharge(w http.ResponseWriter, r *http.Request) {
	var req annulRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body", "POST", "/charges/{id}/annul")
		return
	}
	charge, err := h.svc.AnnulCharge(r.Context(), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/charges/{id}/annul")
		return
	}
	h.respondJSON(w, http.StatusOK, charge, "POST", "/charges/{id}/annul")
}

func (h *Handler) GenerateOrder(w http.ResponseWriter, r *http.Request) {
	var req generateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body", "POST", "/charges/{id}/orders")
		return
	}
	order, err := h.svc.GeneratePaymentOrder(r.Context(), mux.Vars(r)["id"],
		domain.PaymentOrder{DueDate: req.DueDate})
	if err != nil {
		h.respondServiceError(w, err, "POST", "/charges/{id}/orders")
		return
	}
	h.respondJSON(w, http.StatusCreated, order, "POST", "/charges/{id}/orders")
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "GET", "/orders/{id}")
		return
	}
	now := h.clock.Now()
	h.respondJSON(w, http.StatusOK, map[string]any{
		"order":           order,
		"balance":         order.Balance(),
		"effective_state": order.EffectiveState(now),
		"permissions":     domain.OrderCapabilities(order.EffectiveState(now)),
		"totals":          ledger.ComputeTotals(order.LineItems),
	}, "GET", "/orders/{id}")
}

func (h *Handler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/orders/{id}/payments"))
	defer timer.ObserveDuration()

	var req paymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body", "POST", "/orders/{id}/payments")
		return
	}
	order, err := h.svc.RegisterPayment(r.Context(), mux.Vars(r)["id"], domain.Payment{
		Amount:        req.Amount,
		Date:          req.Date,
		Method:        domain.PaymentMethod(req.Method),
		Bank:          req.Bank,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
		RegisteredBy:  req.RegisteredBy,
	})
	if err != nil {
		h.respondServiceError(w, err, "POST", "/orders/{id}/payments")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]any{
		"order":   order,
		"balance": order.Balance(),
	}, "POST", "/orders/{id}/payments")
}

func (h *Handler) NotifyOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.NotifyOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondServiceError(w, err, "POST", "/orders/{id}/notify")
		return
	}
	h.respondJSON(w, http.StatusOK, order, "POST", "/orders/{id}/notify")
}

func (h *Handler) AnnulOrder(w http.ResponseWriter, r *http.Request) {
	var req annulRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body", "POST", "/orders/{id}/annul")
		return
	}
	order, err := h.svc.AnnulOrder(r.Context(), mux.Vars(r)["id"], req.Reason, req.User)
	if err != nil {
		h.respondServiceError(w, err, "POST", "/orders/{id}/annul")
		return
	}
	h.respondJSON(w, http.StatusOK, order, "POST", "/orders/{id}/annul")
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.catalog.Articles(), "GET", "/catalog/articles")
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, ok := h.catalog.FindArticle(mux.Vars(r)["code"])
	if !ok {
		h.respondError(w, http.StatusNotFound, "article not found", "GET", "/catalog/articles/{code}")
		return
	}
	h.respondJSON(w, http.StatusOK, article, "GET", "/catalog/articles/{code}")
}
