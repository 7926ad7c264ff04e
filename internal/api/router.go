package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the engine surface under /api/v1 plus the operational
// endpoints.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/findings/{id}/convert", h.ConvertFinding).Methods("POST")
	v1.HandleFunc("/accusations/{id}", h.GetAccusation).Methods("GET")
	v1.HandleFunc("/accusations/{id}/transition", h.TransitionAccusation).Methods("POST")
	v1.HandleFunc("/charges/{id}", h.GetCharge).Methods("GET")
	v1.HandleFunc("/charges/{id}/transition", h.TransitionCharge).Methods("POST")
	v1.HandleFunc("/charges/{id}/issue", h.IssueCharge).Methods("POST")
	v1.HandleFunc("/charges/{id}/annul", h.AnnulCharge).Methods("POST")
	v1.HandleFunc("/charges/{id}/orders", h.GenerateOrder).Methods("POST")
	v1.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	v1.HandleFunc("/orders/{id}/payments", h.RegisterPayment).Methods("POST")
	v1.HandleFunc("/orders/{id}/notify", h.NotifyOrder).Methods("POST")
	v1.HandleFunc("/orders/{id}/annul", h.AnnulOrder).Methods("POST")
	v1.HandleFunc("/catalog/articles", h.ListArticles).Methods("GET")
	v1.HandleFunc("/catalog/articles/{code}", h.GetArticle).Methods("GET")

	return r
}
