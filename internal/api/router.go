package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/example/crystalstore/internal/checkout"
)

// NewRouter constructs the API handler tree. The storefront runs in a
// browser on a different origin, so the whole tree is wrapped in a CORS
// handler restricted to the configured origins.
func NewRouter(svc LedgerService, carts checkout.Store, allowedOrigins []string) http.Handler {
	h := NewHandler(svc, carts)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/user/{userId}", func(r chi.Router) {
		r.Get("/balance", h.GetBalanceHandler)
		r.Post("/credit", h.CreditHandler)
		r.Post("/debit", h.DebitHandler)
		r.Get("/transactions", h.ListTransactionsHandler)

		r.Get("/cart", h.GetCartHandler)
		r.Put("/cart", h.PutCartHandler)
		r.Delete("/cart", h.DeleteCartHandler)
	})

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}
