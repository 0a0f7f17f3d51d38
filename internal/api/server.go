package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/example/crystalstore/internal/checkout"
)

// NewServer creates and returns a configured *http.Server for the store API.
func NewServer(port uint16, svc LedgerService, carts checkout.Store, allowedOrigins []string) *http.Server {
	mux := NewRouter(svc, carts, allowedOrigins)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
