package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/crystalstore/internal/checkout"
	"github.com/example/crystalstore/internal/money"
	"github.com/example/crystalstore/internal/services/ledger"
)

// LedgerService is what the handlers need from the ledger core.
type LedgerService interface {
	Credit(ctx context.Context, accountID uint64, amountCents int64, reference string) (*ledger.Result, error)
	Debit(ctx context.Context, accountID uint64, amountCents int64, reference string, kind ledger.Kind) (*ledger.Result, error)
	GetBalance(ctx context.Context, accountID uint64) (int64, error)
	ListTransactions(ctx context.Context, accountID uint64, limit int) ([]ledger.Record, error)
}

// HandlerProvider wraps the ledger service and the cart slot store and
// exposes HTTP handlers.
type HandlerProvider struct {
	svc   LedgerService
	carts checkout.Store
}

// NewHandler returns a new Handler provider.
func NewHandler(svc LedgerService, carts checkout.Store) *HandlerProvider {
	return &HandlerProvider{svc: svc, carts: carts}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseAccountIDFromPath reads `{userId}` from chi routes like:
//
//	GET  /api/user/{userId}/balance
//	POST /api/user/{userId}/debit
func parseAccountIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

func parseDebitKind(s string) (ledger.Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "PURCHASE":
		return ledger.KindPurchase, nil
	case "WITHDRAWAL":
		return ledger.KindWithdrawal, nil
	default:
		return "", fmt.Errorf("invalid kind")
	}
}

// txResponse is the wire shape of a ledger record; amounts leave the service
// as two-decimal strings.
type txResponse struct {
	ID        int64  `json:"id"`
	AccountID uint64 `json:"accountId"`
	Amount    string `json:"amount"`
	PackageID string `json:"packageId"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toTxResponse(rec ledger.Record) txResponse {
	return txResponse{
		ID:        rec.ID,
		AccountID: rec.AccountID,
		Amount:    money.FormatCents(rec.AmountCents),
		PackageID: rec.PackageID,
		Type:      string(rec.Kind),
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// writeLedgerError maps ledger errors onto statuses: unknown account 404,
// bad input 400, insufficient balance 409 (carrying the shortfall), anything
// else a generic 500 with no partial state exposed.
func writeLedgerError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":          "Insufficient balance",
			"currentBalance": money.FormatCents(insufficient.CurrentCents),
			"requiredAmount": money.FormatCents(insufficient.RequestedCents),
		})

		return
	}

	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidReference),
		errors.Is(err, ledger.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "Invalid input")
	default:
		slog.Error("ledger operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Payment could not be processed, try again")
	}
}
