package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/example/crystalstore/internal/checkout"
	"github.com/example/crystalstore/internal/money"
)

// GetBalanceHandler serves GET /api/user/{userId}/balance.
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), accountID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId":  accountID,
		"balance": money.FormatCents(balance),
	})
}

type creditRequest struct {
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

// CreditHandler serves POST /api/user/{userId}/credit: the add-funds hook
// invoked by the external payment flow after a confirmed top-up.
func (h *HandlerProvider) CreditHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req creditRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	amountCents, err := money.ParseCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	reference := req.Reference
	if reference == "" {
		reference = "DEPOSIT"
	}

	res, err := h.svc.Credit(r.Context(), accountID, amountCents, reference)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"newBalance":  money.FormatCents(res.NewBalanceCents),
		"transaction": toTxResponse(res.Transaction),
	})
}

type debitRequest struct {
	Amount    string `json:"amount"`
	PackageID string `json:"packageId"`
	Kind      string `json:"kind"`
}

// DebitHandler serves POST /api/user/{userId}/debit: the bank-payment hook
// that charges a package purchase (or withdrawal) against the stored balance.
func (h *HandlerProvider) DebitHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req debitRequest

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.PackageID == "" {
		writeError(w, http.StatusBadRequest, "packageId required")
		return
	}

	amountCents, err := money.ParseCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	kind, err := parseDebitKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Debit(r.Context(), accountID, amountCents, req.PackageID, kind)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"newBalance":  money.FormatCents(res.NewBalanceCents),
		"transaction": toTxResponse(res.Transaction),
	})
}

// ListTransactionsHandler serves GET /api/user/{userId}/transactions?limit=N.
func (h *HandlerProvider) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	recs, err := h.svc.ListTransactions(r.Context(), accountID, limit)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	out := make([]txResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toTxResponse(rec))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetCartHandler serves GET /api/user/{userId}/cart: the persisted slot as a
// line array, empty array when nothing is stored.
func (h *HandlerProvider) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.carts.Load(r.Context(), cartSlotKey(accountID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	if lines == nil {
		lines = []checkout.CartLine{}
	}

	writeJSON(w, http.StatusOK, lines)
}

// PutCartHandler serves PUT /api/user/{userId}/cart: wholesale overwrite of
// the slot, last writer wins.
func (h *HandlerProvider) PutCartHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var lines []checkout.CartLine

	err = json.NewDecoder(r.Body).Decode(&lines)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err = h.carts.Save(r.Context(), cartSlotKey(accountID), lines)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// DeleteCartHandler serves DELETE /api/user/{userId}/cart.
func (h *HandlerProvider) DeleteCartHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.carts.Delete(r.Context(), cartSlotKey(accountID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func cartSlotKey(accountID uint64) string {
	return checkout.CartKey(strconv.FormatUint(accountID, 10))
}
