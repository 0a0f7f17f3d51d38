package transactions

import (
	"context"
	"database/sql"
	"time"
)

// Kind classifies a balance-affecting event.
type Kind string

const (
	KindDeposit    Kind = "DEPOSIT"
	KindWithdrawal Kind = "WITHDRAWAL"
	KindPurchase   Kind = "PURCHASE"
)

// Status of a ledger record. The core only ever writes StatusCompleted;
// PENDING and FAILED exist in the schema for external flows but no code path
// here creates or transitions them.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Record is one immutable ledger entry. Amount is always a positive
// magnitude in cents; Kind says which direction it moved the balance.
type Record struct {
	ID          int64     `json:"id"`
	AccountID   uint64    `json:"accountId"`
	AmountCents int64     `json:"-"`
	PackageID   string    `json:"packageId"`
	Kind        Kind      `json:"type"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Transactions is the append-only ledger. Insert runs inside the caller's
// transaction so it commits or aborts together with the balance mutation.
type Transactions interface {
	Insert(tx *sql.Tx, rec Record) (Record, error)
	ListRecent(ctx context.Context, accountID uint64, limit int) ([]Record, error)
}
