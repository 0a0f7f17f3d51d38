package accounts

import (
	"context"
	"database/sql"
	"errors"
)

var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrAccountNotFound = errors.New("account not found")

// Accounts owns the stored balance. Balance is only ever mutated inside a
// caller-held transaction so the mutation and the ledger insert commit as one
// unit.
type Accounts interface {
	Exists(tx *sql.Tx, accountID uint64) error
	GetBalance(ctx context.Context, accountID uint64) (int64, error)
	LockAndGetBalance(tx *sql.Tx, accountID uint64) (int64, error)
	IncreaseBalance(tx *sql.Tx, accountID uint64, amountCents int64) error
	DecreaseBalance(tx *sql.Tx, accountID uint64, amountCents int64) error
}
