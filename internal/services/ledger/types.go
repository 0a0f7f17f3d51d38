package ledger

import (
	"errors"
	"fmt"

	"github.com/example/crystalstore/internal/money"
	"github.com/example/crystalstore/internal/repos/accounts"
	"github.com/example/crystalstore/internal/repos/transactions"
)

// Re-exported ledger vocabulary so callers don't reach into the repo layer.
type (
	Kind   = transactions.Kind
	Status = transactions.Status
	Record = transactions.Record
)

const (
	KindDeposit    = transactions.KindDeposit
	KindWithdrawal = transactions.KindWithdrawal
	KindPurchase   = transactions.KindPurchase

	StatusCompleted = transactions.StatusCompleted
)

var (
	ErrAccountNotFound  = accounts.ErrAccountNotFound
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidKind      = errors.New("invalid transaction kind")

	// ErrAtomicity wraps infrastructure failures of the combined
	// balance+ledger write. The unit was rolled back; state is unchanged.
	ErrAtomicity = errors.New("atomic unit failed")
)

// InsufficientBalanceError carries the shortfall so the UI can prompt a
// top-up. It matches accounts.ErrInsufficientBalance via errors.Is.
type InsufficientBalanceError struct {
	CurrentCents   int64
	RequestedCents int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %s, need %s",
		money.FormatCents(e.CurrentCents), money.FormatCents(e.RequestedCents))
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == accounts.ErrInsufficientBalance
}

// Result of a completed atomic unit: the balance after the mutation and the
// ledger record created with it.
type Result struct {
	NewBalanceCents int64
	Transaction     Record
}
