// Package ledger performs balance changes and appends the matching
// transaction record as one atomic unit of work. A failure anywhere inside
// the unit rolls the whole unit back; balance and ledger are never out of
// step.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/crystalstore/internal/infra/pgutils"
	"github.com/example/crystalstore/internal/repos/accounts"
	pgaccounts "github.com/example/crystalstore/internal/repos/accounts/postgres"
	"github.com/example/crystalstore/internal/repos/transactions"
	pgtransactions "github.com/example/crystalstore/internal/repos/transactions/postgres"
)

type Service struct {
	db       *sql.DB
	accounts accounts.Accounts
	ledger   transactions.Transactions
}

func New(db *sql.DB) *Service {
	return &Service{
		db:       db,
		accounts: pgaccounts.New(db),
		ledger:   pgtransactions.New(db),
	}
}

// Credit increases the balance and appends a COMPLETED DEPOSIT record.
// Reference is the free-form ledger tag ("DEPOSIT" for plain top-ups).
func (s *Service) Credit(ctx context.Context, accountID uint64, amountCents int64, reference string) (*Result, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if reference == "" {
		return nil, ErrInvalidReference
	}

	return s.apply(ctx, accountID, amountCents, reference, KindDeposit)
}

// Debit decreases the balance and appends a COMPLETED record of the given
// kind (WITHDRAWAL or PURCHASE). The sufficiency check runs against the
// row-locked balance, so two concurrent debits cannot both pass it.
func (s *Service) Debit(ctx context.Context, accountID uint64, amountCents int64, reference string, kind Kind) (*Result, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if reference == "" {
		return nil, ErrInvalidReference
	}
	if kind != KindWithdrawal && kind != KindPurchase {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}

	return s.apply(ctx, accountID, amountCents, reference, kind)
}

// apply runs the full flow in a single DB transaction:
//
// 1) Ensure the account exists.
// 2) Lock the account row (FOR UPDATE).
// 3) Mutate the balance via the repo.
// 4) Append the ledger record.
func (s *Service) apply(ctx context.Context, accountID uint64, amountCents int64, reference string, kind Kind) (*Result, error) {
	var res Result

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Exists(tx, accountID)
		if err != nil {
			return fmt.Errorf("check account exists: %w", err)
		}

		balance, err := s.accounts.LockAndGetBalance(tx, accountID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		switch kind {
		case KindDeposit:
			err = s.accounts.IncreaseBalance(tx, accountID, amountCents)
			if err != nil {
				return fmt.Errorf("increase balance: %w", err)
			}

			res.NewBalanceCents = balance + amountCents

		case KindWithdrawal, KindPurchase:
			// pre-check against the locked balance
			if balance < amountCents {
				return &InsufficientBalanceError{
					CurrentCents:   balance,
					RequestedCents: amountCents,
				}
			}

			err = s.accounts.DecreaseBalance(tx, accountID, amountCents)
			if err != nil {
				return fmt.Errorf("decrease balance: %w", err)
			}

			res.NewBalanceCents = balance - amountCents

		default:
			return fmt.Errorf("%w: %s", ErrInvalidKind, kind)
		}

		rec, err := s.ledger.Insert(tx, transactions.Record{
			AccountID:   accountID,
			AmountCents: amountCents,
			PackageID:   reference,
			Kind:        kind,
			Status:      StatusCompleted,
		})
		if err != nil {
			return fmt.Errorf("insert ledger record: %w", err)
		}

		res.Transaction = rec

		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %v", ErrAtomicity, err)
	}

	return &res, nil
}

// GetBalance returns the account's balance without taking locks.
func (s *Service) GetBalance(ctx context.Context, accountID uint64) (int64, error) {
	balance, err := s.accounts.GetBalance(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// ListTransactions returns the newest records first, ties broken by
// insertion order. Limit defaults to 10 and is capped at 100.
func (s *Service) ListTransactions(ctx context.Context, accountID uint64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	recs, err := s.ledger.ListRecent(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return recs, nil
}

func isDomainErr(err error) bool {
	var insufficient *InsufficientBalanceError

	return errors.Is(err, accounts.ErrAccountNotFound) ||
		errors.Is(err, accounts.ErrInsufficientBalance) ||
		errors.As(err, &insufficient) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidKind)
}
