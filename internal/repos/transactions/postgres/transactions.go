package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/example/crystalstore/internal/repos/transactions"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

// ErrAccountMissing surfaces the FK violation when a record references an
// account the insert transaction cannot see.
var ErrAccountMissing = errors.New("transaction references missing account")

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

func (r *transactionsRepo) Insert(tx *sql.Tx, rec transactions.Record) (transactions.Record, error) {
	err := tx.QueryRow(`
		INSERT INTO transactions (account_id, amount_cents, package_id, kind, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rec.AccountID, rec.AmountCents, rec.PackageID, rec.Kind, rec.Status).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23503" { // foreign_key_violation
				return transactions.Record{}, ErrAccountMissing
			}
		}

		return transactions.Record{}, fmt.Errorf("insert transaction: %w", err)
	}

	return rec, nil
}

// ListRecent returns the newest records first; ties on created_at fall back
// to insertion order via id.
func (r *transactionsRepo) ListRecent(ctx context.Context, accountID uint64, limit int) ([]transactions.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, amount_cents, package_id, kind, status, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	recs := make([]transactions.Record, 0, limit)

	for rows.Next() {
		var rec transactions.Record

		err = rows.Scan(&rec.ID, &rec.AccountID, &rec.AmountCents, &rec.PackageID, &rec.Kind, &rec.Status, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		recs = append(recs, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return recs, nil
}
