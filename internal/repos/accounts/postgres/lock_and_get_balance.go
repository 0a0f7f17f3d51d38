package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/crystalstore/internal/repos/accounts"
)

// LockAndGetBalance takes the account's row lock for the duration of the
// caller's transaction, serializing concurrent debits on the same account.
func (r *accountsRepo) LockAndGetBalance(tx *sql.Tx, accountID uint64) (int64, error) {
	var balance int64

	err := tx.QueryRow(`
		SELECT balance
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, accounts.ErrAccountNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}
