package accounts

import (
	"database/sql"
	"fmt"

	"github.com/example/crystalstore/internal/repos/accounts"
)

// DecreaseBalance decrements only when the guarded condition still holds, so
// a debit can never push the balance negative even without the row lock.
func (r *accountsRepo) DecreaseBalance(tx *sql.Tx, accountID uint64, amountCents int64) error {
	res, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance - $2, updated_at = now()
		WHERE id = $1
		  AND balance >= $2
	`, accountID, amountCents)
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrInsufficientBalance
	}

	return nil
}
