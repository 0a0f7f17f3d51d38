package accounts

import (
	"database/sql"
	"fmt"
)

func (r *accountsRepo) IncreaseBalance(tx *sql.Tx, accountID uint64, amountCents int64) error {
	_, err := tx.Exec(`
		UPDATE accounts
		SET balance = balance + $2, updated_at = now()
		WHERE id = $1
	`, accountID, amountCents)
	if err != nil {
		return fmt.Errorf("increase balance: %w", err)
	}

	return nil
}
