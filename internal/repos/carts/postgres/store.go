// Package carts persists cart slots server-side so a signed-in account gets
// the same cart across devices. One row per slot key, overwritten wholesale
// on every save (last writer wins, per the storefront's storage contract).
package carts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/crystalstore/internal/checkout"
)

var _ checkout.Store = (*cartsRepo)(nil)

type cartsRepo struct{ db *sql.DB }

func New(db *sql.DB) *cartsRepo {
	return &cartsRepo{db: db}
}

func (r *cartsRepo) Load(ctx context.Context, key string) ([]checkout.CartLine, error) {
	var raw []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT items
		FROM carts
		WHERE cart_key = $1
	`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("load cart slot: %w", err)
	}

	var lines []checkout.CartLine

	err = json.Unmarshal(raw, &lines)
	if err != nil {
		return nil, fmt.Errorf("decode cart slot: %w", err)
	}

	return lines, nil
}

func (r *cartsRepo) Save(ctx context.Context, key string, lines []checkout.CartLine) error {
	if lines == nil {
		lines = []checkout.CartLine{}
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart slot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO carts (cart_key, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cart_key)
		DO UPDATE SET items = EXCLUDED.items, updated_at = now()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("save cart slot: %w", err)
	}

	return nil
}

func (r *cartsRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE cart_key = $1
	`, key)
	if err != nil {
		return fmt.Errorf("delete cart slot: %w", err)
	}

	return nil
}
