
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countWallets = `-- name: CountWallets :one
SELECT COUNT(*) FROM wallets
`

func (q *Queries) CountWallets(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countWallets)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createWallet = `-- name: CreateWallet :one
INSERT INTO wallets (user_id, balance, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING user_id, balance, version, created_at, updated_at
`

type CreateWalletParams struct {
	UserID    string             `json:"user_id"`
	Balance   pgtype.Numeric     `json:"balance"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateWallet(ctx context.Context, arg CreateWalletParams) (Wallet, error) {
	row := q.db.QueryRow(ctx, createWallet,
		arg.UserID,
		arg.Balance,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Wallet
	err := row.Scan(
		&i.UserID,
		&i.Balance,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByUserID = `-- name: GetWalletByUserID :one
SELECT user_id, balance, version, created_at, updated_at FROM wallets WHERE user_id = $1
`

func (q *Queries) GetWalletByUserID(ctx context.Context, userID string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByUserID, userID)
	var i Wallet
	err := row.Scan(
		&i.UserID,
		&i.Balance,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByUserIDForUpdate = `-- name: GetWalletByUserIDForUpdate :one
SELECT user_id, balance, version, created_at, updated_at FROM wallets WHERE user_id = $1 FOR UPDATE
`

func (q *Queries) GetWalletByUserIDForUpdate(ctx context.Context, userID string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByUserIDForUpdate, userID)
	var i Wallet
	err := row.Scan(
		&i.UserID,
		&i.Balance,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listWallets = `-- name: ListWallets :many
SELECT user_id, balance, version, created_at, updated_at FROM wallets ORDER BY created_at DESC LIMIT $1 OFFSET $2
`

type ListWalletsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListWallets(ctx context.Context, arg ListWalletsParams) ([]Wallet, error) {
	rows, err := q.db.Query(ctx, listWallets, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Wallet{}
	for rows.Next() {
		var i Wallet
		if err := rows.Scan(
			&i.UserID,
			&i.Balance,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateWalletBalance = `-- name: UpdateWalletBalance :exec
UPDATE wallets
SET balance = $2, version = version + 1, updated_at = $3
WHERE user_id = $1
`

type UpdateWalletBalanceParams struct {
	UserID    string             `json:"user_id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateWalletBalance(ctx context.Context, arg UpdateWalletBalanceParams) error {
	_, err := q.db.Exec(ctx, updateWalletBalance, arg.UserID, arg.Balance, arg.UpdatedAt)
	return err
}
