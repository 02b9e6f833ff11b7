
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createInvestment = `-- name: CreateInvestment :one
INSERT INTO investments (id, investor_id, project_id, amount, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, investor_id, project_id, amount, created_at
`

type CreateInvestmentParams struct {
	ID         string             `json:"id"`
	InvestorID string             `json:"investor_id"`
	ProjectID  string             `json:"project_id"`
	Amount     pgtype.Numeric     `json:"amount"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateInvestment(ctx context.Context, arg CreateInvestmentParams) (Investment, error) {
	row := q.db.QueryRow(ctx, createInvestment,
		arg.ID,
		arg.InvestorID,
		arg.ProjectID,
		arg.Amount,
		arg.CreatedAt,
	)
	var i Investment
	err := row.Scan(
		&i.ID,
		&i.InvestorID,
		&i.ProjectID,
		&i.Amount,
		&i.CreatedAt,
	)
	return i, err
}

const listInvestmentsByInvestor = `-- name: ListInvestmentsByInvestor :many
SELECT id, investor_id, project_id, amount, created_at FROM investments WHERE investor_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
`

type ListInvestmentsByInvestorParams struct {
	InvestorID string `json:"investor_id"`
	Limit      int32  `json:"limit"`
	Offset     int32  `json:"offset"`
}

func (q *Queries) ListInvestmentsByInvestor(ctx context.Context, arg ListInvestmentsByInvestorParams) ([]Investment, error) {
	rows, err := q.db.Query(ctx, listInvestmentsByInvestor, arg.InvestorID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Investment{}
	for rows.Next() {
		var i Investment
		if err := rows.Scan(
			&i.ID,
			&i.InvestorID,
			&i.ProjectID,
			&i.Amount,
			&i.CreatedAt,
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

const listInvestmentsByProject = `-- name: ListInvestmentsByProject :many
SELECT id, investor_id, project_id, amount, created_at FROM investments WHERE project_id = $1 ORDER BY created_at ASC
`

func (q *Queries) ListInvestmentsByProject(ctx context.Context, projectID string) ([]Investment, error) {
	rows, err := q.db.Query(ctx, listInvestmentsByProject, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Investment{}
	for rows.Next() {
		var i Investment
		if err := rows.Scan(
			&i.ID,
			&i.InvestorID,
			&i.ProjectID,
			&i.Amount,
			&i.CreatedAt,
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

const sumInvestmentsByProject = `-- name: SumInvestmentsByProject :one
SELECT COALESCE(SUM(amount), 0)::NUMERIC AS total FROM investments WHERE project_id = $1
`

func (q *Queries) SumInvestmentsByProject(ctx context.Context, projectID string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumInvestmentsByProject, projectID)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}
