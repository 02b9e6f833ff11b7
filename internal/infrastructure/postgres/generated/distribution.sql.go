
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createDistribution = `-- name: CreateDistribution :one
INSERT INTO distributions (id, project_id, period, investor_pool, funding_base, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, project_id, period, investor_pool, funding_base, created_at
`

type CreateDistributionParams struct {
	ID           string             `json:"id"`
	ProjectID    string             `json:"project_id"`
	Period       string             `json:"period"`
	InvestorPool pgtype.Numeric     `json:"investor_pool"`
	FundingBase  pgtype.Numeric     `json:"funding_base"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateDistribution(ctx context.Context, arg CreateDistributionParams) (Distribution, error) {
	row := q.db.QueryRow(ctx, createDistribution,
		arg.ID,
		arg.ProjectID,
		arg.Period,
		arg.InvestorPool,
		arg.FundingBase,
		arg.CreatedAt,
	)
	var i Distribution
	err := row.Scan(
		&i.ID,
		&i.ProjectID,
		&i.Period,
		&i.InvestorPool,
		&i.FundingBase,
		&i.CreatedAt,
	)
	return i, err
}

const getDistributionByProjectPeriod = `-- name: GetDistributionByProjectPeriod :one
SELECT id, project_id, period, investor_pool, funding_base, created_at FROM distributions WHERE project_id = $1 AND period = $2
`

type GetDistributionByProjectPeriodParams struct {
	ProjectID string `json:"project_id"`
	Period    string `json:"period"`
}

func (q *Queries) GetDistributionByProjectPeriod(ctx context.Context, arg GetDistributionByProjectPeriodParams) (Distribution, error) {
	row := q.db.QueryRow(ctx, getDistributionByProjectPeriod, arg.ProjectID, arg.Period)
	var i Distribution
	err := row.Scan(
		&i.ID,
		&i.ProjectID,
		&i.Period,
		&i.InvestorPool,
		&i.FundingBase,
		&i.CreatedAt,
	)
	return i, err
}

const listDistributionsByProject = `-- name: ListDistributionsByProject :many
SELECT id, project_id, period, investor_pool, funding_base, created_at FROM distributions WHERE project_id = $1 ORDER BY period DESC LIMIT $2 OFFSET $3
`

type ListDistributionsByProjectParams struct {
	ProjectID string `json:"project_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListDistributionsByProject(ctx context.Context, arg ListDistributionsByProjectParams) ([]Distribution, error) {
	rows, err := q.db.Query(ctx, listDistributionsByProject, arg.ProjectID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Distribution{}
	for rows.Next() {
		var i Distribution
		if err := rows.Scan(
			&i.ID,
			&i.ProjectID,
			&i.Period,
			&i.InvestorPool,
			&i.FundingBase,
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
