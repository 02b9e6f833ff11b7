
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const activateProject = `-- name: ActivateProject :exec
UPDATE projects
SET status = $2, activated_at = $3, updated_at = $4
WHERE id = $1
`

type ActivateProjectParams struct {
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	ActivatedAt pgtype.Timestamptz `json:"activated_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) ActivateProject(ctx context.Context, arg ActivateProjectParams) error {
	_, err := q.db.Exec(ctx, activateProject,
		arg.ID,
		arg.Status,
		arg.ActivatedAt,
		arg.UpdatedAt,
	)
	return err
}

const createProject = `-- name: CreateProject :one
INSERT INTO projects (id, partner_id, name, funding_goal, current_funding, expected_return, status, activated_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, partner_id, name, funding_goal, current_funding, expected_return, status, activated_at, created_at, updated_at
`

type CreateProjectParams struct {
	ID             string             `json:"id"`
	PartnerID      string             `json:"partner_id"`
	Name           string             `json:"name"`
	FundingGoal    pgtype.Numeric     `json:"funding_goal"`
	CurrentFunding pgtype.Numeric     `json:"current_funding"`
	ExpectedReturn pgtype.Numeric     `json:"expected_return"`
	Status         string             `json:"status"`
	ActivatedAt    pgtype.Timestamptz `json:"activated_at"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject,
		arg.ID,
		arg.PartnerID,
		arg.Name,
		arg.FundingGoal,
		arg.CurrentFunding,
		arg.ExpectedReturn,
		arg.Status,
		arg.ActivatedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.PartnerID,
		&i.Name,
		&i.FundingGoal,
		&i.CurrentFunding,
		&i.ExpectedReturn,
		&i.Status,
		&i.ActivatedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProjectByID = `-- name: GetProjectByID :one
SELECT id, partner_id, name, funding_goal, current_funding, expected_return, status, activated_at, created_at, updated_at FROM projects WHERE id = $1
`

func (q *Queries) GetProjectByID(ctx context.Context, id string) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByID, id)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.PartnerID,
		&i.Name,
		&i.FundingGoal,
		&i.CurrentFunding,
		&i.ExpectedReturn,
		&i.Status,
		&i.ActivatedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProjectByIDForUpdate = `-- name: GetProjectByIDForUpdate :one
SELECT id, partner_id, name, funding_goal, current_funding, expected_return, status, activated_at, created_at, updated_at FROM projects WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetProjectByIDForUpdate(ctx context.Context, id string) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByIDForUpdate, id)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.PartnerID,
		&i.Name,
		&i.FundingGoal,
		&i.CurrentFunding,
		&i.ExpectedReturn,
		&i.Status,
		&i.ActivatedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listProjects = `-- name: ListProjects :many
SELECT id, partner_id, name, funding_goal, current_funding, expected_return, status, activated_at, created_at, updated_at FROM projects ORDER BY created_at DESC LIMIT $1 OFFSET $2
`

type ListProjectsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]Project, error) {
	rows, err := q.db.Query(ctx, listProjects, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Project{}
	for rows.Next() {
		var i Project
		if err := rows.Scan(
			&i.ID,
			&i.PartnerID,
			&i.Name,
			&i.FundingGoal,
			&i.CurrentFunding,
			&i.ExpectedReturn,
			&i.Status,
			&i.ActivatedAt,
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

const updateProjectFunding = `-- name: UpdateProjectFunding :exec
UPDATE projects
SET current_funding = $2, updated_at = $3
WHERE id = $1
`

type UpdateProjectFundingParams struct {
	ID             string             `json:"id"`
	CurrentFunding pgtype.Numeric     `json:"current_funding"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateProjectFunding(ctx context.Context, arg UpdateProjectFundingParams) error {
	_, err := q.db.Exec(ctx, updateProjectFunding, arg.ID, arg.CurrentFunding, arg.UpdatedAt)
	return err
}

const updateProjectStatus = `-- name: UpdateProjectStatus :exec
UPDATE projects
SET status = $2, updated_at = $3
WHERE id = $1
`

type UpdateProjectStatusParams struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateProjectStatus(ctx context.Context, arg UpdateProjectStatusParams) error {
	_, err := q.db.Exec(ctx, updateProjectStatus, arg.ID, arg.Status, arg.UpdatedAt)
	return err
}
