package domain

import (
	"context"
	"errors"
	"time"
)

// User represents an authenticated caller. Authentication itself happens
// outside this service; the adapter layer extracts the identity and role
// from the token and the engine trusts them.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// Role represents a caller's access level
type Role string

const (
	// RoleStaff approves money movements and manages projects
	RoleStaff Role = "staff"

	// RolePartner raises projects but cannot approve money movements
	RolePartner Role = "partner"

	// RoleInvestor deposits, withdraws and commits investments
	RoleInvestor Role = "investor"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleStaff:    true,
	RolePartner:  true,
	RoleInvestor: true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanApprove checks if the role can settle pending deposits and withdrawals
func (r Role) CanApprove() bool {
	return r == RoleStaff
}

// CanCreateProject checks if the role can raise a new project
func (r Role) CanCreateProject() bool {
	return r == RoleStaff || r == RolePartner
}

// CanDistribute checks if the role can trigger profit distributions
func (r Role) CanDistribute() bool {
	return r == RoleStaff
}

// CanInvest checks if the role can commit wallet funds into a project
func (r Role) CanInvest() bool {
	return r.IsValid()
}

type userContextKey struct{}

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	return user, ok
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
