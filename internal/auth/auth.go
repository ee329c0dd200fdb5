// Package auth verifies bearer tokens and produces principals. Two verifier
// variants exist behind one interface: locally-signed JWTs and managed
// identity-provider ID tokens.
package auth

import (
	"context"
	"errors"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

// ParseRole maps a claim string onto the closed role enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated identity derived from a verified token.
type Principal struct {
	UID   string
	Email string
	Role  Role
}

var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier authenticates a bearer token into a principal.
type Verifier interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}

// Authorize is an exact-match role check; there is no role hierarchy.
func Authorize(p Principal, required Role) bool {
	return p.Role == required
}
