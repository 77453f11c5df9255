// Package auth defines the closed role model and the pure access
// policy used to gate rubric management, call uploads, and
// evaluation access. HTTP middleware resolves JWT claims into an
// Actor; everything past that boundary is plain functions.
package auth

import "strings"

// Role is one of the three closed platform roles.
type Role string

const (
	// RoleAdmin manages users, rubrics, and sees everything.
	RoleAdmin Role = "admin"
	// RoleExpert uploads calls and creates evaluations.
	RoleExpert Role = "expert"
	// RoleAgent is the scored representative; read-only over their own calls.
	RoleAgent Role = "agent"
)

// ParseRole normalizes a raw role string into a known Role.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleExpert:
		return RoleExpert, true
	case RoleAgent:
		return RoleAgent, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }
