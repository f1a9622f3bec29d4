package auth

import "github.com/difurigo/avant-api/model"

// Role is the closed set of authorization categories.
type Role = model.Role

const (
	RoleManager  = model.RoleManager
	RoleEmployee = model.RoleEmployee
)

// ParseRole maps a raw role string onto the closed set.
func ParseRole(s string) (Role, bool) {
	switch s {
	case RoleManager:
		return RoleManager, true
	case RoleEmployee:
		return RoleEmployee, true
	default:
		return "", false
	}
}

// Authorize reports whether the claims' role is in the required set. A role
// claim outside the closed set never passes, even when the required set is
// empty. An empty required set means any authenticated identity may pass.
// Ownership checks (claims subject vs target id) are the endpoint's concern,
// not this one.
func Authorize(claims AuthClaims, required ...Role) bool {
	if claims == nil {
		return false
	}

	if _, ok := ParseRole(claims.Role()); !ok {
		return false
	}

	if len(required) == 0 {
		return true
	}

	for _, role := range required {
		if claims.HasRole(role) {
			return true
		}
	}

	return false
}

// IsOwner reports whether the claims subject matches the target identity id.
func IsOwner(claims AuthClaims, targetID string) bool {
	return claims != nil && targetID != "" && claims.Subject() == targetID
}
