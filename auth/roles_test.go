package auth_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/difurigo/avant-api/auth"
)

func claimsWithRole(subject, role string) *auth.JWTClaims {
	return &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		UserRole:         role,
	}
}

func TestParseRole(t *testing.T) {
	t.Run("accepts the known roles", func(t *testing.T) {
		role, ok := auth.ParseRole("gerente")
		assert.True(t, ok)
		assert.Equal(t, auth.RoleManager, role)

		role, ok = auth.ParseRole("funcionario")
		assert.True(t, ok)
		assert.Equal(t, auth.RoleEmployee, role)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, raw := range []string{"", "admin", "Gerente", "GERENTE"} {
			_, ok := auth.ParseRole(raw)
			assert.False(t, ok, raw)
		}
	})
}

func TestAuthorize(t *testing.T) {
	manager := claimsWithRole("id-1", auth.RoleManager)
	employee := claimsWithRole("id-2", auth.RoleEmployee)

	t.Run("matches the required role", func(t *testing.T) {
		assert.True(t, auth.Authorize(manager, auth.RoleManager))
		assert.True(t, auth.Authorize(employee, auth.RoleEmployee))
	})

	t.Run("rejects a role outside the required set", func(t *testing.T) {
		assert.False(t, auth.Authorize(employee, auth.RoleManager))
		assert.False(t, auth.Authorize(manager, auth.RoleEmployee))
	})

	t.Run("accepts any role among several required", func(t *testing.T) {
		assert.True(t, auth.Authorize(employee, auth.RoleManager, auth.RoleEmployee))
	})

	t.Run("empty required set admits any authenticated identity", func(t *testing.T) {
		assert.True(t, auth.Authorize(manager))
		assert.True(t, auth.Authorize(employee))
	})

	t.Run("a role outside the closed set never passes", func(t *testing.T) {
		intruder := claimsWithRole("id-3", "root")

		assert.False(t, auth.Authorize(intruder))
		assert.False(t, auth.Authorize(intruder, auth.RoleManager))
	})

	t.Run("nil claims never pass", func(t *testing.T) {
		assert.False(t, auth.Authorize(nil))
		assert.False(t, auth.Authorize(nil, auth.RoleManager))
	})
}

func TestIsOwner(t *testing.T) {
	claims := claimsWithRole("id-1", auth.RoleEmployee)

	assert.True(t, auth.IsOwner(claims, "id-1"))
	assert.False(t, auth.IsOwner(claims, "id-2"))
	assert.False(t, auth.IsOwner(claims, ""))
	assert.False(t, auth.IsOwner(nil, "id-1"))
}
