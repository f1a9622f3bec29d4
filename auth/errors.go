package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// response shape cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrTokenInvalid is the uniform rejection for tampered, mis-issued,
// mis-audienced or expired tokens.
var ErrTokenInvalid = errors.New("invalid or expired token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_INVALID")

// ErrEmailTaken is returned when a registration collides on email, whether
// caught by the pre-check or by the storage uniqueness constraint. The wire
// contract treats it as a bad request, not a conflict status.
var ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMAIL_TAKEN")

// ErrUnknownTeam is returned when an employee registration references a team
// that does not exist.
var ErrUnknownTeam = errors.New("team does not exist", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode("UNKNOWN_TEAM")

// ErrAccessDenied signals a role or ownership mismatch.
var ErrAccessDenied = errors.New("access denied", errors.CategoryAuthz).
	WithCode(errors.CodeForbidden).
	WithTextCode("ACCESS_DENIED")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// IsUniqueViolation will check for a storage-level uniqueness constraint
// violation. The pre-check-then-insert sequence is not atomic, so a racing
// duplicate registration surfaces here instead of at the pre-check.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
