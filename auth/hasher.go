package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// SHA256Hasher is the default credential hasher: a deterministic, unsalted
// SHA-256 digest encoded as base64. Same input always yields the same digest,
// across calls and process restarts. That determinism is part of the
// Hash/Verify contract; the salted alternative lives in BcryptHasher.
type SHA256Hasher struct{}

var _ Hasher = SHA256Hasher{}

func (SHA256Hasher) Hash(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(secret, digest string) bool {
	computed, _ := h.Hash(secret)
	return computed == digest
}

// BcryptHasher is the salted, cost-tunable alternative. Digests are not
// deterministic; Verify compares instead of re-deriving.
type BcryptHasher struct {
	Cost int
}

var _ Hasher = BcryptHasher{}

func (b BcryptHasher) Hash(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	return string(h), err
}

func (b BcryptHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
