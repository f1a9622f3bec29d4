package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/difurigo/avant-api/auth"
)

func TestSHA256Hasher(t *testing.T) {
	hasher := auth.SHA256Hasher{}

	t.Run("hash then verify round trips", func(t *testing.T) {
		for _, secret := range []string{"s3cret!", "", "paçoca-❤", "a very long passphrase with spaces"} {
			digest, err := hasher.Hash(secret)
			require.NoError(t, err)
			assert.NotEqual(t, secret, digest)
			assert.True(t, hasher.Verify(secret, digest))
		}
	})

	t.Run("is deterministic across calls", func(t *testing.T) {
		first, err := hasher.Hash("hunter2")
		require.NoError(t, err)

		second, err := hasher.Hash("hunter2")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rejects a different secret", func(t *testing.T) {
		digest, err := hasher.Hash("correct horse")
		require.NoError(t, err)

		assert.False(t, hasher.Verify("battery staple", digest))
	})

	t.Run("rejects the digest used as secret", func(t *testing.T) {
		digest, err := hasher.Hash("original")
		require.NoError(t, err)

		assert.False(t, hasher.Verify(digest, digest))
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := auth.BcryptHasher{Cost: 4}

	t.Run("hash then verify round trips", func(t *testing.T) {
		digest, err := hasher.Hash("s3cret!")
		require.NoError(t, err)

		assert.True(t, hasher.Verify("s3cret!", digest))
		assert.False(t, hasher.Verify("wrong", digest))
	})

	t.Run("is salted", func(t *testing.T) {
		first, err := hasher.Hash("same input")
		require.NoError(t, err)

		second, err := hasher.Hash("same input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
