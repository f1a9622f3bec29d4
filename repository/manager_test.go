package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestManagerValidate(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	require.NoError(t, NewManager(db).Validate())
}

func TestManagerInitSchema(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	// setupDB already ran it once; a second run is a no-op
	require.NoError(t, NewManager(db).InitSchema(context.Background()))
}

func TestManagerRunInTx(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	ctx := context.Background()
	mgr := NewManager(db)

	t.Run("commits on success", func(t *testing.T) {
		user := newManager("Gestora", "gestora@example.com")

		err := mgr.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := mgr.Users().CreateTx(ctx, tx, user)
			return err
		})
		require.NoError(t, err)

		found, err := mgr.Users().GetByEmail(ctx, "gestora@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("rolls back when the callback fails", func(t *testing.T) {
		boom := errors.New("boom")

		err := mgr.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := mgr.Users().CreateTx(ctx, tx, newManager("Fantasma", "fantasma@example.com")); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = mgr.Users().GetByEmail(ctx, "fantasma@example.com")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("refuses a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := mgr.RunInTx(cancelled, nil, func(ctx context.Context, tx bun.Tx) error {
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
