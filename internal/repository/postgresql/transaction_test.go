package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx through embedding; only its presence on the
// context matters here.
type fakeTx struct {
	pgx.Tx
}

func TestRunTx_JoinsAmbientTransaction(t *testing.T) {
	// A nil pool would panic the moment a second transaction was begun, so
	// this also proves the nested call never reaches the database.
	m := NewTxManager(nil)

	ambient := fakeTx{}
	ctx := context.WithValue(context.Background(), "tx", ambient)

	called := false
	err := m.RunTx(ctx, func(txCtx context.Context) error {
		called = true
		// The ambient transaction flows through unchanged.
		assert.Equal(t, ambient, txCtx.Value("tx"))

		// Re-entering joins again instead of beginning transaction two.
		return m.RunTx(txCtx, func(innerCtx context.Context) error {
			assert.Equal(t, ambient, innerCtx.Value("tx"))
			return nil
		})
	})
	require.NoError(t, err)
	assert.True(t, called)
}
