package localnet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hask/internal/ledger"
)

func mustAccount(t *testing.T, l *Ledger, hint string, fund uint64) ledger.Account {
	t.Helper()
	acct, err := l.CreateAccount(context.Background(), hint, fund)
	require.NoError(t, err)
	return acct
}

func mustAsset(t *testing.T, l *Ledger, sender string, total uint64) ledger.AssetResult {
	t.Helper()
	res, err := l.CreateAsset(context.Background(), ledger.CreateAssetParams{
		Sender:   sender,
		Name:     "TEST",
		UnitName: "TST",
		Total:    total,
	})
	require.NoError(t, err)
	return res
}

func TestCreateAccount(t *testing.T) {
	l := New()

	a := mustAccount(t, l, "alice", 10)
	b := mustAccount(t, l, "bob", 10)

	assert.NotEmpty(t, a.Address)
	assert.NotEmpty(t, a.Mnemonic)
	assert.NotEqual(t, a.Address, b.Address)
}

func TestCreateAsset(t *testing.T) {
	l := New()
	acct := mustAccount(t, l, "alice", 10)

	res := mustAsset(t, l, acct.Address, 5)
	assert.GreaterOrEqual(t, res.AssetID, uint64(1001))
	assert.NotEmpty(t, res.TxID)
	assert.Equal(t, uint64(5), l.Holding(acct.Address, res.AssetID), "creator holds the full supply")
	assert.True(t, l.TransactionConfirmed(context.Background(), res.TxID))

	second := mustAsset(t, l, acct.Address, 1)
	assert.Equal(t, res.AssetID+1, second.AssetID)
}

func TestCreateAssetRejectsUnknownSender(t *testing.T) {
	l := New()
	_, err := l.CreateAsset(context.Background(), ledger.CreateAssetParams{Sender: "NOBODY", Name: "X", UnitName: "X", Total: 1})
	assert.True(t, ledger.HasCode(err, ledger.CodeRejected))
}

func TestOptIn(t *testing.T) {
	ctx := context.Background()
	l := New()
	alice := mustAccount(t, l, "alice", 10)
	bob := mustAccount(t, l, "bob", 10)
	res := mustAsset(t, l, alice.Address, 1)

	txID, err := l.OptIn(ctx, bob.Address, res.AssetID)
	require.NoError(t, err)
	assert.NotEmpty(t, txID)
	assert.Zero(t, l.Holding(bob.Address, res.AssetID))

	_, err = l.OptIn(ctx, bob.Address, res.AssetID)
	assert.True(t, ledger.HasCode(err, ledger.CodeAlreadyOptedIn))

	_, err = l.OptIn(ctx, bob.Address, 9999)
	assert.True(t, ledger.HasCode(err, ledger.CodeNotFound))
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	l := New()
	alice := mustAccount(t, l, "alice", 10)
	bob := mustAccount(t, l, "bob", 10)
	res := mustAsset(t, l, alice.Address, 3)

	t.Run("receiver must be opted in", func(t *testing.T) {
		_, err := l.Transfer(ctx, ledger.TransferParams{
			Sender: alice.Address, Receiver: bob.Address, AssetID: res.AssetID, Amount: 1,
		})
		assert.True(t, ledger.HasCode(err, ledger.CodeRejected))
	})

	_, err := l.OptIn(ctx, bob.Address, res.AssetID)
	require.NoError(t, err)

	t.Run("moves units and confirms", func(t *testing.T) {
		txID, err := l.Transfer(ctx, ledger.TransferParams{
			Sender: alice.Address, Receiver: bob.Address, AssetID: res.AssetID, Amount: 2,
		})
		require.NoError(t, err)
		assert.True(t, l.TransactionConfirmed(ctx, txID))
		assert.Equal(t, uint64(1), l.Holding(alice.Address, res.AssetID))
		assert.Equal(t, uint64(2), l.Holding(bob.Address, res.AssetID))
	})

	t.Run("insufficient balance is rejected", func(t *testing.T) {
		_, err := l.Transfer(ctx, ledger.TransferParams{
			Sender: alice.Address, Receiver: bob.Address, AssetID: res.AssetID, Amount: 10,
		})
		assert.True(t, ledger.HasCode(err, ledger.CodeRejected))
		assert.Equal(t, uint64(1), l.Holding(alice.Address, res.AssetID), "a rejected transfer moves nothing")
	})
}

func TestTransactionConfirmed(t *testing.T) {
	l := New()
	assert.False(t, l.TransactionConfirmed(context.Background(), "UNKNOWN"))
}

func TestCancelledContext(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.CreateAccount(ctx, "alice", 10)
	assert.True(t, ledger.HasCode(err, ledger.CodeTimeout))

	_, err = l.OptIn(ctx, "ADDR", 1001)
	assert.True(t, ledger.HasCode(err, ledger.CodeTimeout))
}
