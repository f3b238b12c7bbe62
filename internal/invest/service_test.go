package invest_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hask/internal/asset"
	"hask/internal/invest"
	"hask/internal/ledger/localnet"
	"hask/internal/notification"
	"hask/internal/profile"
	dErrors "hask/pkg/domain-errors"
)

type fixture struct {
	svc      *invest.Service
	profiles *profile.Registry
	gateway  *localnet.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := localnet.New()
	profiles := profile.NewRegistry(profile.NewInMemory(), nil, logger, nil)
	issuer := asset.NewIssuer(profiles, gateway, "https://example.com/metadata.json", logger, nil)
	notifications := notification.NewLedger(notification.NewInMemory(), logger)
	svc := invest.NewService(profiles, issuer, notifications, gateway, nil, logger, nil, invest.Config{
		ExplorerBase: "https://lora.algokit.io/localnet",
		DefaultFund:  10,
	})
	return &fixture{svc: svc, profiles: profiles, gateway: gateway}
}

func (f *fixture) register(t *testing.T, username string) {
	t.Helper()
	_, err := f.profiles.Register(context.Background(), profile.RegisterParams{
		Username: username,
		Handle:   "@" + username,
		Name:     username,
		Country:  "Portugal",
	})
	require.NoError(t, err)
}

func (f *fixture) provision(t *testing.T, username string) string {
	t.Helper()
	res, err := f.svc.ProvisionAccount(context.Background(), username, 0)
	require.NoError(t, err)
	return res.Address
}

func TestProvisionAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")

	first, err := f.svc.ProvisionAccount(ctx, "alice", 0)
	require.NoError(t, err)
	assert.True(t, first.Funded)
	assert.NotEmpty(t, first.Address)
	assert.Equal(t, uint64(10), first.Balance, "zero fund falls back to the configured default")

	again, err := f.svc.ProvisionAccount(ctx, "alice", 50)
	require.NoError(t, err)
	assert.False(t, again.Funded, "re-provisioning is a read, not a second funding")
	assert.Equal(t, first.Address, again.Address)

	_, err = f.svc.ProvisionAccount(ctx, "ghost", 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestTokenizeProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	addr := f.provision(t, "alice")

	res, err := f.svc.TokenizeProfile(ctx, "alice", asset.Spec{AssetName: "ALICE Token", UnitName: "ALC"})
	require.NoError(t, err)
	assert.Equal(t, addr, res.Address)
	assert.NotZero(t, res.AssetID)
	assert.True(t, f.svc.Confirmed(ctx, res.TxID))
	assert.Equal(t, uint64(1), f.gateway.Holding(addr, res.AssetID), "default issuance is a single unit")

	assert.Equal(t, "alice", res.Me.Name)
	assert.Equal(t, "Builder • AI + Automation", res.Me.Headline)
	assert.Equal(t, "Portugal", res.Me.Region)
	assert.Equal(t, f.svc.AssetURL(res.AssetID), res.Me.AssetURL)

	_, err = f.svc.TokenizeProfile(ctx, "alice", asset.Spec{AssetName: "AGAIN", UnitName: "AGN"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict), "a profile tokenizes exactly once")
}

func TestRequestInvestment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")
	f.provision(t, "alice")

	tokenized, err := f.svc.TokenizeProfile(ctx, "alice", asset.Spec{AssetName: "ALICE Token", UnitName: "ALC"})
	require.NoError(t, err)

	t.Run("requester must be provisioned", func(t *testing.T) {
		_, err := f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "alice", AssetID: tokenized.AssetID, Amount: 1,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	f.provision(t, "bob")

	t.Run("files a pending notification", func(t *testing.T) {
		filed, err := f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "alice", AssetID: tokenized.AssetID, Amount: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, notification.StatusPending, filed.Status)
		assert.Equal(t, "bob", filed.From)
		assert.Equal(t, "alice", filed.To)
	})

	t.Run("second request absorbs the existing opt-in", func(t *testing.T) {
		filed, err := f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "alice", AssetID: tokenized.AssetID, Amount: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, notification.StatusPending, filed.Status)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "alice", AssetID: tokenized.AssetID, Amount: 0,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

		_, err = f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "alice", AssetID: 0, Amount: 1,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

		_, err = f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "ghost", AssetID: tokenized.AssetID, Amount: 1,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestDecideInvestment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, uint64, notification.Notification, string, string) {
		f := newFixture(t)
		f.register(t, "alice")
		f.register(t, "bob")
		aliceAddr := f.provision(t, "alice")
		bobAddr := f.provision(t, "bob")

		tokenized, err := f.svc.TokenizeProfile(ctx, "alice", asset.Spec{AssetName: "ALICE Token", UnitName: "ALC"})
		require.NoError(t, err)

		filed, err := f.svc.RequestInvestment(ctx, invest.RequestParams{
			Requester: "bob", Recipient: "alice", AssetID: tokenized.AssetID, Amount: 1,
		})
		require.NoError(t, err)
		return f, tokenized.AssetID, filed, aliceAddr, bobAddr
	}

	t.Run("accept settles exactly once", func(t *testing.T) {
		f, assetID, filed, aliceAddr, bobAddr := setup(t)

		decided, err := f.svc.DecideInvestment(ctx, "alice", filed.ID, true)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusAccepted, decided.Status)
		assert.NotEmpty(t, decided.TxID)
		assert.True(t, f.svc.Confirmed(ctx, decided.TxID))
		assert.Equal(t, uint64(0), f.gateway.Holding(aliceAddr, assetID))
		assert.Equal(t, uint64(1), f.gateway.Holding(bobAddr, assetID))

		// Replaying the accept returns the recorded settlement and moves
		// no further units.
		replay, err := f.svc.DecideInvestment(ctx, "alice", filed.ID, true)
		require.NoError(t, err)
		assert.Equal(t, decided.TxID, replay.TxID)
		assert.Equal(t, uint64(1), f.gateway.Holding(bobAddr, assetID))
	})

	t.Run("decline is terminal with no transfer", func(t *testing.T) {
		f, assetID, filed, aliceAddr, bobAddr := setup(t)

		decided, err := f.svc.DecideInvestment(ctx, "alice", filed.ID, false)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusDeclined, decided.Status)
		assert.Empty(t, decided.TxID)
		assert.Equal(t, uint64(1), f.gateway.Holding(aliceAddr, assetID))
		assert.Equal(t, uint64(0), f.gateway.Holding(bobAddr, assetID))

		// A later accept cannot revive a declined request.
		flipped, err := f.svc.DecideInvestment(ctx, "alice", filed.ID, true)
		require.NoError(t, err)
		assert.Equal(t, notification.StatusDeclined, flipped.Status)
		assert.Equal(t, uint64(0), f.gateway.Holding(bobAddr, assetID))
	})

	t.Run("unknown notification", func(t *testing.T) {
		f, _, _, _, _ := setup(t)
		_, err := f.svc.DecideInvestment(ctx, "alice", 9999, true)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("ids resolve only in the recipient queue", func(t *testing.T) {
		f, _, filed, _, _ := setup(t)
		_, err := f.svc.DecideInvestment(ctx, "bob", filed.ID, true)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")
	f.provision(t, "alice")
	f.provision(t, "bob")

	tokenized, err := f.svc.TokenizeProfile(ctx, "alice", asset.Spec{AssetName: "ALICE Token", UnitName: "ALC"})
	require.NoError(t, err)

	list, err := f.svc.Notifications(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	filed, err := f.svc.RequestInvestment(ctx, invest.RequestParams{
		Requester: "bob", Recipient: "alice", AssetID: tokenized.AssetID, Amount: 1,
	})
	require.NoError(t, err)

	list, err = f.svc.Notifications(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, filed.ID, list[0].ID)

	_, err = f.svc.Notifications(ctx, "ghost")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestStandaloneOptInAndTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "alice")
	f.register(t, "bob")
	aliceAddr := f.provision(t, "alice")
	bobAddr := f.provision(t, "bob")

	tokenized, err := f.svc.TokenizeProfile(ctx, "alice", asset.Spec{AssetName: "ALICE Token", UnitName: "ALC", Total: 5})
	require.NoError(t, err)

	txID, err := f.svc.OptIn(ctx, "bob", tokenized.AssetID)
	require.NoError(t, err)
	assert.NotEmpty(t, txID)

	// The standalone flow surfaces a repeated opt-in instead of absorbing it.
	_, err = f.svc.OptIn(ctx, "bob", tokenized.AssetID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	txID, err = f.svc.Transfer(ctx, invest.TransferParams{
		Sender: "alice", Receiver: "bob", AssetID: tokenized.AssetID, Amount: 2,
	})
	require.NoError(t, err)
	assert.True(t, f.svc.Confirmed(ctx, txID))
	assert.Equal(t, uint64(3), f.gateway.Holding(aliceAddr, tokenized.AssetID))
	assert.Equal(t, uint64(2), f.gateway.Holding(bobAddr, tokenized.AssetID))

	_, err = f.svc.Transfer(ctx, invest.TransferParams{
		Sender: "alice", Receiver: "bob", AssetID: tokenized.AssetID, Amount: -1,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestExplorerLinks(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "https://lora.algokit.io/localnet/transaction/TX1", f.svc.TxURL("TX1"))
	assert.Equal(t, "https://lora.algokit.io/localnet/asset/1001", f.svc.AssetURL(1001))
}
