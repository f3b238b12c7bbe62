// Package localnet is an in-process Gateway adapter with the observable
// semantics of a local ledger node: accounts hold signing keys, assets
// require opt-in before they can be held, and transfers are balance-checked.
// It exists so the whole workflow runs and is testable without a network.
package localnet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"

	"hask/internal/ledger"
)

type account struct {
	key      ed25519.PrivateKey
	mnemonic string
	balance  uint64
}

type assetRecord struct {
	params ledger.CreateAssetParams
	txID   string
}

// Ledger implements ledger.Gateway in memory. Asset ids start above 1000 so
// they read like real ledger ids rather than queue indexes.
type Ledger struct {
	mu          sync.Mutex
	accounts    map[string]*account
	assets      map[uint64]*assetRecord
	holdings    map[string]map[uint64]uint64
	confirmed   map[string]struct{}
	nextAssetID uint64
}

var _ ledger.Gateway = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{
		accounts:    make(map[string]*account),
		assets:      make(map[uint64]*assetRecord),
		holdings:    make(map[string]map[uint64]uint64),
		confirmed:   make(map[string]struct{}),
		nextAssetID: 1001,
	}
}

func (l *Ledger) CreateAccount(ctx context.Context, identityHint string, fund uint64) (ledger.Account, error) {
	const op = "create_account"
	if err := ctx.Err(); err != nil {
		return ledger.Account{}, ledger.WrapContextErr(op, err)
	}

	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return ledger.Account{}, ledger.NewError(op, ledger.CodeUnavailable, err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return ledger.Account{}, ledger.NewError(op, ledger.CodeUnavailable, err)
	}
	seed := bip39.NewSeed(mnemonic, identityHint)
	key := ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])
	addr := encodeAddress(key.Public().(ed25519.PublicKey))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[addr] = &account{key: key, mnemonic: mnemonic, balance: fund}
	l.holdings[addr] = make(map[uint64]uint64)
	return ledger.Account{Address: addr, Mnemonic: mnemonic}, nil
}

func (l *Ledger) CreateAsset(ctx context.Context, p ledger.CreateAssetParams) (ledger.AssetResult, error) {
	const op = "create_asset"
	if err := ctx.Err(); err != nil {
		return ledger.AssetResult{}, ledger.WrapContextErr(op, err)
	}
	if p.Total == 0 {
		return ledger.AssetResult{}, ledger.NewError(op, ledger.CodeRejected, errors.New("asset total must be positive"))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[p.Sender]; !ok {
		return ledger.AssetResult{}, ledger.NewError(op, ledger.CodeRejected, fmt.Errorf("unknown sender %s", p.Sender))
	}

	id := l.nextAssetID
	l.nextAssetID++
	txID := l.mintTxID()
	l.assets[id] = &assetRecord{params: p, txID: txID}
	// The creator holds the full supply without an explicit opt-in.
	l.holdings[p.Sender][id] = p.Total
	return ledger.AssetResult{AssetID: id, TxID: txID}, nil
}

func (l *Ledger) OptIn(ctx context.Context, sender string, assetID uint64) (string, error) {
	const op = "opt_in"
	if err := ctx.Err(); err != nil {
		return "", ledger.WrapContextErr(op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[sender]; !ok {
		return "", ledger.NewError(op, ledger.CodeRejected, fmt.Errorf("unknown sender %s", sender))
	}
	if _, ok := l.assets[assetID]; !ok {
		return "", ledger.NewError(op, ledger.CodeNotFound, fmt.Errorf("asset %d does not exist", assetID))
	}
	if _, ok := l.holdings[sender][assetID]; ok {
		return "", ledger.NewError(op, ledger.CodeAlreadyOptedIn,
			fmt.Errorf("account %s already holds asset %d", sender, assetID))
	}
	l.holdings[sender][assetID] = 0
	return l.mintTxID(), nil
}

func (l *Ledger) Transfer(ctx context.Context, p ledger.TransferParams) (string, error) {
	const op = "transfer"
	if err := ctx.Err(); err != nil {
		return "", ledger.WrapContextErr(op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[p.Sender]; !ok {
		return "", ledger.NewError(op, ledger.CodeRejected, fmt.Errorf("unknown sender %s", p.Sender))
	}
	if _, ok := l.accounts[p.Receiver]; !ok {
		return "", ledger.NewError(op, ledger.CodeRejected, fmt.Errorf("unknown receiver %s", p.Receiver))
	}
	if _, ok := l.assets[p.AssetID]; !ok {
		return "", ledger.NewError(op, ledger.CodeNotFound, fmt.Errorf("asset %d does not exist", p.AssetID))
	}
	if _, ok := l.holdings[p.Receiver][p.AssetID]; !ok {
		return "", ledger.NewError(op, ledger.CodeRejected,
			fmt.Errorf("receiver %s is not opted in to asset %d", p.Receiver, p.AssetID))
	}
	if l.holdings[p.Sender][p.AssetID] < p.Amount {
		return "", ledger.NewError(op, ledger.CodeRejected,
			fmt.Errorf("sender %s holds fewer than %d units of asset %d", p.Sender, p.Amount, p.AssetID))
	}

	l.holdings[p.Sender][p.AssetID] -= p.Amount
	l.holdings[p.Receiver][p.AssetID] += p.Amount
	return l.mintTxID(), nil
}

func (l *Ledger) TransactionConfirmed(ctx context.Context, txID string) bool {
	if ctx.Err() != nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.confirmed[txID]
	return ok
}

// Holding reports the units of assetID held by addr. Test helper; not part
// of the Gateway contract.
func (l *Ledger) Holding(addr string, assetID uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdings[addr][assetID]
}

// mintTxID derives a confirmed transaction id. Callers hold l.mu.
func (l *Ledger) mintTxID() string {
	digest := sha3.Sum256([]byte(uuid.NewString()))
	txID := base58.Encode(digest[:])
	l.confirmed[txID] = struct{}{}
	return txID
}

func encodeAddress(pub ed25519.PublicKey) string {
	checksum := sha3.Sum256(pub)
	return base58.Encode(append([]byte(pub), checksum[:4]...))
}
