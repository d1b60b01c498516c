package wallet

import (
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// ExternalChain is the BIP44 change level of receiving addresses.
	ExternalChain uint32 = 0
	// InternalChain is the BIP44 change level of change addresses.
	InternalChain uint32 = 1
)

type chainCursor struct {
	account uint32
	change  uint32
}

// HdWallet owns the root of a derivation tree and a monotonically
// increasing next-index counter per (account, change) chain. Counter
// advances are atomic with respect to the address being handed back, so a
// wallet shared across goroutines never returns the same address twice
// unless a chain is explicitly reset.
type HdWallet struct {
	mtx         sync.Mutex
	root        *HdNode
	nextIndexes map[chainCursor]uint32
	net         *chaincfg.Params
}

// NewHdWalletOpts is the struct given to the NewHdWallet method.
type NewHdWalletOpts struct {
	Seed    []byte
	Network *chaincfg.Params
}

func (o NewHdWalletOpts) validate() error {
	if len(o.Seed) <= 0 {
		return ErrNullSeed
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// NewHdWallet creates a wallet with a root node derived from the seed.
func NewHdWallet(opts NewHdWalletOpts) (*HdWallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	root, err := NewHdNodeFromSeed(opts.Seed, opts.Network)
	if err != nil {
		return nil, err
	}

	return &HdWallet{
		root:        root,
		nextIndexes: map[chainCursor]uint32{},
		net:         opts.Network,
	}, nil
}

// NewHdWalletFromMnemonicOpts is the struct given to the
// NewHdWalletFromMnemonic method.
type NewHdWalletFromMnemonicOpts struct {
	Mnemonic   *Mnemonic
	Passphrase string
	Network    *chaincfg.Params
}

func (o NewHdWalletFromMnemonicOpts) validate() error {
	if o.Mnemonic == nil {
		return ErrNullMnemonic
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// NewHdWalletFromMnemonic derives the wallet seed from the mnemonic and an
// optional passphrase and creates a wallet from it.
func NewHdWalletFromMnemonic(opts NewHdWalletFromMnemonicOpts) (*HdWallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return NewHdWallet(NewHdWalletOpts{
		Seed:    opts.Mnemonic.Seed(opts.Passphrase),
		Network: opts.Network,
	})
}

// Network returns the network the wallet targets.
func (w *HdWallet) Network() *chaincfg.Params {
	return w.net
}

// Root returns the root node of the wallet's derivation tree.
func (w *HdWallet) Root() *HdNode {
	return w.root
}

// DeriveNewAddressOpts is the struct given to the DeriveNewAddress method.
type DeriveNewAddressOpts struct {
	Account uint32
	Change  bool
}

func (o DeriveNewAddressOpts) validate() error {
	if o.Account > MaxHardenedValue {
		return ErrOutOfRangeDerivationPathAccount
	}
	return nil
}

// DeriveNewAddress derives the address at the wallet's current index for
// the (account, change) chain and advances the index. The counter is only
// advanced when the address is actually handed back: a failed derivation
// leaves the cursor untouched.
func (w *HdWallet) DeriveNewAddress(opts DeriveNewAddressOpts) (*Address, uint32, error) {
	if err := opts.validate(); err != nil {
		return nil, 0, err
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()

	cursor := chainCursor{opts.Account, changeLevel(opts.Change)}
	index := w.nextIndexes[cursor]

	addr, err := w.addressAt(opts.Account, opts.Change, index)
	if err != nil {
		return nil, 0, err
	}

	w.nextIndexes[cursor] = index + 1
	return addr, index, nil
}

// AddressAt derives the address at an explicit (account, change, index)
// tuple without touching the wallet's cursors.
func (w *HdWallet) AddressAt(account uint32, change bool, index uint32) (*Address, error) {
	if account > MaxHardenedValue {
		return nil, ErrOutOfRangeDerivationPathAccount
	}
	return w.addressAt(account, change, index)
}

// NextIndex returns the index the next DeriveNewAddress call will use for
// the given chain.
func (w *HdWallet) NextIndex(account uint32, change bool) uint32 {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.nextIndexes[chainCursor{account, changeLevel(change)}]
}

// ResetIndex rewinds the cursor of the given chain to zero. Addresses will
// be reused from there on; this is only meant for wallet restore flows.
func (w *HdWallet) ResetIndex(account uint32, change bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	delete(w.nextIndexes, chainCursor{account, changeLevel(change)})
}

// DeriveByPath derives the node at the given path, absolute or relative to
// the wallet root (eg. "m/44'/3'/0'/0/0").
func (w *HdWallet) DeriveByPath(strPath string) (*HdNode, error) {
	path, err := ParseDerivationPath(strPath)
	if err != nil {
		return nil, err
	}
	return w.root.DerivePath(path)
}

// KeyMaterialAt extracts the signing key material at an explicit
// (account, change, index) tuple. The caller owns, and must zero, the
// returned key.
func (w *HdWallet) KeyMaterialAt(account uint32, change bool, index uint32) (*KeyMaterial, error) {
	if account > MaxHardenedValue {
		return nil, ErrOutOfRangeDerivationPathAccount
	}

	node, err := w.nodeAt(account, change, index)
	if err != nil {
		return nil, err
	}
	return node.KeyMaterial()
}

// ExtendedKeyOpts is the struct given to ExtendedPrivateKey and
// ExtendedPublicKey methods.
type ExtendedKeyOpts struct {
	Account uint32
}

func (o ExtendedKeyOpts) validate() error {
	if o.Account > MaxHardenedValue {
		return ErrOutOfRangeDerivationPathAccount
	}
	return nil
}

// ExtendedPrivateKey returns the account-level extended private key in
// base58 format for the provided account index.
func (w *HdWallet) ExtendedPrivateKey(opts ExtendedKeyOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	accountNode, err := w.accountNode(opts.Account)
	if err != nil {
		return "", err
	}
	return accountNode.String(), nil
}

// ExtendedPublicKey returns the account-level extended public key in
// base58 format for the provided account index.
func (w *HdWallet) ExtendedPublicKey(opts ExtendedKeyOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	accountNode, err := w.accountNode(opts.Account)
	if err != nil {
		return "", err
	}
	xpub, err := accountNode.Neuter()
	if err != nil {
		return "", err
	}
	return xpub.String(), nil
}

func (w *HdWallet) accountNode(account uint32) (*HdNode, error) {
	// m/44'/coin'/account', with the coin type taken from the network
	// params (3 on mainnet, 1 on testnet per SLIP-0044).
	path := DerivationPath{
		hdkeychain.HardenedKeyStart + Bip44Purpose,
		hdkeychain.HardenedKeyStart + w.net.HDCoinType,
		hdkeychain.HardenedKeyStart + account,
	}
	return w.root.DerivePath(path)
}

func (w *HdWallet) nodeAt(account uint32, change bool, index uint32) (*HdNode, error) {
	accountNode, err := w.accountNode(account)
	if err != nil {
		return nil, err
	}
	return accountNode.DerivePath(DerivationPath{changeLevel(change), index})
}

func (w *HdWallet) addressAt(account uint32, change bool, index uint32) (*Address, error) {
	node, err := w.nodeAt(account, change, index)
	if err != nil {
		return nil, err
	}
	return node.Address()
}

func changeLevel(change bool) uint32 {
	if change {
		return InternalChain
	}
	return ExternalChain
}
