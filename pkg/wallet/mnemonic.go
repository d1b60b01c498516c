package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// SeedLen is the length in bytes of a seed derived from a mnemonic.
const SeedLen = 64

// Mnemonic is an ordered sequence of words encoding random entropy plus a
// checksum. It is immutable once created and is consumed to produce a seed.
type Mnemonic struct {
	words []string
}

// NewMnemonicOpts is the struct given to the NewMnemonic method.
type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic generates a new random mnemonic with the given entropy size
// in bits. The word count follows the BIP39 table: 128 bits yield 12 words,
// 256 bits yield 24. If no size is given, 256 bits is the default.
func NewMnemonic(opts NewMnemonicOpts) (*Mnemonic, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = 256
	}

	entropy, err := bip39.NewEntropy(opts.EntropySize)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}

	return &Mnemonic{words: strings.Split(phrase, " ")}, nil
}

// NewMnemonicFromWords parses a user supplied word sequence. Word count,
// word list membership and embedded checksum are all verified; a failing
// mnemonic is rejected, never repaired.
func NewMnemonicFromWords(words []string) (*Mnemonic, error) {
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return nil, ErrInvalidWordCount
	}

	for _, word := range words {
		if _, ok := bip39.GetWordIndex(word); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
		}
	}

	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return nil, ErrInvalidChecksum
	}

	mnemonicWords := make([]string, len(words))
	copy(mnemonicWords, words)
	return &Mnemonic{words: mnemonicWords}, nil
}

// NewMnemonicFromPhrase parses a space separated mnemonic phrase.
func NewMnemonicFromPhrase(phrase string) (*Mnemonic, error) {
	trimmed := strings.TrimSpace(phrase)
	if len(trimmed) <= 0 {
		return nil, ErrNullMnemonic
	}
	return NewMnemonicFromWords(strings.Fields(trimmed))
}

// Words returns a copy of the word sequence.
func (m *Mnemonic) Words() []string {
	words := make([]string, len(m.words))
	copy(words, m.words)
	return words
}

// Phrase returns the space separated phrase.
func (m *Mnemonic) Phrase() string {
	return strings.Join(m.words, " ")
}

// WordCount returns the number of words of the mnemonic.
func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

// Seed derives the 64-byte wallet seed from the phrase and an optional
// passphrase by iterated HMAC (PBKDF2-SHA512, per BIP39). The derivation
// is deterministic: the same phrase and passphrase always yield the same
// seed.
func (m *Mnemonic) Seed(passphrase string) []byte {
	return bip39.NewSeed(m.Phrase(), passphrase)
}

// DeriveAddressOpts is the struct given to the DeriveAddress method.
type DeriveAddressOpts struct {
	Account    uint32
	Index      uint32
	Passphrase string
	Change     bool
	Network    *chaincfg.Params
}

func (o DeriveAddressOpts) validate() error {
	if o.Account > MaxHardenedValue {
		return ErrOutOfRangeDerivationPathAccount
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// DeriveAddress composes seed derivation, HD wallet construction and the
// fixed BIP44 path m/44'/coin'/account'/change/index into a single
// convenience operation. Any failure in the chain matches ErrDerivation
// and unwraps to the underlying cause.
func (m *Mnemonic) DeriveAddress(opts DeriveAddressOpts) (*Address, error) {
	if err := opts.validate(); err != nil {
		return nil, derivationError{err}
	}

	hdWallet, err := NewHdWalletFromMnemonic(NewHdWalletFromMnemonicOpts{
		Mnemonic:   m,
		Passphrase: opts.Passphrase,
		Network:    opts.Network,
	})
	if err != nil {
		return nil, derivationError{err}
	}

	addr, err := hdWallet.AddressAt(opts.Account, opts.Change, opts.Index)
	if err != nil {
		return nil, derivationError{err}
	}
	return addr, nil
}

type derivationError struct {
	cause error
}

func (e derivationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDerivation, e.cause)
}

func (e derivationError) Is(target error) bool {
	return target == ErrDerivation
}

func (e derivationError) Unwrap() error {
	return e.cause
}
