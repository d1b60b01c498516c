// Package wallet implements the key-lifecycle core of a Dogecoin wallet:
// private key material with guaranteed zeroization, P2PKH addresses, BIP39
// mnemonics, and the BIP32/44 hierarchical deterministic derivation tree.
package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed must not be null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullMessage ...
	ErrNullMessage = errors.New("message must not be null")
	// ErrNullKey ...
	ErrNullKey = errors.New("signing key must not be null")

	// ErrInvalidKeyLength ...
	ErrInvalidKeyLength = errors.New("private key must be a 32 byte array")
	// ErrInvalidKeyRange ...
	ErrInvalidKeyRange = errors.New(
		"private key must be a valid scalar in range (0, N) for the secp256k1 curve",
	)
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidWordCount ...
	ErrInvalidWordCount = errors.New(
		"mnemonic must count 12, 15, 18, 21 or 24 words",
	)
	// ErrUnknownWord ...
	ErrUnknownWord = errors.New("mnemonic contains a word not in the word list")
	// ErrInvalidChecksum ...
	ErrInvalidChecksum = errors.New("mnemonic checksum does not match")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be a valid address for the network")
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("signature must be in base64 format")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrOutOfRangeDerivationPathAccount ...
	ErrOutOfRangeDerivationPathAccount = fmt.Errorf(
		"account index must be in range [0, %d]", MaxHardenedValue,
	)

	// ErrKeyMaterialZeroed ...
	ErrKeyMaterialZeroed = errors.New(
		"key material has been zeroized and must not be used",
	)
	// ErrNoPrivateKey ...
	ErrNoPrivateKey = errors.New("node holds public key material only")
	// ErrPublicDerivationNotHardenable ...
	ErrPublicDerivationNotHardenable = errors.New(
		"hardened derivation requires the parent's private key material",
	)
	// ErrMaxDerivationDepth ...
	ErrMaxDerivationDepth = errors.New("max derivation depth reached")
	// ErrDerivation classifies any failure of the mnemonic-to-address
	// convenience chain. The underlying cause stays reachable through
	// errors.Unwrap.
	ErrDerivation = errors.New("derivation failed")
)
