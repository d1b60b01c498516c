package wallet

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// messageMagic is the prefix committed into every signed message digest so
// that a message signature can never double as a transaction signature.
const messageMagic = "Dogecoin Signed Message:\n"

// SignMessageOpts is the struct given to SignMessage method.
type SignMessageOpts struct {
	Key     *KeyMaterial
	Message string
}

func (o SignMessageOpts) validate() error {
	if o.Key == nil {
		return ErrNullKey
	}
	if len(o.Message) <= 0 {
		return ErrNullMessage
	}
	return nil
}

// SignMessage signs an arbitrary text message with the given key material
// and returns a base64 encoded compact recoverable signature, compatible
// with the signmessage/verifymessage RPC convention.
func SignMessage(opts SignMessageOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	digest, err := messageDigest(opts.Message)
	if err != nil {
		return "", err
	}

	sig, err := opts.Key.signCompactDigest(digest)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// VerifyMessageOpts is the struct given to VerifyMessage method.
type VerifyMessageOpts struct {
	Address   string
	Signature string
	Message   string
	Network   *chaincfg.Params
}

func (o VerifyMessageOpts) validate() error {
	if !ValidateAddress(o.Address, o.Network) {
		return ErrInvalidAddress
	}
	if len(o.Message) <= 0 {
		return ErrNullMessage
	}
	if _, err := base64.StdEncoding.DecodeString(o.Signature); err != nil {
		return ErrInvalidSignature
	}
	return nil
}

// VerifyMessage checks a base64 compact signature against a message and
// the address of the expected signer.
func VerifyMessage(opts VerifyMessageOpts) (bool, error) {
	if err := opts.validate(); err != nil {
		return false, err
	}

	digest, err := messageDigest(opts.Message)
	if err != nil {
		return false, err
	}

	sig, _ := base64.StdEncoding.DecodeString(opts.Signature)
	pubKey, _, err := ecdsa.RecoverCompact(sig, digest)
	if err != nil {
		return false, nil
	}

	recovered, err := NewAddressFromPublicKey(pubKey, opts.Network)
	if err != nil {
		return false, err
	}
	return recovered.String() == opts.Address, nil
}

func messageDigest(message string) ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarString(&buf, 0, messageMagic); err != nil {
		return nil, fmt.Errorf("serialize message magic: %w", err)
	}
	if err := wire.WriteVarString(&buf, 0, message); err != nil {
		return nil, fmt.Errorf("serialize message: %w", err)
	}
	return chainhash.DoubleHashB(buf.Bytes()), nil
}
