package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/dogekit/dogekit/pkg/netparams"
)

// AddressNetwork classifies an address string by its base58 prefix.
type AddressNetwork int

const (
	// AddressNetworkUnknown ...
	AddressNetworkUnknown AddressNetwork = iota
	// AddressNetworkMainnet ...
	AddressNetworkMainnet
	// AddressNetworkTestnet ...
	AddressNetworkTestnet
)

func (n AddressNetwork) String() string {
	switch n {
	case AddressNetworkMainnet:
		return "mainnet"
	case AddressNetworkTestnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// Address is a formatted P2PKH address along with the network it targets
// and the public key it was derived from. It holds no secret bytes and is
// safe to copy and share freely.
type Address struct {
	value  string
	net    *chaincfg.Params
	pubKey *btcec.PublicKey
}

// NewAddressFromPublicKey derives the P2PKH address of the given public key
// for the given network.
func NewAddressFromPublicKey(
	pubKey *btcec.PublicKey, net *chaincfg.Params,
) (*Address, error) {
	if pubKey == nil {
		return nil, ErrInvalidAddress
	}
	if net == nil {
		return nil, ErrNullNetwork
	}

	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, net)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}

	return &Address{
		value:  addr.EncodeAddress(),
		net:    net,
		pubKey: pubKey,
	}, nil
}

// String returns the base58check encoded address.
func (a *Address) String() string {
	return a.value
}

// Network returns the network the address targets.
func (a *Address) Network() *chaincfg.Params {
	return a.net
}

// PublicKey returns the public key the address was derived from.
func (a *Address) PublicKey() *btcec.PublicKey {
	return a.pubKey
}

// PkScript returns the pay-to-pubkey-hash output script of the address.
func (a *Address) PkScript() ([]byte, error) {
	addr, err := btcutil.DecodeAddress(a.value, a.net)
	if err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("build output script: %w", err)
	}
	return script, nil
}

// ValidateAddress checks checksum and network prefix of an address string.
// It does not require a key and is meant to reject malformed destinations
// before they reach the transaction builder.
func ValidateAddress(address string, net *chaincfg.Params) bool {
	if len(address) <= 0 || net == nil {
		return false
	}
	addr, err := btcutil.DecodeAddress(address, net)
	if err != nil {
		return false
	}
	return addr.IsForNet(net)
}

// NetworkOf reports whether an address string belongs to mainnet or
// testnet. Malformed addresses are classified as unknown.
func NetworkOf(address string) AddressNetwork {
	if ValidateAddress(address, &netparams.MainNetParams) {
		return AddressNetworkMainnet
	}
	if ValidateAddress(address, &netparams.TestNet3Params) {
		return AddressNetworkTestnet
	}
	return AddressNetworkUnknown
}
