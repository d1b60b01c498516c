// Package netparams defines the Dogecoin network parameters used across
// the library. Only the fields relevant to address encoding, WIF encoding
// and BIP32 extended key serialization are populated; consensus fields are
// out of scope here.
package netparams

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var (
	mainNetGenesisHash = mustHashFromStr(
		"1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691",
	)
	testNet3GenesisHash = mustHashFromStr(
		"bb0a78264637406b6360aad926284d544d7049f45189db5664f3c4d07350559e",
	)
)

// MainNetParams holds the parameters of the main Dogecoin network.
// P2PKH addresses start with 'D'.
var MainNetParams = chaincfg.Params{
	Name:        "dogecoin",
	Net:         wire.BitcoinNet(0xc0c0c0c0),
	DefaultPort: "22556",
	GenesisHash: mainNetGenesisHash,

	// Address encoding magics
	PubKeyHashAddrID: 0x1e, // starts with D
	ScriptHashAddrID: 0x16, // starts with 9 or A
	PrivateKeyID:     0x9e, // WIF, starts with 6 (uncompressed) or Q (compressed)

	// Not used by Dogecoin, but must be unique among registered networks.
	Bech32HRPSegwit: "doge",

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x02, 0xfa, 0xc3, 0x98}, // starts with dgpv
	HDPublicKeyID:  [4]byte{0x02, 0xfa, 0xca, 0xfd}, // starts with dgub

	// BIP44 coin type, per SLIP-0044
	HDCoinType: 3,
}

// TestNet3Params holds the parameters of the Dogecoin test network
// (version 3). P2PKH addresses start with 'n'.
var TestNet3Params = chaincfg.Params{
	Name:        "dogecoin-testnet3",
	Net:         wire.BitcoinNet(0xfcc1b7dc),
	DefaultPort: "44556",
	GenesisHash: testNet3GenesisHash,

	// Address encoding magics
	PubKeyHashAddrID: 0x71, // starts with n
	ScriptHashAddrID: 0xc4, // starts with 2
	PrivateKeyID:     0xf1, // WIF, starts with 9 (uncompressed) or c (compressed)

	Bech32HRPSegwit: "tdge",

	// BIP32 hierarchical deterministic extended key magics
	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // starts with tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // starts with tpub

	// Testnet coins use the reserved testnet coin type, per SLIP-0044
	HDCoinType: 1,
}

func init() {
	// Registration is required for base58 address decoding and for
	// neutering extended private keys. It is process-wide and happens
	// exactly once, at package load.
	mustRegister(&MainNetParams)
	mustRegister(&TestNet3Params)
}

func mustRegister(params *chaincfg.Params) {
	if err := chaincfg.Register(params); err != nil {
		panic("failed to register network parameters: " + err.Error())
	}
}

func mustHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}
