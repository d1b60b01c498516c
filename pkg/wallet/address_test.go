package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"

	"github.com/dogekit/dogekit/pkg/netparams"
)

func TestNewAddressFromPublicKey(t *testing.T) {
	tests := []struct {
		net             *chaincfg.Params
		expectedPrefix  byte
		expectedNetwork AddressNetwork
	}{
		{&netparams.MainNetParams, 'D', AddressNetworkMainnet},
		{&netparams.TestNet3Params, 'n', AddressNetworkTestnet},
	}
	for _, tt := range tests {
		key, err := GenerateKeyMaterial(tt.net)
		if err != nil {
			t.Fatal(err)
		}
		defer key.Zero()

		pubKey, err := key.PublicKey()
		if err != nil {
			t.Fatal(err)
		}

		addr, err := NewAddressFromPublicKey(pubKey, tt.net)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, tt.expectedPrefix, addr.String()[0])
		assert.Equal(t, tt.expectedNetwork, NetworkOf(addr.String()))
		assert.True(t, ValidateAddress(addr.String(), tt.net))
		assert.Equal(t, pubKey, addr.PublicKey())
	}
}

func TestFailingNewAddressFromPublicKey(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	pubKey, err := key.PublicKey()
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewAddressFromPublicKey(nil, &netparams.MainNetParams)
	assert.Equal(t, ErrInvalidAddress, err)

	_, err = NewAddressFromPublicKey(pubKey, nil)
	assert.Equal(t, ErrNullNetwork, err)
}

func TestAddressPkScript(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}

	script, err := addr.PkScript()
	if err != nil {
		t.Fatal(err)
	}

	// OP_DUP OP_HASH160 <20 byte hash> OP_EQUALVERIFY OP_CHECKSIG
	assert.Len(t, script, 25)
	assert.Equal(t, byte(txscript.OP_DUP), script[0])
	assert.Equal(t, byte(txscript.OP_HASH160), script[1])
	assert.Equal(t, byte(txscript.OP_EQUALVERIFY), script[23])
	assert.Equal(t, byte(txscript.OP_CHECKSIG), script[24])
}

func TestValidateAddressAcrossNetworks(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, ValidateAddress(addr.String(), &netparams.MainNetParams))
	assert.False(t, ValidateAddress(addr.String(), &netparams.TestNet3Params))
}

func TestFailingValidateAddress(t *testing.T) {
	tests := []string{
		"",
		"notanaddress",
		"D0000000000000000000000000000000l1",
	}
	for _, address := range tests {
		assert.False(t, ValidateAddress(address, &netparams.MainNetParams))
		assert.Equal(t, AddressNetworkUnknown, NetworkOf(address))
	}
}

func TestAddressNetworkString(t *testing.T) {
	assert.Equal(t, "mainnet", AddressNetworkMainnet.String())
	assert.Equal(t, "testnet", AddressNetworkTestnet.String())
	assert.Equal(t, "unknown", AddressNetworkUnknown.String())
}
