package wallet

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"

	"github.com/dogekit/dogekit/pkg/netparams"
)

func TestGenerateKeyMaterial(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	pubKey, err := key.PublicKey()
	if err != nil {
		t.Fatal(err)
	}
	assert.NotNil(t, pubKey)

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, byte('D'), addr.String()[0])
}

func TestKeyMaterialFromBytes(t *testing.T) {
	source, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Zero()

	secret, err := source.ExposeSecretOnce()
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		for i := range secret {
			secret[i] = 0
		}
	}()

	key, err := KeyMaterialFromBytes(secret, &netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	// the source buffer must not be retained
	assert.NotSame(t, &secret[0], &key.secret[0])

	sourceAddr, err := source.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}
	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, sourceAddr.String(), addr.String())
}

func TestFailingKeyMaterialFromBytes(t *testing.T) {
	overflowed := bytes.Repeat([]byte{0xff}, KeyMaterialLen)

	tests := []struct {
		secret []byte
		net    bool
		err    error
	}{
		{make([]byte, KeyMaterialLen), false, ErrNullNetwork},
		{make([]byte, KeyMaterialLen-1), true, ErrInvalidKeyLength},
		{make([]byte, KeyMaterialLen+1), true, ErrInvalidKeyLength},
		{make([]byte, KeyMaterialLen), true, ErrInvalidKeyRange},
		{overflowed, true, ErrInvalidKeyRange},
	}
	for _, tt := range tests {
		var net = &netparams.MainNetParams
		if !tt.net {
			net = nil
		}
		_, err := KeyMaterialFromBytes(tt.secret, net)
		assert.Equal(t, tt.err, err)
	}
}

func TestKeyMaterialWIFRoundTrip(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	wif, err := key.WIF()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, byte('Q'), wif[0])

	imported, err := KeyMaterialFromWIF(wif, &netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer imported.Zero()

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}
	importedAddr, err := imported.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, addr.String(), importedAddr.String())

	// a mainnet wif must be rejected on testnet
	_, err = KeyMaterialFromWIF(wif, &netparams.TestNet3Params)
	assert.Error(t, err)
}

func TestSignDigest(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	digest := chainhash.DoubleHashB([]byte("such sign, very secure"))
	signature, err := key.SignDigest(digest)
	if err != nil {
		t.Fatal(err)
	}

	pubKey, err := key.PublicKey()
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, signature.Verify(digest, pubKey))

	otherDigest := chainhash.DoubleHashB([]byte("much tamper"))
	assert.False(t, signature.Verify(otherDigest, pubKey))

	_, err = key.SignDigest(digest[:31])
	assert.Error(t, err)
}

func TestExposeSecretOnce(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	secret, err := key.ExposeSecretOnce()
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, secret, KeyMaterialLen)
	assert.Equal(t, key.secret, secret)

	// mutating the exposed copy must not touch the owned buffer
	secret[0] ^= 0xff
	assert.NotEqual(t, key.secret, secret)
}

func TestZeroKeyMaterial(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}

	key.Zero()
	assert.Equal(t, make([]byte, KeyMaterialLen), key.secret)

	// idempotent
	key.Zero()
	assert.Equal(t, make([]byte, KeyMaterialLen), key.secret)

	digest := chainhash.DoubleHashB([]byte("too late"))

	_, err = key.PublicKey()
	assert.Equal(t, ErrKeyMaterialZeroed, err)
	_, err = key.P2PKHAddress()
	assert.Equal(t, ErrKeyMaterialZeroed, err)
	_, err = key.WIF()
	assert.Equal(t, ErrKeyMaterialZeroed, err)
	_, err = key.SignDigest(digest)
	assert.Equal(t, ErrKeyMaterialZeroed, err)
	_, err = key.ExposeSecretOnce()
	assert.Equal(t, ErrKeyMaterialZeroed, err)
}
