package wallet

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
)

// KeyMaterialLen is the length in bytes of a raw private key.
const KeyMaterialLen = 32

var exposeSecretWarning sync.Once

// KeyMaterial owns the raw bytes of a private key. The secret buffer is
// overwritten with zeros when Zero is called, and a runtime finalizer acts
// as a backstop for instances that are garbage collected without an
// explicit Zero. Callers that hand key material around keep exclusive
// ownership: the buffer is never shared, only copied on explicit request.
type KeyMaterial struct {
	secret []byte
	net    *chaincfg.Params

	zeroOnce sync.Once
	zeroed   bool
}

// GenerateKeyMaterial creates new random key material for the given network.
func GenerateKeyMaterial(net *chaincfg.Params) (*KeyMaterial, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}

	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	defer privKey.Zero()

	return newKeyMaterial(privKey.Serialize(), net), nil
}

// KeyMaterialFromBytes copies the given raw private key. The source buffer
// is not retained; callers remain responsible for zeroing their own copy.
func KeyMaterialFromBytes(secret []byte, net *chaincfg.Params) (*KeyMaterial, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}
	if len(secret) != KeyMaterialLen {
		return nil, ErrInvalidKeyLength
	}

	var scalar btcec.ModNScalar
	overflow := scalar.SetByteSlice(secret)
	isZero := scalar.IsZero()
	scalar.Zero()
	if overflow || isZero {
		return nil, ErrInvalidKeyRange
	}

	return newKeyMaterial(secret, net), nil
}

func newKeyMaterial(secret []byte, net *chaincfg.Params) *KeyMaterial {
	buf := make([]byte, KeyMaterialLen)
	copy(buf, secret)
	k := &KeyMaterial{secret: buf, net: net}
	runtime.SetFinalizer(k, (*KeyMaterial).Zero)
	return k
}

// Network returns the network this key targets.
func (k *KeyMaterial) Network() *chaincfg.Params {
	return k.net
}

// PublicKey returns the public key derived from the secret. No secret
// bytes are exposed.
func (k *KeyMaterial) PublicKey() (*btcec.PublicKey, error) {
	if k.zeroed {
		return nil, ErrKeyMaterialZeroed
	}

	privKey, _ := btcec.PrivKeyFromBytes(k.secret)
	defer privKey.Zero()
	return privKey.PubKey(), nil
}

// P2PKHAddress returns the pay-to-pubkey-hash address of the public key
// on the key's network.
func (k *KeyMaterial) P2PKHAddress() (*Address, error) {
	pubKey, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	return NewAddressFromPublicKey(pubKey, k.net)
}

// WIF exports the private key in wallet import format.
func (k *KeyMaterial) WIF() (string, error) {
	if k.zeroed {
		return "", ErrKeyMaterialZeroed
	}

	privKey, _ := btcec.PrivKeyFromBytes(k.secret)
	defer privKey.Zero()

	wif, err := btcutil.NewWIF(privKey, k.net, true)
	if err != nil {
		return "", fmt.Errorf("encode wif: %w", err)
	}
	return wif.String(), nil
}

// KeyMaterialFromWIF imports a private key in wallet import format.
func KeyMaterialFromWIF(wifStr string, net *chaincfg.Params) (*KeyMaterial, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}

	wif, err := btcutil.DecodeWIF(wifStr)
	if err != nil {
		return nil, fmt.Errorf("decode wif: %w", err)
	}
	defer wif.PrivKey.Zero()

	if !wif.IsForNet(net) {
		return nil, ErrInvalidKeyRange
	}
	return newKeyMaterial(wif.PrivKey.Serialize(), net), nil
}

// SignDigest signs a 32-byte digest with the secret and returns the
// resulting ECDSA signature. The secret never leaves the key material.
func (k *KeyMaterial) SignDigest(digest []byte) (*ecdsa.Signature, error) {
	if k.zeroed {
		return nil, ErrKeyMaterialZeroed
	}
	if len(digest) != 32 {
		return nil, fmt.Errorf("digest must be 32 bytes, got %d", len(digest))
	}

	privKey, _ := btcec.PrivKeyFromBytes(k.secret)
	defer privKey.Zero()
	return ecdsa.Sign(privKey, digest), nil
}

// signCompactDigest produces a compact recoverable signature over the
// digest, for the signed-message convention.
func (k *KeyMaterial) signCompactDigest(digest []byte) ([]byte, error) {
	if k.zeroed {
		return nil, ErrKeyMaterialZeroed
	}

	privKey, _ := btcec.PrivKeyFromBytes(k.secret)
	defer privKey.Zero()
	return ecdsa.SignCompact(privKey, digest, true)
}

// ExposeSecretOnce returns a copy of the raw secret bytes. This is the only
// path that yields the secret; callers must treat the returned buffer as
// use-and-discard and zero it as soon as possible. A warning is logged the
// first time this is invoked in the process.
func (k *KeyMaterial) ExposeSecretOnce() ([]byte, error) {
	if k.zeroed {
		return nil, ErrKeyMaterialZeroed
	}

	exposeSecretWarning.Do(func() {
		log.Warn(
			"raw private key material is being exposed, the returned " +
				"buffer must be zeroed by the caller after use",
		)
	})

	secret := make([]byte, KeyMaterialLen)
	copy(secret, k.secret)
	return secret, nil
}

// Zero overwrites the secret buffer with zeros. It is safe to call multiple
// times and from deferred error paths; only the first call has effect. Any
// operation on the key material after Zero fails with ErrKeyMaterialZeroed.
func (k *KeyMaterial) Zero() {
	k.zeroOnce.Do(func() {
		for i := range k.secret {
			k.secret[i] = 0
		}
		k.zeroed = true
		runtime.SetFinalizer(k, nil)
	})
}
