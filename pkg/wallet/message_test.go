package wallet

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dogekit/dogekit/pkg/netparams"
)

func TestSignVerifyMessage(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}

	message := "much wow"
	signature, err := SignMessage(SignMessageOpts{Key: key, Message: message})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyMessage(VerifyMessageOpts{
		Address:   addr.String(),
		Signature: signature,
		Message:   message,
		Network:   &netparams.MainNetParams,
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, ok)

	// a different message must not verify
	ok, err = VerifyMessage(VerifyMessageOpts{
		Address:   addr.String(),
		Signature: signature,
		Message:   "much tamper",
		Network:   &netparams.MainNetParams,
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, ok)

	// nor must a signature from another key
	otherKey, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer otherKey.Zero()

	otherSignature, err := SignMessage(SignMessageOpts{
		Key: otherKey, Message: message,
	})
	if err != nil {
		t.Fatal(err)
	}
	ok, err = VerifyMessage(VerifyMessageOpts{
		Address:   addr.String(),
		Signature: otherSignature,
		Message:   message,
		Network:   &netparams.MainNetParams,
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, ok)
}

func TestVerifyMessageGarbageSignature(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}

	// valid base64, unrecoverable signature bytes
	garbage := base64.StdEncoding.EncodeToString(make([]byte, 10))
	ok, err := VerifyMessage(VerifyMessageOpts{
		Address:   addr.String(),
		Signature: garbage,
		Message:   "much wow",
		Network:   &netparams.MainNetParams,
	})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFailingSignMessage(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}

	_, err = SignMessage(SignMessageOpts{Message: "much wow"})
	assert.Equal(t, ErrNullKey, err)

	_, err = SignMessage(SignMessageOpts{Key: key})
	assert.Equal(t, ErrNullMessage, err)

	key.Zero()
	_, err = SignMessage(SignMessageOpts{Key: key, Message: "much wow"})
	assert.ErrorIs(t, err, ErrKeyMaterialZeroed)
}

func TestFailingVerifyMessage(t *testing.T) {
	key, err := GenerateKeyMaterial(&netparams.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Zero()

	addr, err := key.P2PKHAddress()
	if err != nil {
		t.Fatal(err)
	}
	signature, err := SignMessage(SignMessageOpts{Key: key, Message: "much wow"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		opts VerifyMessageOpts
		err  error
	}{
		{
			opts: VerifyMessageOpts{
				Address:   "notanaddress",
				Signature: signature,
				Message:   "much wow",
				Network:   &netparams.MainNetParams,
			},
			err: ErrInvalidAddress,
		},
		{
			opts: VerifyMessageOpts{
				Address:   addr.String(),
				Signature: signature,
				Message:   "much wow",
				Network:   &netparams.TestNet3Params,
			},
			err: ErrInvalidAddress,
		},
		{
			opts: VerifyMessageOpts{
				Address:   addr.String(),
				Signature: signature,
				Network:   &netparams.MainNetParams,
			},
			err: ErrNullMessage,
		},
		{
			opts: VerifyMessageOpts{
				Address:   addr.String(),
				Signature: "not base64 !!!",
				Message:   "much wow",
				Network:   &netparams.MainNetParams,
			},
			err: ErrInvalidSignature,
		},
	}
	for _, tt := range tests {
		_, err := VerifyMessage(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}
