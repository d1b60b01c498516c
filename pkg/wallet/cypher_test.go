package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecrypt(t *testing.T) {
	plaintext := "bottle empty spoon salon rose sea blue sibling decade pepper " +
		"emerge kiwi"
	passphrase := "supersecurekey"

	encOpts := EncryptOpts{
		PlainText:  plaintext,
		Passphrase: passphrase,
	}
	cyphertext, err := Encrypt(encOpts)
	if err != nil {
		t.Fatal(err)
	}

	decOpts := DecryptOpts{
		CypherText: cyphertext,
		Passphrase: passphrase,
	}
	revealedtext, err := Decrypt(decOpts)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, plaintext, revealedtext)

	// the salt is random, two encryptions of the same text must differ
	otherCyphertext, err := Encrypt(encOpts)
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEqual(t, cyphertext, otherCyphertext)

	// a wrong passphrase must never reveal the text
	_, err = Decrypt(DecryptOpts{
		CypherText: cyphertext,
		Passphrase: "supersecurekez",
	})
	assert.Error(t, err)
}

func TestFailingEncrypt(t *testing.T) {
	tests := []struct {
		opts EncryptOpts
		err  error
	}{
		{
			opts: EncryptOpts{
				PlainText:  "",
				Passphrase: "supersecurekey",
			},
			err: ErrNullPlainText,
		},
		{
			opts: EncryptOpts{
				PlainText:  "super secret message",
				Passphrase: "",
			},
			err: ErrNullPassphrase,
		},
	}
	for _, tt := range tests {
		_, err := Encrypt(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestFailingDecrypt(t *testing.T) {
	tests := []struct {
		opts DecryptOpts
		err  error
	}{
		{
			opts: DecryptOpts{
				CypherText: "",
				Passphrase: "supersecurekey",
			},
			err: ErrNullCypherText,
		},
		{
			opts: DecryptOpts{
				CypherText: "supersecretmessage",
				Passphrase: "supersecurekey",
			},
			err: ErrInvalidCypherText,
		},
		{
			// valid base64 but shorter than the appended salt
			opts: DecryptOpts{
				CypherText: "dG9vc2hvcnQ=",
				Passphrase: "supersecurekey",
			},
			err: ErrInvalidCypherText,
		},
		{
			opts: DecryptOpts{
				CypherText: "fUzjTyxipK6fGrGXTLYFCb6oFHEOtqfdJTvXM5XMBx+YbK1EgFv+1PqkmZ2A3skaIyqQ0jJjA4gzKGw/dxtK0rRKL0ud8bq8BPImQvXAaYk=",
				Passphrase: "",
			},
			err: ErrNullPassphrase,
		},
	}
	for _, tt := range tests {
		_, err := Decrypt(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}
