// Package qrcode renders payment addresses as QR codes for display or
// sharing. The address is validated before encoding so that a typo never
// ends up in an image someone pays to.
package qrcode

import (
	"bytes"
	"errors"
	"image/jpeg"
	"os"

	qr "github.com/skip2/go-qrcode"

	"github.com/dogekit/dogekit/pkg/wallet"
)

// DefaultImageSize is the side in pixels of generated QR images.
const DefaultImageSize = 256

// ErrInvalidAddress ...
var ErrInvalidAddress = errors.New("address must be a valid address")

// ToString renders the QR code of an address as a block-character string
// suitable for console output.
func ToString(address string) (string, error) {
	if wallet.NetworkOf(address) == wallet.AddressNetworkUnknown {
		return "", ErrInvalidAddress
	}

	code, err := qr.New(address, qr.Medium)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}

// ToPNG renders the QR code of an address as PNG bytes. A size of 0 means
// the default.
func ToPNG(address string, size int) ([]byte, error) {
	if wallet.NetworkOf(address) == wallet.AddressNetworkUnknown {
		return nil, ErrInvalidAddress
	}
	if size == 0 {
		size = DefaultImageSize
	}
	return qr.Encode(address, qr.Medium, size)
}

// WritePNGFile renders the QR code of an address to a PNG file.
func WritePNGFile(address, filename string, size int) error {
	if wallet.NetworkOf(address) == wallet.AddressNetworkUnknown {
		return ErrInvalidAddress
	}
	if size == 0 {
		size = DefaultImageSize
	}
	return qr.WriteFile(address, qr.Medium, size, filename)
}

// WriteJPEGFile renders the QR code of an address to a JPEG file.
func WriteJPEGFile(address, filename string, size int) error {
	if wallet.NetworkOf(address) == wallet.AddressNetworkUnknown {
		return ErrInvalidAddress
	}
	if size == 0 {
		size = DefaultImageSize
	}

	code, err := qr.New(address, qr.Medium)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, code.Image(size), nil); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}
