package bufferutil

import (
	"encoding/hex"
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// KoinuPerCoin is the number of koinu (the smallest currency unit)
	// in one whole coin.
	KoinuPerCoin = 100000000
	// MaxCoinPrecision is the number of decimal digits of a coin amount.
	MaxCoinPrecision = 8

	txIDByteLen = 32
)

var (
	// ErrInvalidTxID ...
	ErrInvalidTxID = errors.New("transaction id must be a 32 byte array in hex format")
	// ErrInvalidCoinAmount ...
	ErrInvalidCoinAmount = errors.New(
		"coin amount must be a positive decimal with at most 8 fractional digits",
	)
)

func init() {
	decimal.DivisionPrecision = MaxCoinPrecision
}

// ReverseBytes returns a copy of the given buffer in reverse order.
func ReverseBytes(buf []byte) []byte {
	reversed := make([]byte, len(buf))
	for i, b := range buf {
		reversed[len(buf)-1-i] = b
	}
	return reversed
}

// TxIDFromBytes converts a txid from internal byte order to its canonical
// hex representation (display order).
func TxIDFromBytes(buffer []byte) string {
	return hex.EncodeToString(ReverseBytes(buffer))
}

// TxIDToBytes converts a txid hex string to internal byte order.
func TxIDToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, ErrInvalidTxID
	}
	if len(buffer) != txIDByteLen {
		return nil, ErrInvalidTxID
	}
	return ReverseBytes(buffer), nil
}

// CoinsToKoinu converts a decimal coin amount in string format (eg. "10.5")
// to the equivalent amount in koinu.
func CoinsToKoinu(str string) (uint64, error) {
	amount, err := decimal.NewFromString(str)
	if err != nil {
		return 0, ErrInvalidCoinAmount
	}
	if amount.Sign() <= 0 {
		return 0, ErrInvalidCoinAmount
	}
	koinu := amount.Mul(decimal.NewFromInt(KoinuPerCoin))
	if !koinu.IsInteger() {
		return 0, ErrInvalidCoinAmount
	}
	bigKoinu := koinu.BigInt()
	if !bigKoinu.IsUint64() {
		return 0, ErrInvalidCoinAmount
	}
	return bigKoinu.Uint64(), nil
}

// KoinuToCoins converts an amount in koinu to its decimal string
// representation in whole coins.
func KoinuToCoins(value uint64) string {
	return decimal.New(int64(value), -MaxCoinPrecision).String()
}
