package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTxSize(t *testing.T) {
	tests := []struct {
		inScriptTypes               []int
		inAuxiliaryRedeemScriptSize []int
		outScriptTypes              []int
		expectedSize                int
	}{
		// the classic 1-in 2-out payment with change
		{
			inScriptTypes:  []int{P2PKH},
			outScriptTypes: []int{P2PKH, P2PKH},
			expectedSize:   226,
		},
		{
			inScriptTypes:  []int{P2PKH, P2PKH},
			outScriptTypes: []int{P2PKH},
			expectedSize:   340,
		},
		{
			inScriptTypes:  []int{P2PKH},
			outScriptTypes: []int{P2SH},
			expectedSize:   190,
		},
		// a 2-of-3 multisig input carries its redeem script in the
		// signature script
		{
			inScriptTypes:               []int{P2MS},
			inAuxiliaryRedeemScriptSize: []int{253},
			outScriptTypes:              []int{P2PKH},
			expectedSize:                337,
		},
	}
	for _, tt := range tests {
		size := EstimateTxSize(
			tt.inScriptTypes, tt.inAuxiliaryRedeemScriptSize, tt.outScriptTypes,
		)
		assert.Equal(t, tt.expectedSize, size)
	}
}

func TestEstimateFee(t *testing.T) {
	tests := []struct {
		txSize      int
		feePerKB    uint64
		expectedFee uint64
	}{
		{226, 1000, 226},
		{226, 0, 0},
		{1500, 1, 2},
		{999, 1000000, 999000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expectedFee, EstimateFee(tt.txSize, tt.feePerKB))
	}
}
