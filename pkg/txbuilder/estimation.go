package txbuilder

import "math"

// Script types of the inputs and outputs of a legacy transaction.
const (
	P2PK = iota
	P2PKH
	P2SH
	P2MS
)

var (
	scriptSigSizeByScriptType = map[int]int{
		P2PK:  140, // len + opcode + sig + opcode + pubkey uncompressed
		P2PKH: 108, // len + opcode + sig + opcode + pubkey
	}
	scriptPubKeySizeByScriptType = map[int]int{
		P2PK:  67, // len + pubkey uncompressed + opcode
		P2PKH: 26, // len + opcodes (3) + hash(pubkey) + opcodes (2)
		P2SH:  24, // len + opcodes (2) + hash(script) + opcode
	}
)

// EstimateTxSize makes an estimation of the size in bytes of a legacy
// transaction for which is required to specify the type of the inputs and
// outputs (P2PK, P2PKH, P2SH, P2MS). In case some inputs are of type P2SH
// or P2MS, it is mandatory to pass their redeem script sizes as an
// auxiliary slice in accordance. Dogecoin has no segwit, so there is no
// witness to account for.
func EstimateTxSize(
	inScriptTypes, inAuxiliaryRedeemScriptSize, outScriptTypes []int,
) int {
	// hash + index + sequence
	inBaseSize := 40
	insSize := 0
	auxCount := 0
	for _, scriptType := range inScriptTypes {
		scriptSize, ok := scriptSigSizeByScriptType[scriptType]
		if !ok {
			scriptSize = inAuxiliaryRedeemScriptSize[auxCount]
			auxCount++
		}
		insSize += inBaseSize + scriptSize
	}

	// value
	outBaseSize := 8
	outsSize := 0
	for _, scriptType := range outScriptTypes {
		scriptSize, ok := scriptPubKeySizeByScriptType[scriptType]
		if !ok {
			scriptSize = scriptPubKeySizeByScriptType[P2SH]
		}
		outsSize += outBaseSize + scriptSize
	}

	// version + locktime
	return 8 +
		varIntSerializeSize(uint64(len(inScriptTypes))) +
		varIntSerializeSize(uint64(len(outScriptTypes))) +
		insSize + outsSize
}

// EstimateFee returns the fee in koinu owed by a transaction of the given
// size at the given fee rate per 1000 bytes, rounded up.
func EstimateFee(txSize int, feePerKB uint64) uint64 {
	fee := (uint64(txSize)*feePerKB + 999) / 1000
	return fee
}

func varIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}
