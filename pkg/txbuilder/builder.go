// Package txbuilder assembles, signs and serializes Dogecoin transactions.
// A Builder owns one in-progress transaction and drives it through a
// strict ordered protocol: inputs and outputs are collected first, every
// input is signed, and only a fully signed transaction can be serialized
// to its canonical wire encoding.
package txbuilder

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	log "github.com/sirupsen/logrus"

	"github.com/dogekit/dogekit/pkg/wallet"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullUtxo ...
	ErrNullUtxo = errors.New("utxo must not be null")
	// ErrNullKey ...
	ErrNullKey = errors.New("signing key must not be null")

	// ErrInvalidTxID ...
	ErrInvalidTxID = errors.New("txid must be a 32 byte hash in hex format")
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("output address must be a valid address")
	// ErrZeroInputAmount ...
	ErrZeroInputAmount = errors.New("input amount must not be zero")
	// ErrZeroOutputAmount ...
	ErrZeroOutputAmount = errors.New("output amount must not be zero")
	// ErrDuplicateUtxo ...
	ErrDuplicateUtxo = errors.New("utxo with same txid and index already added")
	// ErrInputIndexOutOfRange ...
	ErrInputIndexOutOfRange = errors.New("input index out of range")

	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")
	// ErrBuilderFinalized ...
	ErrBuilderFinalized = errors.New(
		"inputs and outputs must not be added after the first signature",
	)
	// ErrIncompleteSigning ...
	ErrIncompleteSigning = errors.New(
		"transaction must have all inputs signed before being serialized",
	)
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New(
		"sum of output amounts must not exceed the sum of input amounts",
	)
)

// State is the stage the builder's transaction is at. Operations are only
// legal in specific states and fail otherwise instead of producing a
// malformed transaction.
type State int

const (
	// StateEmpty ...
	StateEmpty State = iota
	// StateBuilding ...
	StateBuilding
	// StatePartiallySigned ...
	StatePartiallySigned
	// StateFullySigned ...
	StateFullySigned
	// StateSerialized ...
	StateSerialized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StatePartiallySigned:
		return "partially signed"
	case StateFullySigned:
		return "fully signed"
	case StateSerialized:
		return "serialized"
	default:
		return "unknown"
	}
}

// DefaultFeeAdvisoryMultiple is the fee-to-output ratio above which the
// builder logs a fee advisory.
const DefaultFeeAdvisoryMultiple = 10

// Builder collects utxos and outputs, signs each input and emits the
// serialized transaction. A builder represents a single in-progress
// transaction and must not be mutated from more than one goroutine; the
// signing path is serialized internally as a safety net, but sharing a
// builder is not supported.
type Builder struct {
	mtx sync.Mutex

	net     *chaincfg.Params
	utxos   *UtxoSet
	outputs *OutputSet

	// one slot per input, nil meaning unsigned
	sigScripts [][]byte
	signed     int
	state      State

	feeAdvisoryMultiple uint64
	feeAdvisoryLogged   bool

	rawTx []byte
	txID  string
}

// NewBuilderOpts is the struct given to the NewBuilder method.
type NewBuilderOpts struct {
	Network *chaincfg.Params
	// FeeAdvisoryMultiple overrides the fee-to-output ratio that
	// triggers the advisory. Zero means the default.
	FeeAdvisoryMultiple uint64
}

func (o NewBuilderOpts) validate() error {
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// NewBuilder creates an empty transaction builder for the given network.
func NewBuilder(opts NewBuilderOpts) (*Builder, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	feeAdvisoryMultiple := opts.FeeAdvisoryMultiple
	if feeAdvisoryMultiple == 0 {
		feeAdvisoryMultiple = DefaultFeeAdvisoryMultiple
	}

	outputs, err := NewOutputSet(opts.Network)
	if err != nil {
		return nil, err
	}

	return &Builder{
		net:                 opts.Network,
		utxos:               NewUtxoSet(),
		outputs:             outputs,
		sigScripts:          make([][]byte, 0),
		state:               StateEmpty,
		feeAdvisoryMultiple: feeAdvisoryMultiple,
	}, nil
}

// State returns the builder's current stage.
func (b *Builder) State() State {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.state
}

// AddUtxoOpts is the struct given to the AddUtxo method.
type AddUtxoOpts struct {
	TxID   string
	Index  uint32
	Amount uint64
	// PkScript is the script locking the referenced output. It may be
	// omitted when the utxo pays the key that will sign it, in which
	// case the script is reconstructed from the signing key.
	PkScript []byte
}

// AddUtxo appends an input spending the referenced output. Only legal
// before the first signature has been applied.
func (b *Builder) AddUtxo(opts AddUtxoOpts) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state != StateEmpty && b.state != StateBuilding {
		return ErrBuilderFinalized
	}

	hash, err := chainhash.NewHashFromStr(opts.TxID)
	if err != nil || len(opts.TxID) != chainhash.HashSize*2 {
		return ErrInvalidTxID
	}

	if err := b.utxos.Add(&Utxo{
		Hash:     *hash,
		Index:    opts.Index,
		Amount:   opts.Amount,
		PkScript: opts.PkScript,
	}); err != nil {
		return err
	}

	b.sigScripts = append(b.sigScripts, nil)
	b.state = StateBuilding
	return nil
}

// AddOutput appends an output paying amount koinu to address. Only legal
// before the first signature has been applied.
func (b *Builder) AddOutput(address string, amount uint64) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state != StateEmpty && b.state != StateBuilding {
		return ErrBuilderFinalized
	}

	if err := b.outputs.Add(address, amount); err != nil {
		return err
	}

	b.state = StateBuilding
	return nil
}

// EstimatedFee returns the implicit fee of the transaction, the difference
// between the total input and output amounts. Outputs exceeding the inputs
// fail with ErrInsufficientFunds.
func (b *Builder) EstimatedFee() (uint64, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.estimatedFee()
}

func (b *Builder) estimatedFee() (uint64, error) {
	totalIn := b.utxos.TotalAmount()
	totalOut := b.outputs.TotalAmount()
	if totalOut > totalIn {
		return 0, ErrInsufficientFunds
	}
	return totalIn - totalOut, nil
}

// RecommendedFee returns the fee in koinu a transaction with the builder's
// current shape should pay at the given rate per 1000 bytes, assuming
// pay-to-pubkey-hash inputs and outputs. Useful to size the change output
// before signing.
func (b *Builder) RecommendedFee(feePerKB uint64) uint64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	inScriptTypes := make([]int, b.utxos.Len())
	outScriptTypes := make([]int, b.outputs.Len())
	for i := range inScriptTypes {
		inScriptTypes[i] = P2PKH
	}
	for i := range outScriptTypes {
		outScriptTypes[i] = P2PKH
	}

	txSize := EstimateTxSize(inScriptTypes, nil, outScriptTypes)
	return EstimateFee(txSize, feePerKB)
}

// FeeAdvisory reports whether the implicit fee exceeds the configured
// multiple of the total output amount. It guards against fat-fingered
// amounts and is advisory only, never a hard failure.
func (b *Builder) FeeAdvisory() (bool, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	fee, err := b.estimatedFee()
	if err != nil {
		return false, err
	}
	return b.feeExceedsAdvisory(fee), nil
}

func (b *Builder) feeExceedsAdvisory(fee uint64) bool {
	totalOut := b.outputs.TotalAmount()
	// the threshold would overflow, no fee can exceed it
	if totalOut > 0 && b.feeAdvisoryMultiple > math.MaxUint64/totalOut {
		return false
	}
	return fee > totalOut*b.feeAdvisoryMultiple
}

// SignInputOpts is the struct given to the SignInput method.
type SignInputOpts struct {
	InIndex uint32
	Key     *wallet.KeyMaterial
}

func (o SignInputOpts) validate() error {
	if o.Key == nil {
		return ErrNullKey
	}
	return nil
}

// SignInput produces (and verifies) a signature for a specific input with
// the provided key material, covering the current input and output sets
// with SIGHASH_ALL. The first signature freezes the transaction shape:
// no inputs or outputs can be added afterwards.
func (b *Builder) SignInput(opts SignInputOpts) error {
	if err := opts.validate(); err != nil {
		return err
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	switch b.state {
	case StateBuilding, StatePartiallySigned:
	case StateEmpty:
		return ErrEmptyInputs
	default:
		return ErrBuilderFinalized
	}
	if int(opts.InIndex) >= b.utxos.Len() {
		return ErrInputIndexOutOfRange
	}
	if b.outputs.Len() <= 0 {
		return ErrEmptyOutputs
	}

	sigScript, err := b.signInput(int(opts.InIndex), opts.Key)
	if err != nil {
		return err
	}

	if b.sigScripts[opts.InIndex] == nil {
		b.signed++
	}
	b.sigScripts[opts.InIndex] = sigScript

	if b.signed == b.utxos.Len() {
		b.state = StateFullySigned
		b.logFeeAdvisory()
	} else {
		b.state = StatePartiallySigned
	}
	return nil
}

func (b *Builder) signInput(inIndex int, key *wallet.KeyMaterial) ([]byte, error) {
	pubKey, err := key.PublicKey()
	if err != nil {
		return nil, err
	}

	prevScript := b.utxos.At(inIndex).PkScript
	if len(prevScript) <= 0 {
		addr, err := wallet.NewAddressFromPublicKey(pubKey, b.net)
		if err != nil {
			return nil, err
		}
		prevScript, err = addr.PkScript()
		if err != nil {
			return nil, err
		}
	}

	unsignedTx := b.unsignedTx()
	digest, err := txscript.CalcSignatureHash(
		prevScript, txscript.SigHashAll, unsignedTx, inIndex,
	)
	if err != nil {
		return nil, fmt.Errorf("compute signature hash: %w", err)
	}

	signature, err := key.SignDigest(digest)
	if err != nil {
		return nil, err
	}

	if !signature.Verify(digest, pubKey) {
		return nil, fmt.Errorf(
			"signature verification failed for input %d", inIndex,
		)
	}

	sigWithSigHashType := append(signature.Serialize(), byte(txscript.SigHashAll))
	sigScript, err := txscript.NewScriptBuilder().
		AddData(sigWithSigHashType).
		AddData(pubKey.SerializeCompressed()).
		Script()
	if err != nil {
		return nil, fmt.Errorf("build signature script: %w", err)
	}
	return sigScript, nil
}

// Serialize emits the canonical wire encoding of the transaction. Only
// legal once every input has been signed; afterwards the builder is
// immutable and Serialize keeps returning the same bytes.
func (b *Builder) Serialize() ([]byte, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state == StateSerialized {
		return b.rawTx, nil
	}
	if b.state != StateFullySigned {
		return nil, ErrIncompleteSigning
	}

	tx := b.unsignedTx()
	for i, sigScript := range b.sigScripts {
		tx.TxIn[i].SignatureScript = sigScript
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}

	b.rawTx = buf.Bytes()
	b.txID = tx.TxHash().String()
	b.state = StateSerialized
	return b.rawTx, nil
}

// TxID returns the transaction id of the serialized transaction.
func (b *Builder) TxID() (string, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state != StateSerialized {
		return "", ErrIncompleteSigning
	}
	return b.txID, nil
}

// InputCount returns the number of inputs added so far.
func (b *Builder) InputCount() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.utxos.Len()
}

// OutputCount returns the number of outputs added so far.
func (b *Builder) OutputCount() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.outputs.Len()
}

func (b *Builder) unsignedTx() *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	for _, utxo := range b.utxos.All() {
		outpoint := utxo.OutPoint()
		tx.AddTxIn(wire.NewTxIn(&outpoint, nil, nil))
	}
	for _, out := range b.outputs.All() {
		tx.AddTxOut(wire.NewTxOut(int64(out.Amount), out.PkScript()))
	}
	return tx
}

func (b *Builder) logFeeAdvisory() {
	if b.feeAdvisoryLogged {
		return
	}
	fee, err := b.estimatedFee()
	if err != nil {
		return
	}
	if b.feeExceedsAdvisory(fee) {
		b.feeAdvisoryLogged = true
		log.Warnf(
			"transaction fee %d exceeds %dx the total output amount, "+
				"double check the input and output amounts",
			fee, b.feeAdvisoryMultiple,
		)
	}
}
