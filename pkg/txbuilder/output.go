package txbuilder

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/dogekit/dogekit/pkg/wallet"
)

// Output pays an amount in koinu to a destination address. The locking
// script is resolved when the output is created so that a malformed
// destination is rejected before it can reach a signature.
type Output struct {
	Address  string
	Amount   uint64
	pkScript []byte
}

// PkScript returns the output's locking script.
func (o *Output) PkScript() []byte {
	return o.pkScript
}

// OutputSet is an ordered collection of transaction outputs. Iteration
// order equals insertion order and determines the output ordering of the
// serialized transaction.
type OutputSet struct {
	outputs []*Output
	net     *chaincfg.Params
}

// NewOutputSet returns an empty output set whose destinations are
// validated against the given network.
func NewOutputSet(net *chaincfg.Params) (*OutputSet, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}
	return &OutputSet{
		outputs: make([]*Output, 0),
		net:     net,
	}, nil
}

// Add appends an output paying amount to address. The amount must be a
// positive count of koinu and the address must validate against the set's
// network; both are enforced at insertion time, not at signing time.
func (s *OutputSet) Add(address string, amount uint64) error {
	if amount == 0 {
		return ErrZeroOutputAmount
	}
	if !wallet.ValidateAddress(address, s.net) {
		return ErrInvalidOutputAddress
	}

	addr, err := btcutil.DecodeAddress(address, s.net)
	if err != nil {
		return ErrInvalidOutputAddress
	}
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return fmt.Errorf("build output script: %w", err)
	}

	s.outputs = append(s.outputs, &Output{
		Address:  address,
		Amount:   amount,
		pkScript: pkScript,
	})
	return nil
}

// Len returns the number of outputs in the set.
func (s *OutputSet) Len() int {
	return len(s.outputs)
}

// At returns the output at the given insertion position.
func (s *OutputSet) At(i int) *Output {
	return s.outputs[i]
}

// All returns the outputs in insertion order.
func (s *OutputSet) All() []*Output {
	outputs := make([]*Output, len(s.outputs))
	copy(outputs, s.outputs)
	return outputs
}

// TotalAmount returns the sum of the output amounts.
func (s *OutputSet) TotalAmount() uint64 {
	var total uint64
	for _, o := range s.outputs {
		total += o.Amount
	}
	return total
}
