package txbuilder

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Utxo references a previous transaction's output by id and index, along
// with the amount it carries and, optionally, the script that locks it.
type Utxo struct {
	Hash     chainhash.Hash
	Index    uint32
	Amount   uint64
	PkScript []byte
}

// TxID returns the hex txid of the referenced transaction in display order.
func (u *Utxo) TxID() string {
	return u.Hash.String()
}

// OutPoint returns the wire outpoint of the utxo.
func (u *Utxo) OutPoint() wire.OutPoint {
	return wire.OutPoint{Hash: u.Hash, Index: u.Index}
}

// UtxoSet is an ordered collection of transaction inputs. Iteration order
// equals insertion order; this order is load-bearing because it determines
// the input ordering of the serialized transaction.
type UtxoSet struct {
	utxos     []*Utxo
	outpoints map[wire.OutPoint]struct{}
}

// NewUtxoSet returns an empty utxo set.
func NewUtxoSet() *UtxoSet {
	return &UtxoSet{
		utxos:     make([]*Utxo, 0),
		outpoints: make(map[wire.OutPoint]struct{}),
	}
}

// Add appends a utxo to the set. A utxo whose (txid, index) pair is
// already present is rejected with ErrDuplicateUtxo, never merged, and
// leaves the set unchanged.
func (s *UtxoSet) Add(utxo *Utxo) error {
	if utxo == nil {
		return ErrNullUtxo
	}
	if utxo.Amount == 0 {
		return ErrZeroInputAmount
	}

	outpoint := utxo.OutPoint()
	if _, ok := s.outpoints[outpoint]; ok {
		return ErrDuplicateUtxo
	}

	s.outpoints[outpoint] = struct{}{}
	s.utxos = append(s.utxos, utxo)
	return nil
}

// Len returns the number of utxos in the set.
func (s *UtxoSet) Len() int {
	return len(s.utxos)
}

// At returns the utxo at the given insertion position.
func (s *UtxoSet) At(i int) *Utxo {
	return s.utxos[i]
}

// All returns the utxos in insertion order.
func (s *UtxoSet) All() []*Utxo {
	utxos := make([]*Utxo, len(s.utxos))
	copy(utxos, s.utxos)
	return utxos
}

// TotalAmount returns the sum of the utxo amounts.
func (s *UtxoSet) TotalAmount() uint64 {
	var total uint64
	for _, u := range s.utxos {
		total += u.Amount
	}
	return total
}
