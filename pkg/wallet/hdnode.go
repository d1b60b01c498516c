package wallet

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// HdNode is a node of the BIP32 hierarchical deterministic derivation
// tree. The root node is created from a seed at depth 0; child nodes are
// created on demand with DeriveChild, each one depth level below its
// parent. A node derived from a neutered parent holds public material only
// and cannot derive hardened children.
type HdNode struct {
	extKey *hdkeychain.ExtendedKey
	net    *chaincfg.Params
	index  uint32
}

// NewHdNodeFromSeed creates the root node of a derivation tree from a
// wallet seed. The seed must be between 16 and 64 bytes; seeds produced by
// Mnemonic.Seed always qualify.
func NewHdNodeFromSeed(seed []byte, net *chaincfg.Params) (*HdNode, error) {
	if len(seed) <= 0 {
		return nil, ErrNullSeed
	}
	if net == nil {
		return nil, ErrNullNetwork
	}

	extKey, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("new master key: %w", err)
	}
	return &HdNode{extKey: extKey, net: net}, nil
}

// NewHdNodeFromString parses a node from its base58 extended key encoding.
func NewHdNodeFromString(extKeyStr string, net *chaincfg.Params) (*HdNode, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}

	extKey, err := hdkeychain.NewKeyFromString(extKeyStr)
	if err != nil {
		return nil, fmt.Errorf("parse extended key: %w", err)
	}
	if !extKey.IsForNet(net) {
		return nil, ErrNullNetwork
	}
	return &HdNode{extKey: extKey, net: net}, nil
}

// DeriveChild derives the child node at the given index. Indexes at or
// above hdkeychain.HardenedKeyStart denote hardened children and require
// the node to hold private key material. The receiver is unaffected; the
// returned node is independent of it.
func (n *HdNode) DeriveChild(index uint32) (*HdNode, error) {
	if index >= hdkeychain.HardenedKeyStart && !n.extKey.IsPrivate() {
		return nil, ErrPublicDerivationNotHardenable
	}
	if n.Depth() == math.MaxUint8 {
		return nil, ErrMaxDerivationDepth
	}

	childKey, err := n.extKey.Derive(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HdNode{extKey: childKey, net: n.net, index: index}, nil
}

// DerivePath derives the node at the end of the given relative path.
func (n *HdNode) DerivePath(path DerivationPath) (*HdNode, error) {
	node := n
	for _, step := range path {
		childNode, err := node.DeriveChild(step)
		if err != nil {
			return nil, err
		}
		node = childNode
	}
	return node, nil
}

// Neuter returns the public-only counterpart of the node. The returned
// node can derive non-hardened children but holds no secret bytes.
func (n *HdNode) Neuter() (*HdNode, error) {
	pubKey, err := n.extKey.Neuter()
	if err != nil {
		return nil, fmt.Errorf("neuter extended key: %w", err)
	}
	return &HdNode{extKey: pubKey, net: n.net, index: n.index}, nil
}

// Depth returns the node's depth in the tree, 0 for the root.
func (n *HdNode) Depth() uint8 {
	return n.extKey.Depth()
}

// ChildIndex returns the index this node was derived at, 0 for the root.
func (n *HdNode) ChildIndex() uint32 {
	return n.index
}

// ParentFingerprint returns the fingerprint of the node's parent.
func (n *HdNode) ParentFingerprint() uint32 {
	return n.extKey.ParentFingerprint()
}

// IsPrivate returns whether the node holds private key material.
func (n *HdNode) IsPrivate() bool {
	return n.extKey.IsPrivate()
}

// Network returns the network the node targets.
func (n *HdNode) Network() *chaincfg.Params {
	return n.net
}

// String returns the base58 extended key encoding of the node.
func (n *HdNode) String() string {
	return n.extKey.String()
}

// PublicKey returns the node's public key.
func (n *HdNode) PublicKey() (*btcec.PublicKey, error) {
	pubKey, err := n.extKey.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("extract public key: %w", err)
	}
	return pubKey, nil
}

// Address returns the P2PKH address of the node's public key.
func (n *HdNode) Address() (*Address, error) {
	pubKey, err := n.PublicKey()
	if err != nil {
		return nil, err
	}
	return NewAddressFromPublicKey(pubKey, n.net)
}

// KeyMaterial extracts the node's private key as owned key material. The
// caller becomes responsible for zeroing the returned key. Fails on
// neutered nodes.
func (n *HdNode) KeyMaterial() (*KeyMaterial, error) {
	if !n.extKey.IsPrivate() {
		return nil, ErrNoPrivateKey
	}

	privKey, err := n.extKey.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}
	defer privKey.Zero()

	return newKeyMaterial(privKey.Serialize(), n.net), nil
}
