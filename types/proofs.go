package types

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
)

// MaxOwnershipProofs is the largest bundle the one-byte count can describe.
const MaxOwnershipProofs = 255

type OwnershipProofEntry struct {
	KeyIndex KeyIndex
	Proof    DlogProof
}

// AccountOwnershipProof proves control over an account by one proof per signing key. It is
// never empty.
type AccountOwnershipProof []OwnershipProofEntry

// NewSingleOwnershipProof builds a bundle for an account with one signing key at index 0.
func NewSingleOwnershipProof(proof DlogProof) AccountOwnershipProof {
	return AccountOwnershipProof{{KeyIndex: 0, Proof: proof}}
}

// Serialize panics on an empty or oversized bundle; such a value can only come from a
// programming error since decoding never produces one.
func (p AccountOwnershipProof) Serialize(w *serialization.Writer) {
	if len(p) == 0 || len(p) > MaxOwnershipProofs {
		panic(fmt.Sprintf("account ownership proof must hold 1..%d entries, got %d", MaxOwnershipProofs, len(p)))
	}
	w.PutUint8(uint8(len(p)))
	for _, entry := range p {
		entry.KeyIndex.Serialize(w)
		entry.Proof.Serialize(w)
	}
}

// DeserializeAccountOwnershipProof treats exhausted input like a zero count: both mean the
// bundle has no proofs.
func DeserializeAccountOwnershipProof(r *serialization.Reader) (AccountOwnershipProof, error) {
	if r.Remaining() == 0 {
		return nil, WrapDecodeError("account ownership proof", ErrEmptyOwnershipProof)
	}
	count, err := r.GetUint8()
	if err != nil {
		return nil, WrapDecodeError("account ownership proof", err)
	}
	if count == 0 {
		return nil, WrapDecodeError("account ownership proof", ErrEmptyOwnershipProof)
	}
	proof := make(AccountOwnershipProof, 0, count)
	for i := 0; i < int(count); i++ {
		index, err := DeserializeKeyIndex(r)
		if err != nil {
			return nil, WrapDecodeError(fmt.Sprintf("ownership proof %d key index", i), err)
		}
		dlog, err := DeserializeDlogProof(r)
		if err != nil {
			return nil, WrapDecodeError(fmt.Sprintf("ownership proof %d", i), err)
		}
		proof = append(proof, OwnershipProofEntry{KeyIndex: index, Proof: dlog})
	}
	return proof, nil
}

// DecodeAccountOwnershipProof decodes a standalone bundle and rejects trailing bytes.
func DecodeAccountOwnershipProof(data []byte) (AccountOwnershipProof, error) {
	r := serialization.NewReader(data)
	proof, err := DeserializeAccountOwnershipProof(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, WrapDecodeError("account ownership proof", err)
	}
	return proof, nil
}

func EncodeAccountOwnershipProof(p AccountOwnershipProof) []byte {
	w := serialization.NewWriter()
	p.Serialize(w)
	return w.Bytes()
}
