package outcome

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/types"
)

type FailureKindType uint8

const (
	FailureInsufficientFunds   FailureKindType = 0
	FailureIncorrectSignature  FailureKindType = 1
	FailureNonSequentialNonce  FailureKindType = 2
	FailureUnknownAccount      FailureKindType = 3
	FailureDepositInsufficient FailureKindType = 4
	FailureNoValidCredential   FailureKindType = 5
)

// FailureKind is a pre-execution failure. A transaction failing with one of these is not
// part of the chain and is charged nothing.
type FailureKind interface {
	GetFailureKindType() FailureKindType
	String() string
	serializeFields(w *serialization.Writer)
}

type InsufficientFunds struct{}

type IncorrectSignature struct{}

// NonSequentialNonce carries the nonce the sender account expected next.
type NonSequentialNonce struct {
	Expected types.Nonce
}

type UnknownAccount struct {
	Account types.AccountAddress
}

type DepositInsufficient struct{}

type NoValidCredential struct{}

func (*InsufficientFunds) GetFailureKindType() FailureKindType   { return FailureInsufficientFunds }
func (*IncorrectSignature) GetFailureKindType() FailureKindType  { return FailureIncorrectSignature }
func (*NonSequentialNonce) GetFailureKindType() FailureKindType  { return FailureNonSequentialNonce }
func (*UnknownAccount) GetFailureKindType() FailureKindType      { return FailureUnknownAccount }
func (*DepositInsufficient) GetFailureKindType() FailureKindType { return FailureDepositInsufficient }
func (*NoValidCredential) GetFailureKindType() FailureKindType   { return FailureNoValidCredential }

func (*InsufficientFunds) String() string {
	return "sender cannot pay for the energy of the transaction"
}
func (*IncorrectSignature) String() string { return "signature does not verify" }
func (f *NonSequentialNonce) String() string {
	return fmt.Sprintf("nonce is out of sequence, expected %d", uint64(f.Expected))
}
func (f *UnknownAccount) String() string {
	return fmt.Sprintf("sender account %s does not exist", f.Account)
}
func (*DepositInsufficient) String() string {
	return "declared energy does not cover the base cost of the transaction"
}
func (*NoValidCredential) String() string { return "sender has no valid credential" }

func (*InsufficientFunds) serializeFields(*serialization.Writer)  {}
func (*IncorrectSignature) serializeFields(*serialization.Writer) {}
func (f *NonSequentialNonce) serializeFields(w *serialization.Writer) {
	f.Expected.Serialize(w)
}
func (f *UnknownAccount) serializeFields(w *serialization.Writer) {
	f.Account.Serialize(w)
}
func (*DepositInsufficient) serializeFields(*serialization.Writer) {}
func (*NoValidCredential) serializeFields(*serialization.Writer)   {}

func SerializeFailureKind(w *serialization.Writer, f FailureKind) {
	w.PutUint8(uint8(f.GetFailureKindType()))
	f.serializeFields(w)
}

func DeserializeFailureKind(r *serialization.Reader) (FailureKind, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, types.WrapDecodeError("failure kind", err)
	}
	switch FailureKindType(tag) {
	case FailureInsufficientFunds:
		return &InsufficientFunds{}, nil
	case FailureIncorrectSignature:
		return &IncorrectSignature{}, nil
	case FailureNonSequentialNonce:
		nonce, err := types.DeserializeNonce(r)
		if err != nil {
			return nil, types.WrapDecodeError("expected nonce", err)
		}
		return &NonSequentialNonce{Expected: nonce}, nil
	case FailureUnknownAccount:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, types.WrapDecodeError("unknown account", err)
		}
		return &UnknownAccount{Account: account}, nil
	case FailureDepositInsufficient:
		return &DepositInsufficient{}, nil
	case FailureNoValidCredential:
		return &NoValidCredential{}, nil
	}
	return nil, types.WrapDecodeError("failure kind", fmt.Errorf("tag %d: %w", tag, ErrUnknownFailureKind))
}
