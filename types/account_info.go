package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/utils"
)

const AccountVerifyKeySize = utils.VerifyKeySize

// AccountVerifyKey checks the signatures of transactions sent from an account.
type AccountVerifyKey [AccountVerifyKeySize]byte

func (k AccountVerifyKey) String() string { return hexutil.Encode(k[:]) }

func (k AccountVerifyKey) MarshalText() ([]byte, error) {
	return hexutil.Bytes(k[:]).MarshalText()
}

// AccountInfo is the part of an account the pre-execution checks look at.
type AccountInfo struct {
	Address   AccountAddress
	NextNonce Nonce
	Balance   Amount
	VerifyKey AccountVerifyKey
	// HasValidCredential is false once every credential of the account has expired.
	HasValidCredential bool
}

func (info *AccountInfo) Serialize(w *serialization.Writer) {
	info.Address.Serialize(w)
	info.NextNonce.Serialize(w)
	info.Balance.Serialize(w)
	w.PutFixed(info.VerifyKey[:])
	if info.HasValidCredential {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
}

func (info *AccountInfo) Bytes() []byte {
	w := serialization.NewWriter()
	info.Serialize(w)
	return w.Bytes()
}

func DecodeAccountInfo(data []byte) (*AccountInfo, error) {
	r := serialization.NewReader(data)
	var info AccountInfo
	var err error
	if info.Address, err = DeserializeAccountAddress(r); err != nil {
		return nil, WrapDecodeError("account address", err)
	}
	if info.NextNonce, err = DeserializeNonce(r); err != nil {
		return nil, WrapDecodeError("account nonce", err)
	}
	if info.Balance, err = DeserializeAmount(r); err != nil {
		return nil, WrapDecodeError("account balance", err)
	}
	if err = r.GetFixed(info.VerifyKey[:]); err != nil {
		return nil, WrapDecodeError("account verify key", err)
	}
	flag, err := r.GetUint8()
	if err != nil {
		return nil, WrapDecodeError("account credential flag", err)
	}
	switch flag {
	case 0:
	case 1:
		info.HasValidCredential = true
	default:
		return nil, WrapDecodeError("account credential flag", fmt.Errorf("invalid value %d", flag))
	}
	if err = r.Finish(); err != nil {
		return nil, WrapDecodeError("account info", err)
	}
	return &info, nil
}
