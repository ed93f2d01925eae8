package types

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/utils"
)

const (
	TransactionSignatureSize = utils.SignatureSize
	TransactionHeaderSize    = AccountAddressSize + 8 + 8 + 4
)

type TransactionSignature [TransactionSignatureSize]byte

// TransactionHeader carries the sender-level data checked before a payload is executed.
// Energy is the maximum the sender is willing to pay for.
type TransactionHeader struct {
	Sender      AccountAddress
	Nonce       Nonce
	Energy      Energy
	PayloadSize uint32
}

func (h *TransactionHeader) Serialize(w *serialization.Writer) {
	h.Sender.Serialize(w)
	h.Nonce.Serialize(w)
	h.Energy.Serialize(w)
	w.PutUint32(h.PayloadSize)
}

func (h *TransactionHeader) Bytes() []byte {
	w := serialization.NewWriter()
	h.Serialize(w)
	return w.Bytes()
}

func DeserializeTransactionHeader(r *serialization.Reader) (*TransactionHeader, error) {
	sender, err := DeserializeAccountAddress(r)
	if err != nil {
		return nil, WrapDecodeError("header sender", err)
	}
	nonce, err := DeserializeNonce(r)
	if err != nil {
		return nil, WrapDecodeError("header nonce", err)
	}
	energy, err := DeserializeEnergy(r)
	if err != nil {
		return nil, WrapDecodeError("header energy", err)
	}
	size, err := r.GetUint32()
	if err != nil {
		return nil, WrapDecodeError("header payload size", err)
	}
	return &TransactionHeader{Sender: sender, Nonce: nonce, Energy: energy, PayloadSize: size}, nil
}

type Transaction struct {
	Signature TransactionSignature
	Header    *TransactionHeader
	Payload   EncodedPayload
}

// NewTransaction builds an unsigned transaction whose header size matches the payload.
func NewTransaction(sender AccountAddress, nonce Nonce, energy Energy, payload Payload) *Transaction {
	encoded := EncodePayload(payload)
	return &Transaction{
		Header: &TransactionHeader{
			Sender:      sender,
			Nonce:       nonce,
			Energy:      energy,
			PayloadSize: uint32(len(encoded)),
		},
		Payload: encoded,
	}
}

// SignBytes is the message covered by the signature: header followed by payload.
func (tx *Transaction) SignBytes() []byte {
	header := tx.Header.Bytes()
	msg := make([]byte, 0, len(header)+len(tx.Payload))
	msg = append(msg, header...)
	return append(msg, tx.Payload...)
}

func (tx *Transaction) Hash() utils.Hash {
	return utils.HashOf(tx.SignBytes())
}

func (tx *Transaction) Serialize(w *serialization.Writer) {
	w.PutFixed(tx.Signature[:])
	tx.Header.Serialize(w)
	w.PutFixed(tx.Payload)
}

func (tx *Transaction) Bytes() []byte {
	w := serialization.NewWriter()
	tx.Serialize(w)
	return w.Bytes()
}

// DeserializeTransaction reads exactly the number of payload bytes announced by the header.
// The payload itself stays encoded.
func DeserializeTransaction(data []byte) (*Transaction, error) {
	r := serialization.NewReader(data)
	var tx Transaction
	if err := r.GetFixed(tx.Signature[:]); err != nil {
		return nil, WrapDecodeError("transaction signature", err)
	}
	header, err := DeserializeTransactionHeader(r)
	if err != nil {
		return nil, err
	}
	if uint64(header.PayloadSize) != uint64(r.Remaining()) {
		return nil, WrapDecodeError("transaction payload",
			fmt.Errorf("header says %d bytes, have %d: %w", header.PayloadSize, r.Remaining(), ErrPayloadSizeMismatch))
	}
	payload, err := r.GetBytes(int(header.PayloadSize))
	if err != nil {
		return nil, WrapDecodeError("transaction payload", err)
	}
	tx.Header = header
	tx.Payload = EncodedPayload(payload)
	return &tx, nil
}
