package outcome

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/types"
)

var (
	ErrInvalidMessageFormat = errors.New("invalid message format")
	ErrUnknownEventType     = errors.New("unknown event type")
	ErrUnknownRejectReason  = errors.New("unknown reject reason")
	ErrUnknownFailureKind   = errors.New("unknown failure kind")
	ErrUnknownResultType    = errors.New("unknown result type")
)

type MessageFormatType uint8

const (
	MessageFormatTypeValue MessageFormatType = 0
	MessageFormatTypeExpr  MessageFormatType = 1
)

// MessageFormat is the message handed to a contract: either an already evaluated runtime
// value or linked code the interpreter still has to evaluate. Only the two types below
// implement it.
type MessageFormat interface {
	GetMessageFormatType() MessageFormatType
	Serialize(w *serialization.Writer)
	isMessageFormat()
}

// ValueMessage holds a serialized runtime value.
type ValueMessage struct {
	Value []byte
}

// ExprMessage holds unevaluated linked code.
type ExprMessage struct {
	Expr types.Expr
}

func (*ValueMessage) GetMessageFormatType() MessageFormatType { return MessageFormatTypeValue }
func (*ExprMessage) GetMessageFormatType() MessageFormatType  { return MessageFormatTypeExpr }

func (*ValueMessage) isMessageFormat() {}
func (*ExprMessage) isMessageFormat()  {}

func (m *ValueMessage) Serialize(w *serialization.Writer) {
	w.PutUint8(uint8(MessageFormatTypeValue))
	w.PutVarBytes(m.Value)
}

func (m *ExprMessage) Serialize(w *serialization.Writer) {
	w.PutUint8(uint8(MessageFormatTypeExpr))
	m.Expr.Serialize(w)
}

// MessageFormatEqual compares two messages by their encoding, so a nil and an empty
// value are the same message.
func MessageFormatEqual(a, b MessageFormat) bool {
	return bytes.Equal(EncodeMessageFormat(a), EncodeMessageFormat(b))
}

func (m *ValueMessage) String() string { return "value " + hexutil.Encode(m.Value) }
func (m *ExprMessage) String() string  { return "expression " + hexutil.Encode(m.Expr) }

func DeserializeMessageFormat(r *serialization.Reader) (MessageFormat, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, types.WrapDecodeError("message format", err)
	}
	switch MessageFormatType(tag) {
	case MessageFormatTypeValue:
		value, err := r.GetVarBytes()
		if err != nil {
			return nil, types.WrapDecodeError("message value", err)
		}
		return &ValueMessage{Value: value}, nil
	case MessageFormatTypeExpr:
		expr, err := types.DeserializeExpr(r)
		if err != nil {
			return nil, types.WrapDecodeError("message expression", err)
		}
		return &ExprMessage{Expr: expr}, nil
	}
	return nil, types.WrapDecodeError("message format", fmt.Errorf("tag %d: %w", tag, ErrInvalidMessageFormat))
}

func EncodeMessageFormat(m MessageFormat) []byte {
	w := serialization.NewWriter()
	m.Serialize(w)
	return w.Bytes()
}

func DecodeMessageFormat(data []byte) (MessageFormat, error) {
	r := serialization.NewReader(data)
	m, err := DeserializeMessageFormat(r)
	if err != nil {
		return nil, err
	}
	if err := finish(r, "message format"); err != nil {
		return nil, err
	}
	return m, nil
}

// finish rejects input left over after a complete value.
func finish(r *serialization.Reader, what string) error {
	return types.WrapDecodeError(what, r.Finish())
}
