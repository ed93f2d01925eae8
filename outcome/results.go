package outcome

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/types"
)

type ValidResultType uint8

const (
	ValidResultSuccess ValidResultType = 0
	ValidResultReject  ValidResultType = 1
)

// ValidResult is the outcome of a transaction that passed every pre-execution check and
// is therefore part of the chain. Both variants carry the fee actually charged.
type ValidResult interface {
	GetValidResultType() ValidResultType
	Cost() (types.Amount, types.Energy)
	serializeFields(w *serialization.Writer)
}

type TxSuccess struct {
	Events          []Event
	TransactionCost types.Amount
	EnergyCost      types.Energy
}

// TxReject records a transaction that was paid for but had no other effect.
type TxReject struct {
	Reason          RejectReason
	TransactionCost types.Amount
	EnergyCost      types.Energy
}

func (*TxSuccess) GetValidResultType() ValidResultType { return ValidResultSuccess }
func (*TxReject) GetValidResultType() ValidResultType  { return ValidResultReject }

func (s *TxSuccess) Cost() (types.Amount, types.Energy) { return s.TransactionCost, s.EnergyCost }
func (s *TxReject) Cost() (types.Amount, types.Energy)  { return s.TransactionCost, s.EnergyCost }

func (s *TxSuccess) serializeFields(w *serialization.Writer) {
	SerializeEvents(w, s.Events)
	s.TransactionCost.Serialize(w)
	s.EnergyCost.Serialize(w)
}

func (s *TxReject) serializeFields(w *serialization.Writer) {
	SerializeRejectReason(w, s.Reason)
	s.TransactionCost.Serialize(w)
	s.EnergyCost.Serialize(w)
}

func SerializeValidResult(w *serialization.Writer, v ValidResult) {
	w.PutUint8(uint8(v.GetValidResultType()))
	v.serializeFields(w)
}

func DeserializeValidResult(r *serialization.Reader) (ValidResult, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, types.WrapDecodeError("valid result type", err)
	}
	switch ValidResultType(tag) {
	case ValidResultSuccess:
		events, err := DeserializeEvents(r)
		if err != nil {
			return nil, err
		}
		cost, energy, err := deserializeCost(r)
		if err != nil {
			return nil, err
		}
		return &TxSuccess{Events: events, TransactionCost: cost, EnergyCost: energy}, nil
	case ValidResultReject:
		reason, err := DeserializeRejectReason(r)
		if err != nil {
			return nil, err
		}
		cost, energy, err := deserializeCost(r)
		if err != nil {
			return nil, err
		}
		return &TxReject{Reason: reason, TransactionCost: cost, EnergyCost: energy}, nil
	}
	return nil, types.WrapDecodeError("valid result type", fmt.Errorf("tag %d: %w", tag, ErrUnknownResultType))
}

func deserializeCost(r *serialization.Reader) (types.Amount, types.Energy, error) {
	cost, err := types.DeserializeAmount(r)
	if err != nil {
		return 0, 0, types.WrapDecodeError("transaction cost", err)
	}
	energy, err := types.DeserializeEnergy(r)
	if err != nil {
		return 0, 0, types.WrapDecodeError("energy cost", err)
	}
	return cost, energy, nil
}

type TxResultType uint8

const (
	TxResultValid   TxResultType = 0
	TxResultInvalid TxResultType = 1
)

// TxResult is what the scheduler reports for every transaction it was handed.
type TxResult interface {
	GetTxResultType() TxResultType
	serializeFields(w *serialization.Writer)
}

type TxValid struct {
	Result ValidResult
}

type TxInvalid struct {
	Failure FailureKind
}

func (*TxValid) GetTxResultType() TxResultType   { return TxResultValid }
func (*TxInvalid) GetTxResultType() TxResultType { return TxResultInvalid }

func (v *TxValid) serializeFields(w *serialization.Writer) {
	SerializeValidResult(w, v.Result)
}

func (v *TxInvalid) serializeFields(w *serialization.Writer) {
	SerializeFailureKind(w, v.Failure)
}

func SerializeTxResult(w *serialization.Writer, res TxResult) {
	w.PutUint8(uint8(res.GetTxResultType()))
	res.serializeFields(w)
}

func DeserializeTxResult(r *serialization.Reader) (TxResult, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, types.WrapDecodeError("tx result type", err)
	}
	switch TxResultType(tag) {
	case TxResultValid:
		v, err := DeserializeValidResult(r)
		if err != nil {
			return nil, err
		}
		return &TxValid{Result: v}, nil
	case TxResultInvalid:
		f, err := DeserializeFailureKind(r)
		if err != nil {
			return nil, err
		}
		return &TxInvalid{Failure: f}, nil
	}
	return nil, types.WrapDecodeError("tx result type", fmt.Errorf("tag %d: %w", tag, ErrUnknownResultType))
}

func EncodeTxResult(res TxResult) []byte {
	w := serialization.NewWriter()
	SerializeTxResult(w, res)
	return w.Bytes()
}

func DecodeTxResult(data []byte) (TxResult, error) {
	r := serialization.NewReader(data)
	res, err := DeserializeTxResult(r)
	if err != nil {
		return nil, err
	}
	if err := finish(r, "tx result"); err != nil {
		return nil, err
	}
	return res, nil
}

func EncodeEvents(events []Event) []byte {
	w := serialization.NewWriter()
	SerializeEvents(w, events)
	return w.Bytes()
}

func DecodeEvents(data []byte) ([]Event, error) {
	r := serialization.NewReader(data)
	events, err := DeserializeEvents(r)
	if err != nil {
		return nil, err
	}
	if err := finish(r, "events"); err != nil {
		return nil, err
	}
	return events, nil
}

func EncodeRejectReason(reason RejectReason) []byte {
	w := serialization.NewWriter()
	SerializeRejectReason(w, reason)
	return w.Bytes()
}

func DecodeRejectReason(data []byte) (RejectReason, error) {
	r := serialization.NewReader(data)
	reason, err := DeserializeRejectReason(r)
	if err != nil {
		return nil, err
	}
	if err := finish(r, "reject reason"); err != nil {
		return nil, err
	}
	return reason, nil
}
