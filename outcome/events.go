package outcome

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/types"
)

type EventType uint8

const (
	EventTypeModuleDeployed               EventType = 0
	EventTypeContractInitialized          EventType = 1
	EventTypeUpdated                      EventType = 2
	EventTypeTransferred                  EventType = 3
	EventTypeAccountCreated               EventType = 4
	EventTypeCredentialDeployed           EventType = 5
	EventTypeAccountEncryptionKeyDeployed EventType = 6
	EventTypeBakerAdded                   EventType = 7
	EventTypeBakerRemoved                 EventType = 8
	EventTypeBakerAccountUpdated          EventType = 9
	EventTypeBakerKeyUpdated              EventType = 10
	EventTypeStakeDelegated               EventType = 11
	EventTypeStakeUndelegated             EventType = 12
)

// Event records one side effect of a committed transaction. Events are never mutated
// after they are produced.
type Event interface {
	GetEventType() EventType
	serializeFields(w *serialization.Writer)
}

type ModuleDeployed struct {
	ModuleRef types.ModuleRef
}

type ContractInitialized struct {
	ModuleRef    types.ModuleRef
	ContractName types.ContractTypeName
	Address      types.ContractAddress
	Amount       types.Amount
}

type Updated struct {
	Address    types.ContractAddress
	Instigator types.Address
	Amount     types.Amount
	Message    MessageFormat
}

type Transferred struct {
	From   types.Address
	Amount types.Amount
	To     types.Address
}

type AccountCreated struct {
	Account types.AccountAddress
}

type CredentialDeployed struct {
	RegID   types.CredentialRegistrationID
	Account types.AccountAddress
}

type AccountEncryptionKeyDeployed struct {
	Key     types.AccountEncryptionKey
	Account types.AccountAddress
}

type BakerAdded struct {
	BakerID types.BakerID
}

type BakerRemoved struct {
	BakerID types.BakerID
}

type BakerAccountUpdated struct {
	BakerID types.BakerID
	Account types.AccountAddress
}

type BakerKeyUpdated struct {
	BakerID types.BakerID
	Key     types.BakerSignVerifyKey
}

type StakeDelegated struct {
	Account types.AccountAddress
	BakerID types.BakerID
}

// StakeUndelegated has a nil BakerID when the account had no delegation.
type StakeUndelegated struct {
	Account types.AccountAddress
	BakerID *types.BakerID
}

func (*ModuleDeployed) GetEventType() EventType      { return EventTypeModuleDeployed }
func (*ContractInitialized) GetEventType() EventType { return EventTypeContractInitialized }
func (*Updated) GetEventType() EventType             { return EventTypeUpdated }
func (*Transferred) GetEventType() EventType         { return EventTypeTransferred }
func (*AccountCreated) GetEventType() EventType      { return EventTypeAccountCreated }
func (*CredentialDeployed) GetEventType() EventType  { return EventTypeCredentialDeployed }
func (*AccountEncryptionKeyDeployed) GetEventType() EventType {
	return EventTypeAccountEncryptionKeyDeployed
}
func (*BakerAdded) GetEventType() EventType          { return EventTypeBakerAdded }
func (*BakerRemoved) GetEventType() EventType        { return EventTypeBakerRemoved }
func (*BakerAccountUpdated) GetEventType() EventType { return EventTypeBakerAccountUpdated }
func (*BakerKeyUpdated) GetEventType() EventType     { return EventTypeBakerKeyUpdated }
func (*StakeDelegated) GetEventType() EventType      { return EventTypeStakeDelegated }
func (*StakeUndelegated) GetEventType() EventType    { return EventTypeStakeUndelegated }

func (e *ModuleDeployed) serializeFields(w *serialization.Writer) {
	e.ModuleRef.Serialize(w)
}

func (e *ContractInitialized) serializeFields(w *serialization.Writer) {
	e.ModuleRef.Serialize(w)
	e.ContractName.Serialize(w)
	e.Address.Serialize(w)
	e.Amount.Serialize(w)
}

func (e *Updated) serializeFields(w *serialization.Writer) {
	e.Address.Serialize(w)
	types.SerializeAddress(w, e.Instigator)
	e.Amount.Serialize(w)
	e.Message.Serialize(w)
}

func (e *Transferred) serializeFields(w *serialization.Writer) {
	types.SerializeAddress(w, e.From)
	e.Amount.Serialize(w)
	types.SerializeAddress(w, e.To)
}

func (e *AccountCreated) serializeFields(w *serialization.Writer) {
	e.Account.Serialize(w)
}

func (e *CredentialDeployed) serializeFields(w *serialization.Writer) {
	e.RegID.Serialize(w)
	e.Account.Serialize(w)
}

func (e *AccountEncryptionKeyDeployed) serializeFields(w *serialization.Writer) {
	e.Key.Serialize(w)
	e.Account.Serialize(w)
}

func (e *BakerAdded) serializeFields(w *serialization.Writer) {
	e.BakerID.Serialize(w)
}

func (e *BakerRemoved) serializeFields(w *serialization.Writer) {
	e.BakerID.Serialize(w)
}

func (e *BakerAccountUpdated) serializeFields(w *serialization.Writer) {
	e.BakerID.Serialize(w)
	e.Account.Serialize(w)
}

func (e *BakerKeyUpdated) serializeFields(w *serialization.Writer) {
	e.BakerID.Serialize(w)
	e.Key.Serialize(w)
}

func (e *StakeDelegated) serializeFields(w *serialization.Writer) {
	e.Account.Serialize(w)
	e.BakerID.Serialize(w)
}

func (e *StakeUndelegated) serializeFields(w *serialization.Writer) {
	e.Account.Serialize(w)
	if e.BakerID == nil {
		w.PutUint8(0)
		return
	}
	w.PutUint8(1)
	e.BakerID.Serialize(w)
}

func SerializeEvent(w *serialization.Writer, e Event) {
	w.PutUint8(uint8(e.GetEventType()))
	e.serializeFields(w)
}

// SerializeEvents writes a u64 count followed by the events in order.
func SerializeEvents(w *serialization.Writer, events []Event) {
	w.PutUint64(uint64(len(events)))
	for _, e := range events {
		SerializeEvent(w, e)
	}
}

func DeserializeEvents(r *serialization.Reader) ([]Event, error) {
	count, err := r.GetUint64()
	if err != nil {
		return nil, types.WrapDecodeError("event count", err)
	}
	// every event takes at least its tag byte
	if count > uint64(r.Remaining()) {
		return nil, types.WrapDecodeError("event count",
			fmt.Errorf("%d events in %d bytes: %w", count, r.Remaining(), serialization.ErrUnexpectedEOF))
	}
	var events []Event
	for i := uint64(0); i < count; i++ {
		e, err := DeserializeEvent(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func DeserializeEvent(r *serialization.Reader) (Event, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, types.WrapDecodeError("event type", err)
	}
	e, err := deserializeEventFields(EventType(tag), r)
	if err != nil {
		return nil, types.WrapDecodeError(fmt.Sprintf("event %d", tag), err)
	}
	return e, nil
}

func deserializeEventFields(eventType EventType, r *serialization.Reader) (Event, error) {
	switch eventType {
	case EventTypeModuleDeployed:
		ref, err := types.DeserializeModuleRef(r)
		if err != nil {
			return nil, err
		}
		return &ModuleDeployed{ModuleRef: ref}, nil
	case EventTypeContractInitialized:
		ref, err := types.DeserializeModuleRef(r)
		if err != nil {
			return nil, err
		}
		name, err := types.DeserializeContractTypeName(r)
		if err != nil {
			return nil, err
		}
		addr, err := types.DeserializeContractAddress(r)
		if err != nil {
			return nil, err
		}
		amount, err := types.DeserializeAmount(r)
		if err != nil {
			return nil, err
		}
		return &ContractInitialized{ModuleRef: ref, ContractName: name, Address: addr, Amount: amount}, nil
	case EventTypeUpdated:
		addr, err := types.DeserializeContractAddress(r)
		if err != nil {
			return nil, err
		}
		instigator, err := types.DeserializeAddress(r)
		if err != nil {
			return nil, err
		}
		amount, err := types.DeserializeAmount(r)
		if err != nil {
			return nil, err
		}
		msg, err := DeserializeMessageFormat(r)
		if err != nil {
			return nil, err
		}
		return &Updated{Address: addr, Instigator: instigator, Amount: amount, Message: msg}, nil
	case EventTypeTransferred:
		from, err := types.DeserializeAddress(r)
		if err != nil {
			return nil, err
		}
		amount, err := types.DeserializeAmount(r)
		if err != nil {
			return nil, err
		}
		to, err := types.DeserializeAddress(r)
		if err != nil {
			return nil, err
		}
		return &Transferred{From: from, Amount: amount, To: to}, nil
	case EventTypeAccountCreated:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &AccountCreated{Account: account}, nil
	case EventTypeCredentialDeployed:
		regID, err := types.DeserializeCredentialRegistrationID(r)
		if err != nil {
			return nil, err
		}
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &CredentialDeployed{RegID: regID, Account: account}, nil
	case EventTypeAccountEncryptionKeyDeployed:
		key, err := types.DeserializeAccountEncryptionKey(r)
		if err != nil {
			return nil, err
		}
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &AccountEncryptionKeyDeployed{Key: key, Account: account}, nil
	case EventTypeBakerAdded:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		return &BakerAdded{BakerID: id}, nil
	case EventTypeBakerRemoved:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		return &BakerRemoved{BakerID: id}, nil
	case EventTypeBakerAccountUpdated:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &BakerAccountUpdated{BakerID: id, Account: account}, nil
	case EventTypeBakerKeyUpdated:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		key, err := types.DeserializeBakerSignVerifyKey(r)
		if err != nil {
			return nil, err
		}
		return &BakerKeyUpdated{BakerID: id, Key: key}, nil
	case EventTypeStakeDelegated:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		return &StakeDelegated{Account: account, BakerID: id}, nil
	case EventTypeStakeUndelegated:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		hasBaker, err := r.GetUint8()
		if err != nil {
			return nil, err
		}
		e := &StakeUndelegated{Account: account}
		switch hasBaker {
		case 0:
		case 1:
			id, err := types.DeserializeBakerID(r)
			if err != nil {
				return nil, err
			}
			e.BakerID = &id
		default:
			return nil, fmt.Errorf("invalid optional tag %d", hasBaker)
		}
		return e, nil
	}
	return nil, fmt.Errorf("tag %d: %w", uint8(eventType), ErrUnknownEventType)
}
