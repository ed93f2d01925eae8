package outcome

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/types"
)

type RejectReasonType uint8

const (
	RejectModuleNotWF                    RejectReasonType = 0
	RejectModuleHashAlreadyExists        RejectReasonType = 1
	RejectMessageTypeError               RejectReasonType = 2
	RejectParamsTypeError                RejectReasonType = 3
	RejectInvalidAccountReference        RejectReasonType = 4
	RejectInvalidContractReference       RejectReasonType = 5
	RejectInvalidModuleReference         RejectReasonType = 6
	RejectInvalidContractAddress         RejectReasonType = 7
	RejectReceiverAccountNoCredential    RejectReasonType = 8
	RejectReceiverContractNoCredential   RejectReasonType = 9
	RejectEvaluationError                RejectReasonType = 10
	RejectAmountTooLarge                 RejectReasonType = 11
	RejectSerializationFailure           RejectReasonType = 12
	RejectOutOfEnergy                    RejectReasonType = 13
	RejectRejected                       RejectReasonType = 14
	RejectNonExistentRewardAccount       RejectReasonType = 15
	RejectInvalidProof                   RejectReasonType = 16
	RejectRemovingNonExistentBaker       RejectReasonType = 17
	RejectInvalidBakerRemoveSource       RejectReasonType = 18
	RejectUpdatingNonExistentBaker       RejectReasonType = 19
	RejectInvalidStakeDelegationTarget   RejectReasonType = 20
	RejectDuplicateSignKey               RejectReasonType = 21
	RejectNotFromBakerAccount            RejectReasonType = 22
	RejectDuplicateAccountRegistrationID RejectReasonType = 23
	RejectAccountCredentialInvalid       RejectReasonType = 24
)

// RejectReason explains why a well-formed, paid-for transaction had no effect other than
// its fee. String renders a description from the reason's own fields.
type RejectReason interface {
	GetRejectReasonType() RejectReasonType
	String() string
	serializeFields(w *serialization.Writer)
}

type ModuleNotWF struct{}

type ModuleHashAlreadyExists struct {
	ModuleRef types.ModuleRef
}

type MessageTypeError struct{}

type ParamsTypeError struct{}

type InvalidAccountReference struct {
	Account types.AccountAddress
}

type InvalidContractReference struct {
	ModuleRef    types.ModuleRef
	ContractName types.ContractTypeName
}

type InvalidModuleReference struct {
	ModuleRef types.ModuleRef
}

type InvalidContractAddress struct {
	Address types.ContractAddress
}

type ReceiverAccountNoCredential struct {
	Account types.AccountAddress
}

type ReceiverContractNoCredential struct {
	Address types.ContractAddress
}

type EvaluationError struct{}

// AmountTooLarge is raised when Address tried to send more than it holds.
type AmountTooLarge struct {
	Address types.Address
	Amount  types.Amount
}

type SerializationFailure struct{}

type OutOfEnergy struct{}

// Rejected means the contract logic itself refused the message.
type Rejected struct{}

type NonExistentRewardAccount struct {
	Account types.AccountAddress
}

type InvalidProof struct{}

type RemovingNonExistentBaker struct {
	BakerID types.BakerID
}

type InvalidBakerRemoveSource struct {
	Account types.AccountAddress
}

type UpdatingNonExistentBaker struct {
	BakerID types.BakerID
}

type InvalidStakeDelegationTarget struct {
	BakerID types.BakerID
}

type DuplicateSignKey struct {
	Key types.BakerSignVerifyKey
}

// NotFromBakerAccount carries the sender and the account the baker is registered with.
type NotFromBakerAccount struct {
	From   types.AccountAddress
	Actual types.AccountAddress
}

type DuplicateAccountRegistrationID struct {
	RegID types.CredentialRegistrationID
}

type AccountCredentialInvalid struct{}

func (*ModuleNotWF) GetRejectReasonType() RejectReasonType { return RejectModuleNotWF }
func (*ModuleHashAlreadyExists) GetRejectReasonType() RejectReasonType {
	return RejectModuleHashAlreadyExists
}
func (*MessageTypeError) GetRejectReasonType() RejectReasonType { return RejectMessageTypeError }
func (*ParamsTypeError) GetRejectReasonType() RejectReasonType  { return RejectParamsTypeError }
func (*InvalidAccountReference) GetRejectReasonType() RejectReasonType {
	return RejectInvalidAccountReference
}
func (*InvalidContractReference) GetRejectReasonType() RejectReasonType {
	return RejectInvalidContractReference
}
func (*InvalidModuleReference) GetRejectReasonType() RejectReasonType {
	return RejectInvalidModuleReference
}
func (*InvalidContractAddress) GetRejectReasonType() RejectReasonType {
	return RejectInvalidContractAddress
}
func (*ReceiverAccountNoCredential) GetRejectReasonType() RejectReasonType {
	return RejectReceiverAccountNoCredential
}
func (*ReceiverContractNoCredential) GetRejectReasonType() RejectReasonType {
	return RejectReceiverContractNoCredential
}
func (*EvaluationError) GetRejectReasonType() RejectReasonType { return RejectEvaluationError }
func (*AmountTooLarge) GetRejectReasonType() RejectReasonType  { return RejectAmountTooLarge }
func (*SerializationFailure) GetRejectReasonType() RejectReasonType {
	return RejectSerializationFailure
}
func (*OutOfEnergy) GetRejectReasonType() RejectReasonType { return RejectOutOfEnergy }
func (*Rejected) GetRejectReasonType() RejectReasonType    { return RejectRejected }
func (*NonExistentRewardAccount) GetRejectReasonType() RejectReasonType {
	return RejectNonExistentRewardAccount
}
func (*InvalidProof) GetRejectReasonType() RejectReasonType { return RejectInvalidProof }
func (*RemovingNonExistentBaker) GetRejectReasonType() RejectReasonType {
	return RejectRemovingNonExistentBaker
}
func (*InvalidBakerRemoveSource) GetRejectReasonType() RejectReasonType {
	return RejectInvalidBakerRemoveSource
}
func (*UpdatingNonExistentBaker) GetRejectReasonType() RejectReasonType {
	return RejectUpdatingNonExistentBaker
}
func (*InvalidStakeDelegationTarget) GetRejectReasonType() RejectReasonType {
	return RejectInvalidStakeDelegationTarget
}
func (*DuplicateSignKey) GetRejectReasonType() RejectReasonType { return RejectDuplicateSignKey }
func (*NotFromBakerAccount) GetRejectReasonType() RejectReasonType {
	return RejectNotFromBakerAccount
}
func (*DuplicateAccountRegistrationID) GetRejectReasonType() RejectReasonType {
	return RejectDuplicateAccountRegistrationID
}
func (*AccountCredentialInvalid) GetRejectReasonType() RejectReasonType {
	return RejectAccountCredentialInvalid
}

func (*ModuleNotWF) String() string { return "module is not well formed" }
func (r *ModuleHashAlreadyExists) String() string {
	return fmt.Sprintf("module with reference %s already exists", r.ModuleRef)
}
func (*MessageTypeError) String() string { return "message to the receive method has the wrong type" }
func (*ParamsTypeError) String() string  { return "parameter to the init method has the wrong type" }
func (r *InvalidAccountReference) String() string {
	return fmt.Sprintf("account %s does not exist", r.Account)
}
func (r *InvalidContractReference) String() string {
	return fmt.Sprintf("module %s has no contract named %q", r.ModuleRef, string(r.ContractName))
}
func (r *InvalidModuleReference) String() string {
	return fmt.Sprintf("module %s does not exist", r.ModuleRef)
}
func (r *InvalidContractAddress) String() string {
	return fmt.Sprintf("contract instance %s does not exist", r.Address)
}
func (r *ReceiverAccountNoCredential) String() string {
	return fmt.Sprintf("receiving account %s has no valid credential", r.Account)
}
func (r *ReceiverContractNoCredential) String() string {
	return fmt.Sprintf("owner of receiving contract %s has no valid credential", r.Address)
}
func (*EvaluationError) String() string { return "runtime error during contract evaluation" }
func (r *AmountTooLarge) String() string {
	return fmt.Sprintf("%s tried to transfer %d but has insufficient balance", r.Address, uint64(r.Amount))
}
func (*SerializationFailure) String() string { return "failed to serialize the message" }
func (*OutOfEnergy) String() string          { return "ran out of energy" }
func (*Rejected) String() string             { return "rejected by contract logic" }
func (r *NonExistentRewardAccount) String() string {
	return fmt.Sprintf("reward account %s does not exist", r.Account)
}
func (*InvalidProof) String() string { return "proof that the baker owns the keys is not valid" }
func (r *RemovingNonExistentBaker) String() string {
	return fmt.Sprintf("cannot remove baker %d: no such baker", uint64(r.BakerID))
}
func (r *InvalidBakerRemoveSource) String() string {
	return fmt.Sprintf("account %s is not allowed to remove this baker", r.Account)
}
func (r *UpdatingNonExistentBaker) String() string {
	return fmt.Sprintf("cannot update baker %d: no such baker", uint64(r.BakerID))
}
func (r *InvalidStakeDelegationTarget) String() string {
	return fmt.Sprintf("cannot delegate stake to baker %d: no such baker", uint64(r.BakerID))
}
func (r *DuplicateSignKey) String() string {
	return fmt.Sprintf("signature key %s is already used by another baker", r.Key)
}
func (r *NotFromBakerAccount) String() string {
	return fmt.Sprintf("transaction sent from %s but the baker account is %s", r.From, r.Actual)
}
func (r *DuplicateAccountRegistrationID) String() string {
	return fmt.Sprintf("account registration id %s is already in use", r.RegID)
}
func (*AccountCredentialInvalid) String() string { return "account credential is not valid" }

func (*ModuleNotWF) serializeFields(*serialization.Writer) {}
func (r *ModuleHashAlreadyExists) serializeFields(w *serialization.Writer) {
	r.ModuleRef.Serialize(w)
}
func (*MessageTypeError) serializeFields(*serialization.Writer) {}
func (*ParamsTypeError) serializeFields(*serialization.Writer)  {}
func (r *InvalidAccountReference) serializeFields(w *serialization.Writer) {
	r.Account.Serialize(w)
}
func (r *InvalidContractReference) serializeFields(w *serialization.Writer) {
	r.ModuleRef.Serialize(w)
	r.ContractName.Serialize(w)
}
func (r *InvalidModuleReference) serializeFields(w *serialization.Writer) {
	r.ModuleRef.Serialize(w)
}
func (r *InvalidContractAddress) serializeFields(w *serialization.Writer) {
	r.Address.Serialize(w)
}
func (r *ReceiverAccountNoCredential) serializeFields(w *serialization.Writer) {
	r.Account.Serialize(w)
}
func (r *ReceiverContractNoCredential) serializeFields(w *serialization.Writer) {
	r.Address.Serialize(w)
}
func (*EvaluationError) serializeFields(*serialization.Writer) {}
func (r *AmountTooLarge) serializeFields(w *serialization.Writer) {
	types.SerializeAddress(w, r.Address)
	r.Amount.Serialize(w)
}
func (*SerializationFailure) serializeFields(*serialization.Writer) {}
func (*OutOfEnergy) serializeFields(*serialization.Writer)          {}
func (*Rejected) serializeFields(*serialization.Writer)             {}
func (r *NonExistentRewardAccount) serializeFields(w *serialization.Writer) {
	r.Account.Serialize(w)
}
func (*InvalidProof) serializeFields(*serialization.Writer) {}
func (r *RemovingNonExistentBaker) serializeFields(w *serialization.Writer) {
	r.BakerID.Serialize(w)
}
func (r *InvalidBakerRemoveSource) serializeFields(w *serialization.Writer) {
	r.Account.Serialize(w)
}
func (r *UpdatingNonExistentBaker) serializeFields(w *serialization.Writer) {
	r.BakerID.Serialize(w)
}
func (r *InvalidStakeDelegationTarget) serializeFields(w *serialization.Writer) {
	r.BakerID.Serialize(w)
}
func (r *DuplicateSignKey) serializeFields(w *serialization.Writer) {
	r.Key.Serialize(w)
}
func (r *NotFromBakerAccount) serializeFields(w *serialization.Writer) {
	r.From.Serialize(w)
	r.Actual.Serialize(w)
}
func (r *DuplicateAccountRegistrationID) serializeFields(w *serialization.Writer) {
	r.RegID.Serialize(w)
}
func (*AccountCredentialInvalid) serializeFields(*serialization.Writer) {}

func SerializeRejectReason(w *serialization.Writer, reason RejectReason) {
	w.PutUint8(uint8(reason.GetRejectReasonType()))
	reason.serializeFields(w)
}

func DeserializeRejectReason(r *serialization.Reader) (RejectReason, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, types.WrapDecodeError("reject reason type", err)
	}
	reason, err := deserializeRejectReasonFields(RejectReasonType(tag), r)
	if err != nil {
		return nil, types.WrapDecodeError(fmt.Sprintf("reject reason %d", tag), err)
	}
	return reason, nil
}

func deserializeRejectReasonFields(reasonType RejectReasonType, r *serialization.Reader) (RejectReason, error) {
	switch reasonType {
	case RejectModuleNotWF:
		return &ModuleNotWF{}, nil
	case RejectModuleHashAlreadyExists:
		ref, err := types.DeserializeModuleRef(r)
		if err != nil {
			return nil, err
		}
		return &ModuleHashAlreadyExists{ModuleRef: ref}, nil
	case RejectMessageTypeError:
		return &MessageTypeError{}, nil
	case RejectParamsTypeError:
		return &ParamsTypeError{}, nil
	case RejectInvalidAccountReference:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &InvalidAccountReference{Account: account}, nil
	case RejectInvalidContractReference:
		ref, err := types.DeserializeModuleRef(r)
		if err != nil {
			return nil, err
		}
		name, err := types.DeserializeContractTypeName(r)
		if err != nil {
			return nil, err
		}
		return &InvalidContractReference{ModuleRef: ref, ContractName: name}, nil
	case RejectInvalidModuleReference:
		ref, err := types.DeserializeModuleRef(r)
		if err != nil {
			return nil, err
		}
		return &InvalidModuleReference{ModuleRef: ref}, nil
	case RejectInvalidContractAddress:
		addr, err := types.DeserializeContractAddress(r)
		if err != nil {
			return nil, err
		}
		return &InvalidContractAddress{Address: addr}, nil
	case RejectReceiverAccountNoCredential:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &ReceiverAccountNoCredential{Account: account}, nil
	case RejectReceiverContractNoCredential:
		addr, err := types.DeserializeContractAddress(r)
		if err != nil {
			return nil, err
		}
		return &ReceiverContractNoCredential{Address: addr}, nil
	case RejectEvaluationError:
		return &EvaluationError{}, nil
	case RejectAmountTooLarge:
		addr, err := types.DeserializeAddress(r)
		if err != nil {
			return nil, err
		}
		amount, err := types.DeserializeAmount(r)
		if err != nil {
			return nil, err
		}
		return &AmountTooLarge{Address: addr, Amount: amount}, nil
	case RejectSerializationFailure:
		return &SerializationFailure{}, nil
	case RejectOutOfEnergy:
		return &OutOfEnergy{}, nil
	case RejectRejected:
		return &Rejected{}, nil
	case RejectNonExistentRewardAccount:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &NonExistentRewardAccount{Account: account}, nil
	case RejectInvalidProof:
		return &InvalidProof{}, nil
	case RejectRemovingNonExistentBaker:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		return &RemovingNonExistentBaker{BakerID: id}, nil
	case RejectInvalidBakerRemoveSource:
		account, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &InvalidBakerRemoveSource{Account: account}, nil
	case RejectUpdatingNonExistentBaker:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		return &UpdatingNonExistentBaker{BakerID: id}, nil
	case RejectInvalidStakeDelegationTarget:
		id, err := types.DeserializeBakerID(r)
		if err != nil {
			return nil, err
		}
		return &InvalidStakeDelegationTarget{BakerID: id}, nil
	case RejectDuplicateSignKey:
		key, err := types.DeserializeBakerSignVerifyKey(r)
		if err != nil {
			return nil, err
		}
		return &DuplicateSignKey{Key: key}, nil
	case RejectNotFromBakerAccount:
		from, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		actual, err := types.DeserializeAccountAddress(r)
		if err != nil {
			return nil, err
		}
		return &NotFromBakerAccount{From: from, Actual: actual}, nil
	case RejectDuplicateAccountRegistrationID:
		regID, err := types.DeserializeCredentialRegistrationID(r)
		if err != nil {
			return nil, err
		}
		return &DuplicateAccountRegistrationID{RegID: regID}, nil
	case RejectAccountCredentialInvalid:
		return &AccountCredentialInvalid{}, nil
	}
	return nil, fmt.Errorf("tag %d: %w", uint8(reasonType), ErrUnknownRejectReason)
}
