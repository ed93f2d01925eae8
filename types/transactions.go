package types

import (
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
)

// PayloadType is the wire tag of a payload. The numbering is part of every signed
// transaction; new types are appended, existing values never change.
type PayloadType uint8

const (
	PayloadTypeDeployModule        PayloadType = 0
	PayloadTypeInitContract        PayloadType = 1
	PayloadTypeUpdate              PayloadType = 2
	PayloadTypeTransfer            PayloadType = 3
	PayloadTypeDeployCredential    PayloadType = 4
	PayloadTypeDeployEncryptionKey PayloadType = 5
	PayloadTypeAddBaker            PayloadType = 6
	PayloadTypeRemoveBaker         PayloadType = 7
	PayloadTypeUpdateBakerAccount  PayloadType = 8
	PayloadTypeUpdateBakerSignKey  PayloadType = 9
	PayloadTypeDelegateStake       PayloadType = 10
	PayloadTypeUndelegateStake     PayloadType = 11
)

var payloadTypeNames = map[PayloadType]string{
	PayloadTypeDeployModule:        "DeployModule",
	PayloadTypeInitContract:        "InitContract",
	PayloadTypeUpdate:              "Update",
	PayloadTypeTransfer:            "Transfer",
	PayloadTypeDeployCredential:    "DeployCredential",
	PayloadTypeDeployEncryptionKey: "DeployEncryptionKey",
	PayloadTypeAddBaker:            "AddBaker",
	PayloadTypeRemoveBaker:         "RemoveBaker",
	PayloadTypeUpdateBakerAccount:  "UpdateBakerAccount",
	PayloadTypeUpdateBakerSignKey:  "UpdateBakerSignKey",
	PayloadTypeDelegateStake:       "DelegateStake",
	PayloadTypeUndelegateStake:     "UndelegateStake",
}

func (t PayloadType) String() string {
	if name, ok := payloadTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PayloadType(%d)", uint8(t))
}

// Payload is the body of a transaction. Exactly one of the types below implements it.
type Payload interface {
	GetPayloadType() PayloadType
	serializeFields(w *serialization.Writer)
}

type DeployModule struct {
	Module ModuleCode
}

func (*DeployModule) GetPayloadType() PayloadType {
	return PayloadTypeDeployModule
}

func (p *DeployModule) serializeFields(w *serialization.Writer) {
	p.Module.Serialize(w)
}

type InitContract struct {
	Amount       Amount
	ModuleRef    ModuleRef
	ContractName ContractTypeName
	Param        Expr
}

func (*InitContract) GetPayloadType() PayloadType {
	return PayloadTypeInitContract
}

func (p *InitContract) serializeFields(w *serialization.Writer) {
	p.Amount.Serialize(w)
	p.ModuleRef.Serialize(w)
	p.ContractName.Serialize(w)
	p.Param.Serialize(w)
}

type Update struct {
	Amount  Amount
	Address ContractAddress
	Message Expr
}

func (*Update) GetPayloadType() PayloadType {
	return PayloadTypeUpdate
}

func (p *Update) serializeFields(w *serialization.Writer) {
	p.Amount.Serialize(w)
	p.Address.Serialize(w)
	p.Message.Serialize(w)
}

type Transfer struct {
	ToAddress Address
	Amount    Amount
}

func (*Transfer) GetPayloadType() PayloadType {
	return PayloadTypeTransfer
}

func (p *Transfer) serializeFields(w *serialization.Writer) {
	SerializeAddress(w, p.ToAddress)
	p.Amount.Serialize(w)
}

type DeployCredential struct {
	Credential *CredentialDeploymentInformation
}

func (*DeployCredential) GetPayloadType() PayloadType {
	return PayloadTypeDeployCredential
}

func (p *DeployCredential) serializeFields(w *serialization.Writer) {
	p.Credential.Serialize(w)
}

type DeployEncryptionKey struct {
	Key AccountEncryptionKey
}

func (*DeployEncryptionKey) GetPayloadType() PayloadType {
	return PayloadTypeDeployEncryptionKey
}

func (p *DeployEncryptionKey) serializeFields(w *serialization.Writer) {
	p.Key.Serialize(w)
}

type AddBaker struct {
	ElectionVerifyKey  BakerElectionVerifyKey
	SignatureVerifyKey BakerSignVerifyKey
	Account            AccountAddress
	ProofSig           DlogProof
	ProofElection      DlogProof
	ProofAccount       AccountOwnershipProof
}

func (*AddBaker) GetPayloadType() PayloadType {
	return PayloadTypeAddBaker
}

func (p *AddBaker) serializeFields(w *serialization.Writer) {
	p.ElectionVerifyKey.Serialize(w)
	p.SignatureVerifyKey.Serialize(w)
	p.Account.Serialize(w)
	p.ProofSig.Serialize(w)
	p.ProofElection.Serialize(w)
	p.ProofAccount.Serialize(w)
}

type RemoveBaker struct {
	BakerID BakerID
	Proof   AccountOwnershipProof
}

func (*RemoveBaker) GetPayloadType() PayloadType {
	return PayloadTypeRemoveBaker
}

func (p *RemoveBaker) serializeFields(w *serialization.Writer) {
	p.BakerID.Serialize(w)
	p.Proof.Serialize(w)
}

type UpdateBakerAccount struct {
	BakerID      BakerID
	Account      AccountAddress
	ProofAccount AccountOwnershipProof
}

func (*UpdateBakerAccount) GetPayloadType() PayloadType {
	return PayloadTypeUpdateBakerAccount
}

func (p *UpdateBakerAccount) serializeFields(w *serialization.Writer) {
	p.BakerID.Serialize(w)
	p.Account.Serialize(w)
	p.ProofAccount.Serialize(w)
}

type UpdateBakerSignKey struct {
	BakerID  BakerID
	SignKey  BakerSignVerifyKey
	ProofSig DlogProof
}

func (*UpdateBakerSignKey) GetPayloadType() PayloadType {
	return PayloadTypeUpdateBakerSignKey
}

func (p *UpdateBakerSignKey) serializeFields(w *serialization.Writer) {
	p.BakerID.Serialize(w)
	p.SignKey.Serialize(w)
	p.ProofSig.Serialize(w)
}

type DelegateStake struct {
	BakerID BakerID
}

func (*DelegateStake) GetPayloadType() PayloadType {
	return PayloadTypeDelegateStake
}

func (p *DelegateStake) serializeFields(w *serialization.Writer) {
	p.BakerID.Serialize(w)
}

type UndelegateStake struct{}

func (*UndelegateStake) GetPayloadType() PayloadType {
	return PayloadTypeUndelegateStake
}

func (*UndelegateStake) serializeFields(*serialization.Writer) {}
