package types

import (
	"fmt"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/celer-network/go-ledger/serialization"
)

const (
	AccountAddressSize           = 32
	ModuleRefSize                = 32
	DlogProofSize                = 64
	BakerElectionVerifyKeySize   = 32
	BakerSignVerifyKeySize       = 32
	AccountEncryptionKeySize     = 48
	CredentialRegistrationIDSize = 48
)

type Amount uint64

type Energy uint64

type Nonce uint64

type BakerID uint64

type KeyIndex uint8

type AccountAddress [AccountAddressSize]byte

type ModuleRef [ModuleRefSize]byte

// DlogProof is a proof of knowledge of the secret key behind a public key.
type DlogProof [DlogProofSize]byte

type BakerElectionVerifyKey [BakerElectionVerifyKeySize]byte

type BakerSignVerifyKey [BakerSignVerifyKeySize]byte

type AccountEncryptionKey [AccountEncryptionKeySize]byte

type CredentialRegistrationID [CredentialRegistrationIDSize]byte

// ContractTypeName names a contract type inside a module.
type ContractTypeName string

// ModuleCode is a serialized contract module, opaque to the ledger core.
type ModuleCode []byte

// Expr is linked, unevaluated contract code (init parameters, update messages).
type Expr []byte

// CredentialDeploymentInformation carries the registration id that identifies the
// credential and the remaining proof material, which is only checked by the identity layer.
type CredentialDeploymentInformation struct {
	RegID  CredentialRegistrationID
	Proofs []byte
}

type ContractAddress struct {
	Index    uint64
	Subindex uint64
}

type AddressType uint8

const (
	AddressTypeAccount  AddressType = 0
	AddressTypeContract AddressType = 1
)

// Address is either an AccountAddress or a ContractAddress.
type Address interface {
	GetAddressType() AddressType
	String() string
}

func (AccountAddress) GetAddressType() AddressType {
	return AddressTypeAccount
}

func (ContractAddress) GetAddressType() AddressType {
	return AddressTypeContract
}

func (a AccountAddress) String() string            { return hexutil.Encode(a[:]) }
func (m ModuleRef) String() string                 { return hexutil.Encode(m[:]) }
func (p DlogProof) String() string                 { return hexutil.Encode(p[:]) }
func (k BakerElectionVerifyKey) String() string    { return hexutil.Encode(k[:]) }
func (k BakerSignVerifyKey) String() string        { return hexutil.Encode(k[:]) }
func (k AccountEncryptionKey) String() string      { return hexutil.Encode(k[:]) }
func (id CredentialRegistrationID) String() string { return hexutil.Encode(id[:]) }

func (c ContractAddress) String() string {
	return fmt.Sprintf("<%d,%d>", c.Index, c.Subindex)
}

func (a AccountAddress) MarshalText() ([]byte, error) { return hexutil.Bytes(a[:]).MarshalText() }
func (m ModuleRef) MarshalText() ([]byte, error)      { return hexutil.Bytes(m[:]).MarshalText() }
func (p DlogProof) MarshalText() ([]byte, error)      { return hexutil.Bytes(p[:]).MarshalText() }
func (k BakerElectionVerifyKey) MarshalText() ([]byte, error) {
	return hexutil.Bytes(k[:]).MarshalText()
}
func (k BakerSignVerifyKey) MarshalText() ([]byte, error) {
	return hexutil.Bytes(k[:]).MarshalText()
}
func (k AccountEncryptionKey) MarshalText() ([]byte, error) {
	return hexutil.Bytes(k[:]).MarshalText()
}
func (id CredentialRegistrationID) MarshalText() ([]byte, error) {
	return hexutil.Bytes(id[:]).MarshalText()
}
func (c ModuleCode) MarshalText() ([]byte, error) { return hexutil.Bytes(c).MarshalText() }
func (e Expr) MarshalText() ([]byte, error)       { return hexutil.Bytes(e).MarshalText() }

func (a Amount) Serialize(w *serialization.Writer)  { w.PutUint64(uint64(a)) }
func (e Energy) Serialize(w *serialization.Writer)  { w.PutUint64(uint64(e)) }
func (n Nonce) Serialize(w *serialization.Writer)   { w.PutUint64(uint64(n)) }
func (b BakerID) Serialize(w *serialization.Writer) { w.PutUint64(uint64(b)) }
func (k KeyIndex) Serialize(w *serialization.Writer) {
	w.PutUint8(uint8(k))
}

func (a AccountAddress) Serialize(w *serialization.Writer)            { w.PutFixed(a[:]) }
func (m ModuleRef) Serialize(w *serialization.Writer)                 { w.PutFixed(m[:]) }
func (p DlogProof) Serialize(w *serialization.Writer)                 { w.PutFixed(p[:]) }
func (k BakerElectionVerifyKey) Serialize(w *serialization.Writer)    { w.PutFixed(k[:]) }
func (k BakerSignVerifyKey) Serialize(w *serialization.Writer)        { w.PutFixed(k[:]) }
func (k AccountEncryptionKey) Serialize(w *serialization.Writer)      { w.PutFixed(k[:]) }
func (id CredentialRegistrationID) Serialize(w *serialization.Writer) { w.PutFixed(id[:]) }

func (n ContractTypeName) Serialize(w *serialization.Writer) { w.PutVarBytes([]byte(n)) }
func (c ModuleCode) Serialize(w *serialization.Writer)       { w.PutVarBytes(c) }
func (e Expr) Serialize(w *serialization.Writer)             { w.PutVarBytes(e) }

func (c ContractAddress) Serialize(w *serialization.Writer) {
	w.PutUint64(c.Index)
	w.PutUint64(c.Subindex)
}

// Serialize panics on a nil credential; DeployCredential always carries one.
func (info *CredentialDeploymentInformation) Serialize(w *serialization.Writer) {
	if info == nil {
		panic("credential deployment information is required")
	}
	info.RegID.Serialize(w)
	w.PutVarBytes(info.Proofs)
}

// SerializeAddress writes the address type tag followed by the address. A nil address
// panics, there is no encoding for it.
func SerializeAddress(w *serialization.Writer, a Address) {
	if a == nil {
		panic("address is required")
	}
	w.PutUint8(uint8(a.GetAddressType()))
	switch addr := a.(type) {
	case AccountAddress:
		addr.Serialize(w)
	case ContractAddress:
		addr.Serialize(w)
	default:
		panic(fmt.Sprintf("unknown address implementation %T", a))
	}
}

func DeserializeAmount(r *serialization.Reader) (Amount, error) {
	v, err := r.GetUint64()
	return Amount(v), err
}

func DeserializeEnergy(r *serialization.Reader) (Energy, error) {
	v, err := r.GetUint64()
	return Energy(v), err
}

func DeserializeNonce(r *serialization.Reader) (Nonce, error) {
	v, err := r.GetUint64()
	return Nonce(v), err
}

func DeserializeBakerID(r *serialization.Reader) (BakerID, error) {
	v, err := r.GetUint64()
	return BakerID(v), err
}

func DeserializeKeyIndex(r *serialization.Reader) (KeyIndex, error) {
	v, err := r.GetUint8()
	return KeyIndex(v), err
}

func DeserializeAccountAddress(r *serialization.Reader) (AccountAddress, error) {
	var a AccountAddress
	err := r.GetFixed(a[:])
	return a, err
}

func DeserializeModuleRef(r *serialization.Reader) (ModuleRef, error) {
	var m ModuleRef
	err := r.GetFixed(m[:])
	return m, err
}

func DeserializeDlogProof(r *serialization.Reader) (DlogProof, error) {
	var p DlogProof
	err := r.GetFixed(p[:])
	return p, err
}

func DeserializeBakerElectionVerifyKey(r *serialization.Reader) (BakerElectionVerifyKey, error) {
	var k BakerElectionVerifyKey
	err := r.GetFixed(k[:])
	return k, err
}

func DeserializeBakerSignVerifyKey(r *serialization.Reader) (BakerSignVerifyKey, error) {
	var k BakerSignVerifyKey
	err := r.GetFixed(k[:])
	return k, err
}

func DeserializeAccountEncryptionKey(r *serialization.Reader) (AccountEncryptionKey, error) {
	var k AccountEncryptionKey
	err := r.GetFixed(k[:])
	return k, err
}

func DeserializeCredentialRegistrationID(r *serialization.Reader) (CredentialRegistrationID, error) {
	var id CredentialRegistrationID
	err := r.GetFixed(id[:])
	return id, err
}

func DeserializeContractTypeName(r *serialization.Reader) (ContractTypeName, error) {
	b, err := r.GetVarBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidContractTypeName
	}
	return ContractTypeName(b), nil
}

func DeserializeModuleCode(r *serialization.Reader) (ModuleCode, error) {
	b, err := r.GetVarBytes()
	return ModuleCode(b), err
}

func DeserializeExpr(r *serialization.Reader) (Expr, error) {
	b, err := r.GetVarBytes()
	return Expr(b), err
}

func DeserializeContractAddress(r *serialization.Reader) (ContractAddress, error) {
	index, err := r.GetUint64()
	if err != nil {
		return ContractAddress{}, err
	}
	subindex, err := r.GetUint64()
	if err != nil {
		return ContractAddress{}, err
	}
	return ContractAddress{Index: index, Subindex: subindex}, nil
}

func DeserializeCredentialDeploymentInformation(r *serialization.Reader) (*CredentialDeploymentInformation, error) {
	regID, err := DeserializeCredentialRegistrationID(r)
	if err != nil {
		return nil, err
	}
	proofs, err := r.GetVarBytes()
	if err != nil {
		return nil, err
	}
	return &CredentialDeploymentInformation{RegID: regID, Proofs: proofs}, nil
}

func DeserializeAddress(r *serialization.Reader) (Address, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, err
	}
	switch AddressType(tag) {
	case AddressTypeAccount:
		return DeserializeAccountAddress(r)
	case AddressTypeContract:
		return DeserializeContractAddress(r)
	}
	return nil, fmt.Errorf("address type %d: %w", tag, ErrInvalidAddressType)
}
