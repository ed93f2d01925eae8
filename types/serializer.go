package types

import (
	"bytes"
	"fmt"

	"github.com/celer-network/go-ledger/serialization"
)

// EncodedPayload is a serialized payload kept opaque for storage and transmission.
type EncodedPayload []byte

// PayloadBodyBytes returns the payload fields without the leading tag byte. An empty
// payload yields an empty result.
func PayloadBodyBytes(encoded EncodedPayload) []byte {
	if len(encoded) == 0 {
		return []byte{}
	}
	return encoded[1:]
}

// PayloadType reads the tag without decoding the fields.
func (e EncodedPayload) PayloadType() (PayloadType, bool) {
	if len(e) == 0 {
		return 0, false
	}
	return PayloadType(e[0]), true
}

func SerializePayload(w *serialization.Writer, p Payload) {
	w.PutUint8(uint8(p.GetPayloadType()))
	p.serializeFields(w)
}

func EncodePayload(p Payload) EncodedPayload {
	w := serialization.NewWriter()
	SerializePayload(w, p)
	return EncodedPayload(w.Bytes())
}

// DecodePayload decodes a complete payload. Input left over after the last field is an
// error so that decoding and encoding stay exact inverses.
func DecodePayload(data []byte) (Payload, error) {
	r := serialization.NewReader(data)
	p, err := DeserializePayload(r)
	if err != nil {
		return nil, err
	}
	if err := r.Finish(); err != nil {
		return nil, WrapDecodeError(p.GetPayloadType().String(), err)
	}
	return p, nil
}

// PayloadEqual compares payloads by their encoding. Byte fields have a single empty value on
// the wire, so a nil and an empty ModuleCode, Expr or proof blob compare equal here even
// though reflect.DeepEqual tells them apart. Decoding always yields nil for them.
func PayloadEqual(a, b Payload) bool {
	return bytes.Equal(EncodePayload(a), EncodePayload(b))
}

func (e EncodedPayload) Decode() (Payload, error) {
	return DecodePayload(e)
}

func DeserializePayload(r *serialization.Reader) (Payload, error) {
	tag, err := r.GetUint8()
	if err != nil {
		return nil, WrapDecodeError("payload type", err)
	}
	payloadType := PayloadType(tag)
	var p Payload
	switch payloadType {
	case PayloadTypeDeployModule:
		p, err = deserializeDeployModule(r)
	case PayloadTypeInitContract:
		p, err = deserializeInitContract(r)
	case PayloadTypeUpdate:
		p, err = deserializeUpdate(r)
	case PayloadTypeTransfer:
		p, err = deserializeTransfer(r)
	case PayloadTypeDeployCredential:
		p, err = deserializeDeployCredential(r)
	case PayloadTypeDeployEncryptionKey:
		p, err = deserializeDeployEncryptionKey(r)
	case PayloadTypeAddBaker:
		p, err = deserializeAddBaker(r)
	case PayloadTypeRemoveBaker:
		p, err = deserializeRemoveBaker(r)
	case PayloadTypeUpdateBakerAccount:
		p, err = deserializeUpdateBakerAccount(r)
	case PayloadTypeUpdateBakerSignKey:
		p, err = deserializeUpdateBakerSignKey(r)
	case PayloadTypeDelegateStake:
		p, err = deserializeDelegateStake(r)
	case PayloadTypeUndelegateStake:
		p = &UndelegateStake{}
	default:
		return nil, WrapDecodeError("payload", fmt.Errorf("tag %d: %w", tag, ErrUnsupportedTransactionType))
	}
	if err != nil {
		return nil, WrapDecodeError(payloadType.String(), err)
	}
	return p, nil
}

func deserializeDeployModule(r *serialization.Reader) (*DeployModule, error) {
	module, err := DeserializeModuleCode(r)
	if err != nil {
		return nil, fmt.Errorf("module: %w", err)
	}
	return &DeployModule{Module: module}, nil
}

func deserializeInitContract(r *serialization.Reader) (*InitContract, error) {
	amount, err := DeserializeAmount(r)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	moduleRef, err := DeserializeModuleRef(r)
	if err != nil {
		return nil, fmt.Errorf("module ref: %w", err)
	}
	name, err := DeserializeContractTypeName(r)
	if err != nil {
		return nil, fmt.Errorf("contract name: %w", err)
	}
	param, err := DeserializeExpr(r)
	if err != nil {
		return nil, fmt.Errorf("param: %w", err)
	}
	return &InitContract{
		Amount:       amount,
		ModuleRef:    moduleRef,
		ContractName: name,
		Param:        param,
	}, nil
}

func deserializeUpdate(r *serialization.Reader) (*Update, error) {
	amount, err := DeserializeAmount(r)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	address, err := DeserializeContractAddress(r)
	if err != nil {
		return nil, fmt.Errorf("address: %w", err)
	}
	message, err := DeserializeExpr(r)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return &Update{Amount: amount, Address: address, Message: message}, nil
}

func deserializeTransfer(r *serialization.Reader) (*Transfer, error) {
	to, err := DeserializeAddress(r)
	if err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	amount, err := DeserializeAmount(r)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	return &Transfer{ToAddress: to, Amount: amount}, nil
}

func deserializeDeployCredential(r *serialization.Reader) (*DeployCredential, error) {
	cdi, err := DeserializeCredentialDeploymentInformation(r)
	if err != nil {
		return nil, fmt.Errorf("credential: %w", err)
	}
	return &DeployCredential{Credential: cdi}, nil
}

func deserializeDeployEncryptionKey(r *serialization.Reader) (*DeployEncryptionKey, error) {
	key, err := DeserializeAccountEncryptionKey(r)
	if err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}
	return &DeployEncryptionKey{Key: key}, nil
}

func deserializeAddBaker(r *serialization.Reader) (*AddBaker, error) {
	electionKey, err := DeserializeBakerElectionVerifyKey(r)
	if err != nil {
		return nil, fmt.Errorf("election verify key: %w", err)
	}
	signKey, err := DeserializeBakerSignVerifyKey(r)
	if err != nil {
		return nil, fmt.Errorf("signature verify key: %w", err)
	}
	account, err := DeserializeAccountAddress(r)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	proofSig, err := DeserializeDlogProof(r)
	if err != nil {
		return nil, fmt.Errorf("signature key proof: %w", err)
	}
	proofElection, err := DeserializeDlogProof(r)
	if err != nil {
		return nil, fmt.Errorf("election key proof: %w", err)
	}
	proofAccount, err := DeserializeAccountOwnershipProof(r)
	if err != nil {
		return nil, err
	}
	return &AddBaker{
		ElectionVerifyKey:  electionKey,
		SignatureVerifyKey: signKey,
		Account:            account,
		ProofSig:           proofSig,
		ProofElection:      proofElection,
		ProofAccount:       proofAccount,
	}, nil
}

func deserializeRemoveBaker(r *serialization.Reader) (*RemoveBaker, error) {
	id, err := DeserializeBakerID(r)
	if err != nil {
		return nil, fmt.Errorf("baker id: %w", err)
	}
	proof, err := DeserializeAccountOwnershipProof(r)
	if err != nil {
		return nil, err
	}
	return &RemoveBaker{BakerID: id, Proof: proof}, nil
}

func deserializeUpdateBakerAccount(r *serialization.Reader) (*UpdateBakerAccount, error) {
	id, err := DeserializeBakerID(r)
	if err != nil {
		return nil, fmt.Errorf("baker id: %w", err)
	}
	account, err := DeserializeAccountAddress(r)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	proof, err := DeserializeAccountOwnershipProof(r)
	if err != nil {
		return nil, err
	}
	return &UpdateBakerAccount{BakerID: id, Account: account, ProofAccount: proof}, nil
}

func deserializeUpdateBakerSignKey(r *serialization.Reader) (*UpdateBakerSignKey, error) {
	id, err := DeserializeBakerID(r)
	if err != nil {
		return nil, fmt.Errorf("baker id: %w", err)
	}
	key, err := DeserializeBakerSignVerifyKey(r)
	if err != nil {
		return nil, fmt.Errorf("sign key: %w", err)
	}
	proof, err := DeserializeDlogProof(r)
	if err != nil {
		return nil, fmt.Errorf("sign key proof: %w", err)
	}
	return &UpdateBakerSignKey{BakerID: id, SignKey: key, ProofSig: proof}, nil
}

func deserializeDelegateStake(r *serialization.Reader) (*DelegateStake, error) {
	id, err := DeserializeBakerID(r)
	if err != nil {
		return nil, fmt.Errorf("baker id: %w", err)
	}
	return &DelegateStake{BakerID: id}, nil
}
