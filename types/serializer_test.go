package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-ledger/serialization"
)

func testAccount(seed byte) AccountAddress {
	var a AccountAddress
	for i := range a {
		a[i] = seed
	}
	return a
}

func testPayloads() []Payload {
	var moduleRef ModuleRef
	moduleRef[0] = 0xaa
	var electionKey BakerElectionVerifyKey
	electionKey[1] = 0x11
	var signKey BakerSignVerifyKey
	signKey[2] = 0x22
	var encKey AccountEncryptionKey
	encKey[47] = 0x33
	var regID CredentialRegistrationID
	regID[0] = 0x44

	return []Payload{
		&DeployModule{Module: ModuleCode{0xde, 0xad, 0xbe, 0xef}},
		&InitContract{Amount: 5, ModuleRef: moduleRef, ContractName: "Counter", Param: Expr{1, 2, 3}},
		&Update{Amount: 7, Address: ContractAddress{Index: 3, Subindex: 1}, Message: Expr{9}},
		&Transfer{ToAddress: testAccount(1), Amount: 100},
		&Transfer{ToAddress: ContractAddress{Index: 12, Subindex: 0}, Amount: 1},
		&DeployCredential{Credential: &CredentialDeploymentInformation{RegID: regID, Proofs: []byte{5, 6}}},
		&DeployEncryptionKey{Key: encKey},
		&AddBaker{
			ElectionVerifyKey:  electionKey,
			SignatureVerifyKey: signKey,
			Account:            testAccount(2),
			ProofSig:           testDlogProof(1),
			ProofElection:      testDlogProof(2),
			ProofAccount:       NewSingleOwnershipProof(testDlogProof(3)),
		},
		&RemoveBaker{BakerID: 4, Proof: NewSingleOwnershipProof(testDlogProof(4))},
		&UpdateBakerAccount{
			BakerID: 5,
			Account: testAccount(3),
			ProofAccount: AccountOwnershipProof{
				{KeyIndex: 0, Proof: testDlogProof(5)},
				{KeyIndex: 1, Proof: testDlogProof(6)},
			},
		},
		&UpdateBakerSignKey{BakerID: 6, SignKey: signKey, ProofSig: testDlogProof(7)},
		&DelegateStake{BakerID: 8},
		&UndelegateStake{},
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	for _, p := range testPayloads() {
		t.Run(p.GetPayloadType().String(), func(t *testing.T) {
			encoded := EncodePayload(p)
			decoded, err := DecodePayload(encoded)
			require.NoError(t, err)
			assert.Equal(t, p, decoded)
			assert.Equal(t, encoded, EncodePayload(decoded))
		})
	}
}

func TestEmptyByteFieldsRoundTrip(t *testing.T) {
	var regID CredentialRegistrationID
	regID[1] = 0x55

	cases := []struct {
		empty     Payload
		canonical Payload
	}{
		{&DeployModule{Module: ModuleCode{}}, &DeployModule{}},
		{&InitContract{Amount: 1, ContractName: "", Param: Expr{}}, &InitContract{Amount: 1}},
		{&Update{Amount: 2, Message: Expr{}}, &Update{Amount: 2}},
		{
			&DeployCredential{Credential: &CredentialDeploymentInformation{RegID: regID, Proofs: []byte{}}},
			&DeployCredential{Credential: &CredentialDeploymentInformation{RegID: regID}},
		},
	}
	for _, c := range cases {
		t.Run(c.empty.GetPayloadType().String(), func(t *testing.T) {
			encoded := EncodePayload(c.empty)
			assert.Equal(t, EncodePayload(c.canonical), encoded)

			decoded, err := DecodePayload(encoded)
			require.NoError(t, err)
			assert.Equal(t, c.canonical, decoded)
			assert.True(t, PayloadEqual(c.empty, decoded))
			assert.Equal(t, encoded, EncodePayload(decoded))
		})
	}
	assert.False(t, PayloadEqual(&DeployModule{}, &DeployModule{Module: ModuleCode{0}}))
}

func TestMissingRequiredFieldsPanic(t *testing.T) {
	assert.PanicsWithValue(t, "address is required", func() {
		EncodePayload(&Transfer{Amount: 1})
	})
	assert.PanicsWithValue(t, "credential deployment information is required", func() {
		EncodePayload(&DeployCredential{})
	})
}

func TestPayloadTagStability(t *testing.T) {
	expected := map[PayloadType]byte{
		PayloadTypeDeployModule:        0,
		PayloadTypeInitContract:        1,
		PayloadTypeUpdate:              2,
		PayloadTypeTransfer:            3,
		PayloadTypeDeployCredential:    4,
		PayloadTypeDeployEncryptionKey: 5,
		PayloadTypeAddBaker:            6,
		PayloadTypeRemoveBaker:         7,
		PayloadTypeUpdateBakerAccount:  8,
		PayloadTypeUpdateBakerSignKey:  9,
		PayloadTypeDelegateStake:       10,
		PayloadTypeUndelegateStake:     11,
	}
	seen := map[PayloadType]bool{}
	for _, p := range testPayloads() {
		encoded := EncodePayload(p)
		require.NotEmpty(t, encoded)
		assert.Equal(t, expected[p.GetPayloadType()], encoded[0], p.GetPayloadType().String())
		seen[p.GetPayloadType()] = true
	}
	assert.Len(t, seen, len(expected))
}

func TestTransferEncoding(t *testing.T) {
	to := testAccount(0xab)
	p := &Transfer{ToAddress: to, Amount: 100}

	w := serialization.NewWriter()
	w.PutUint8(3)
	SerializeAddress(w, to)
	Amount(100).Serialize(w)
	expected := w.Bytes()

	encoded := EncodePayload(p)
	assert.Equal(t, EncodedPayload(expected), encoded)
	assert.Equal(t, byte(3), encoded[0])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 100}, []byte(encoded[len(encoded)-8:]))

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestUndelegateStakeEncoding(t *testing.T) {
	encoded := EncodePayload(&UndelegateStake{})
	assert.Equal(t, EncodedPayload{11}, encoded)

	decoded, err := DecodePayload([]byte{11})
	require.NoError(t, err)
	assert.Equal(t, &UndelegateStake{}, decoded)
}

func TestDecodeUnsupportedTag(t *testing.T) {
	for _, tag := range []byte{12, 13, 200, 255} {
		p, err := DecodePayload([]byte{tag})
		assert.Nil(t, p)
		assert.True(t, IsDecodeError(err))
		assert.True(t, errors.Is(err, ErrUnsupportedTransactionType))
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := DecodePayload(nil)
	assert.True(t, IsDecodeError(err))
	assert.True(t, errors.Is(err, serialization.ErrUnexpectedEOF))
}

func TestDecodeTruncatedPayloads(t *testing.T) {
	for _, p := range testPayloads() {
		encoded := EncodePayload(p)
		for cut := 1; cut < len(encoded); cut++ {
			decoded, err := DecodePayload(encoded[:cut])
			if !assert.Error(t, err, "%s cut at %d", p.GetPayloadType(), cut) {
				continue
			}
			assert.Nil(t, decoded)
			assert.True(t, IsDecodeError(err))
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	encoded := append(EncodePayload(&DelegateStake{BakerID: 1}), 0)
	_, err := DecodePayload(encoded)
	assert.True(t, errors.Is(err, serialization.ErrTrailingBytes))
}

func TestDecodeInvalidAddressType(t *testing.T) {
	encoded := EncodePayload(&Transfer{ToAddress: testAccount(1), Amount: 1})
	encoded[1] = 2
	_, err := DecodePayload(encoded)
	assert.True(t, errors.Is(err, ErrInvalidAddressType))
}

func TestDecodeInvalidContractName(t *testing.T) {
	encoded := EncodePayload(&InitContract{ContractName: "a", Param: Expr{1}})
	// tag(1) amount(8) module ref(32) name length(8) then the name byte
	encoded[1+8+32+8] = 0xff
	_, err := DecodePayload(encoded)
	assert.True(t, errors.Is(err, ErrInvalidContractTypeName))
}

func TestDecodeAddBakerWithEmptyOwnershipProof(t *testing.T) {
	p := &AddBaker{ProofAccount: NewSingleOwnershipProof(testDlogProof(0))}
	encoded := EncodePayload(p)
	// drop the single (index, proof) pair and zero the count
	head := encoded[:len(encoded)-(1+1+DlogProofSize)]
	data := append(append([]byte{}, head...), 0)
	_, err := DecodePayload(data)
	assert.True(t, errors.Is(err, ErrEmptyOwnershipProof))
}

func TestPayloadBodyBytes(t *testing.T) {
	assert.Equal(t, []byte{}, PayloadBodyBytes(nil))
	assert.Equal(t, []byte{}, PayloadBodyBytes(EncodedPayload{}))
	assert.Equal(t, []byte{}, PayloadBodyBytes(EncodePayload(&UndelegateStake{})))

	encoded := EncodePayload(&DelegateStake{BakerID: 0x0102})
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, PayloadBodyBytes(encoded))
}

func TestEncodedPayloadType(t *testing.T) {
	_, ok := EncodedPayload(nil).PayloadType()
	assert.False(t, ok)

	pt, ok := EncodePayload(&DelegateStake{}).PayloadType()
	assert.True(t, ok)
	assert.Equal(t, PayloadTypeDelegateStake, pt)
}

func TestPayloadTypeString(t *testing.T) {
	assert.Equal(t, "Transfer", PayloadTypeTransfer.String())
	assert.Equal(t, "PayloadType(42)", PayloadType(42).String())
}
