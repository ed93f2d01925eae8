package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/types"
)

func account(seed byte) types.AccountAddress {
	var a types.AccountAddress
	for i := range a {
		a[i] = seed
	}
	return a
}

func allEvents() []Event {
	var ref types.ModuleRef
	ref[0] = 1
	var regID types.CredentialRegistrationID
	regID[3] = 7
	var key types.AccountEncryptionKey
	key[0] = 9
	var signKey types.BakerSignVerifyKey
	signKey[31] = 2
	baker := types.BakerID(4)

	return []Event{
		&ModuleDeployed{ModuleRef: ref},
		&ContractInitialized{ModuleRef: ref, ContractName: "Token", Address: types.ContractAddress{Index: 1}, Amount: 10},
		&Updated{
			Address:    types.ContractAddress{Index: 1},
			Instigator: account(1),
			Amount:     3,
			Message:    &ValueMessage{Value: []byte{1, 2}},
		},
		&Transferred{From: types.ContractAddress{Index: 2, Subindex: 1}, Amount: 5, To: account(2)},
		&AccountCreated{Account: account(3)},
		&CredentialDeployed{RegID: regID, Account: account(3)},
		&AccountEncryptionKeyDeployed{Key: key, Account: account(3)},
		&BakerAdded{BakerID: 1},
		&BakerRemoved{BakerID: 2},
		&BakerAccountUpdated{BakerID: 3, Account: account(4)},
		&BakerKeyUpdated{BakerID: 3, Key: signKey},
		&StakeDelegated{Account: account(5), BakerID: 3},
		&StakeUndelegated{Account: account(5), BakerID: &baker},
		&StakeUndelegated{Account: account(6)},
	}
}

func allRejectReasons() []RejectReason {
	var ref types.ModuleRef
	ref[5] = 5
	var signKey types.BakerSignVerifyKey
	signKey[0] = 1
	var regID types.CredentialRegistrationID
	regID[47] = 1

	return []RejectReason{
		&ModuleNotWF{},
		&ModuleHashAlreadyExists{ModuleRef: ref},
		&MessageTypeError{},
		&ParamsTypeError{},
		&InvalidAccountReference{Account: account(1)},
		&InvalidContractReference{ModuleRef: ref, ContractName: "Auction"},
		&InvalidModuleReference{ModuleRef: ref},
		&InvalidContractAddress{Address: types.ContractAddress{Index: 9}},
		&ReceiverAccountNoCredential{Account: account(2)},
		&ReceiverContractNoCredential{Address: types.ContractAddress{Index: 8, Subindex: 2}},
		&EvaluationError{},
		&AmountTooLarge{Address: account(3), Amount: 1000},
		&SerializationFailure{},
		&OutOfEnergy{},
		&Rejected{},
		&NonExistentRewardAccount{Account: account(4)},
		&InvalidProof{},
		&RemovingNonExistentBaker{BakerID: 11},
		&InvalidBakerRemoveSource{Account: account(5)},
		&UpdatingNonExistentBaker{BakerID: 12},
		&InvalidStakeDelegationTarget{BakerID: 13},
		&DuplicateSignKey{Key: signKey},
		&NotFromBakerAccount{From: account(6), Actual: account(7)},
		&DuplicateAccountRegistrationID{RegID: regID},
		&AccountCredentialInvalid{},
	}
}

func allFailureKinds() []FailureKind {
	return []FailureKind{
		&InsufficientFunds{},
		&IncorrectSignature{},
		&NonSequentialNonce{Expected: 7},
		&UnknownAccount{Account: account(9)},
		&DepositInsufficient{},
		&NoValidCredential{},
	}
}

func TestMessageFormatRoundTrip(t *testing.T) {
	for _, m := range []MessageFormat{
		&ValueMessage{Value: []byte{1, 2, 3}},
		&ExprMessage{Expr: types.Expr{0xca, 0xfe}},
	} {
		data := EncodeMessageFormat(m)
		assert.Equal(t, byte(m.GetMessageFormatType()), data[0])
		got, err := DecodeMessageFormat(data)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	for _, m := range []MessageFormat{
		&ValueMessage{Value: []byte{}},
		&ExprMessage{Expr: types.Expr{}},
	} {
		data := EncodeMessageFormat(m)
		got, err := DecodeMessageFormat(data)
		require.NoError(t, err)
		assert.True(t, MessageFormatEqual(m, got))
		assert.Equal(t, data, EncodeMessageFormat(got))
	}
	assert.Equal(t, &ValueMessage{}, mustDecodeMessage(t, EncodeMessageFormat(&ValueMessage{Value: []byte{}})))
	assert.False(t, MessageFormatEqual(&ValueMessage{}, &ExprMessage{}))
}

func mustDecodeMessage(t *testing.T, data []byte) MessageFormat {
	m, err := DecodeMessageFormat(data)
	require.NoError(t, err)
	return m
}

func TestMessageFormatBadDiscriminator(t *testing.T) {
	data := EncodeMessageFormat(&ValueMessage{Value: []byte{1}})
	data[0] = 2
	m, err := DecodeMessageFormat(data)
	assert.Nil(t, m)
	assert.True(t, types.IsDecodeError(err))
	assert.True(t, errors.Is(err, ErrInvalidMessageFormat))
}

func TestEventTags(t *testing.T) {
	for i, e := range allEvents()[:13] {
		w := serialization.NewWriter()
		SerializeEvent(w, e)
		assert.Equal(t, byte(i), w.Bytes()[0])
	}
}

func TestEventsRoundTrip(t *testing.T) {
	events := allEvents()
	data := EncodeEvents(events)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, byte(len(events))}, data[:8])

	got, err := DecodeEvents(data)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestEventsCountBeyondInput(t *testing.T) {
	w := serialization.NewWriter()
	w.PutUint64(1 << 40)
	_, err := DecodeEvents(w.Bytes())
	assert.True(t, errors.Is(err, serialization.ErrUnexpectedEOF))
}

func TestUnknownEvent(t *testing.T) {
	w := serialization.NewWriter()
	w.PutUint64(1)
	w.PutUint8(13)
	_, err := DecodeEvents(w.Bytes())
	assert.True(t, errors.Is(err, ErrUnknownEventType))
}

func TestStakeUndelegatedBadOptionTag(t *testing.T) {
	data := EncodeEvents([]Event{&StakeUndelegated{Account: account(1)}})
	data[len(data)-1] = 2
	_, err := DecodeEvents(data)
	assert.True(t, types.IsDecodeError(err))
}

func TestRejectReasonRoundTrip(t *testing.T) {
	reasons := allRejectReasons()
	require.Len(t, reasons, 25)
	for i, reason := range reasons {
		data := EncodeRejectReason(reason)
		assert.Equal(t, byte(i), data[0])
		got, err := DecodeRejectReason(data)
		require.NoError(t, err)
		assert.Equal(t, reason, got)
	}

	_, err := DecodeRejectReason([]byte{25})
	assert.True(t, errors.Is(err, ErrUnknownRejectReason))
}

func TestDescriptions(t *testing.T) {
	for _, reason := range allRejectReasons() {
		assert.NotEmpty(t, reason.String(), "reject reason %d", reason.GetRejectReasonType())
	}
	for _, f := range allFailureKinds() {
		assert.NotEmpty(t, f.String(), "failure kind %d", f.GetFailureKindType())
	}

	assert.Contains(t, (&NonSequentialNonce{Expected: 42}).String(), "42")
	assert.Contains(t, (&RemovingNonExistentBaker{BakerID: 17}).String(), "17")
	assert.Contains(t, (&InvalidContractAddress{Address: types.ContractAddress{Index: 3, Subindex: 4}}).String(), "<3,4>")
	from, actual := account(1), account(2)
	s := (&NotFromBakerAccount{From: from, Actual: actual}).String()
	assert.Contains(t, s, from.String())
	assert.Contains(t, s, actual.String())
}

func TestTxResultRoundTrip(t *testing.T) {
	results := []TxResult{
		&TxValid{Result: &TxSuccess{Events: allEvents(), TransactionCost: 100, EnergyCost: 10}},
		&TxValid{Result: &TxSuccess{TransactionCost: 0, EnergyCost: 0}},
		&TxValid{Result: &TxReject{Reason: &OutOfEnergy{}, TransactionCost: 50, EnergyCost: 5}},
		&TxValid{Result: &TxReject{Reason: &AmountTooLarge{Address: types.ContractAddress{Index: 1}, Amount: 9}}},
	}
	for _, f := range allFailureKinds() {
		results = append(results, &TxInvalid{Failure: f})
	}

	for _, res := range results {
		data := EncodeTxResult(res)
		assert.Equal(t, byte(res.GetTxResultType()), data[0])
		got, err := DecodeTxResult(data)
		require.NoError(t, err)
		assert.Equal(t, res, got)
	}
}

func TestTxResultTrailingBytes(t *testing.T) {
	data := append(EncodeTxResult(&TxInvalid{Failure: &IncorrectSignature{}}), 0)
	_, err := DecodeTxResult(data)
	assert.True(t, errors.Is(err, serialization.ErrTrailingBytes))
}

func TestTxResultUnknownTags(t *testing.T) {
	for _, data := range [][]byte{{2}, {0, 2}, {1, 6}} {
		res, err := DecodeTxResult(data)
		assert.Nil(t, res)
		assert.True(t, types.IsDecodeError(err), "%x", data)
	}
}

func TestValidResultCost(t *testing.T) {
	var v ValidResult = &TxReject{Reason: &Rejected{}, TransactionCost: 30, EnergyCost: 3}
	cost, energy := v.Cost()
	assert.Equal(t, types.Amount(30), cost)
	assert.Equal(t, types.Energy(3), energy)
}
