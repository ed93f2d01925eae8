package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"

	"github.com/celer-network/go-ledger/serialization"
	"github.com/celer-network/go-ledger/utils"
)

func TestTransactionRoundTrip(t *testing.T) {
	tx := NewTransaction(testAccount(1), 3, 1000, &Transfer{ToAddress: testAccount(2), Amount: 10})
	tx.Signature[0] = 0x55

	data := tx.Bytes()
	assert.Len(t, data, TransactionSignatureSize+TransactionHeaderSize+len(tx.Payload))

	got, err := DeserializeTransaction(data)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	payload, err := got.Payload.Decode()
	require.NoError(t, err)
	assert.Equal(t, &Transfer{ToAddress: testAccount(2), Amount: 10}, payload)
}

func TestTransactionPayloadSizeMismatch(t *testing.T) {
	tx := NewTransaction(testAccount(1), 1, 10, &DelegateStake{BakerID: 1})
	data := append(tx.Bytes(), 0xff)

	_, err := DeserializeTransaction(data)
	assert.True(t, IsDecodeError(err))
	assert.True(t, errors.Is(err, ErrPayloadSizeMismatch))
}

func TestTransactionTruncatedHeader(t *testing.T) {
	tx := NewTransaction(testAccount(1), 1, 10, &UndelegateStake{})
	data := tx.Bytes()[:TransactionSignatureSize+10]

	_, err := DeserializeTransaction(data)
	assert.True(t, errors.Is(err, serialization.ErrUnexpectedEOF))
}

func TestTransactionSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(testAccount(1), 1, 10, &DelegateStake{BakerID: 9})
	copy(tx.Signature[:], utils.SignData(priv, tx.SignBytes()))
	assert.True(t, utils.SigIsValid(pub, tx.SignBytes(), tx.Signature[:]))

	tx.Header.Nonce++
	assert.False(t, utils.SigIsValid(pub, tx.SignBytes(), tx.Signature[:]))
}

func TestTransactionHashCoversPayload(t *testing.T) {
	a := NewTransaction(testAccount(1), 1, 10, &DelegateStake{BakerID: 1})
	b := NewTransaction(testAccount(1), 1, 10, &DelegateStake{BakerID: 2})
	assert.NotEqual(t, a.Hash(), b.Hash())
}
