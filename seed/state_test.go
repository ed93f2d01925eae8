package seed

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-ledger/serialization"
)

func testNonce(b byte) LeadershipElectionNonce {
	var n LeadershipElectionNonce
	for i := range n {
		n[i] = b
	}
	return n
}

func testBlockNonce(b byte) BlockNonce {
	var n BlockNonce
	n[0] = b
	n[31] = ^b
	return n
}

func TestInitialState(t *testing.T) {
	s, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)
	assert.Equal(t, Epoch(0), s.Epoch())
	assert.Equal(t, uint64(9), s.EpochLength())
	assert.Equal(t, testNonce(1), s.CurrentLeadershipElectionNonce())
	assert.Equal(t, testNonce(1), s.UpdatedNonce())

	_, err = InitialState(testNonce(1), 0)
	assert.True(t, errors.Is(err, ErrZeroEpochLength))
	_, err = InitialState(testNonce(1), MaxEpochLength+1)
	assert.True(t, errors.Is(err, ErrEpochLengthTooLarge))
}

func TestContributes(t *testing.T) {
	s, err := InitialState(testNonce(0), 9)
	require.NoError(t, err)
	for slot := Slot(0); slot < 27; slot++ {
		assert.Equal(t, slot%9 < 6, s.Contributes(slot), "slot %d", slot)
	}

	s, err = InitialState(testNonce(0), 10)
	require.NoError(t, err)
	// 3*6 = 18 < 20 but 3*7 = 21 is not
	assert.True(t, s.Contributes(6))
	assert.False(t, s.Contributes(7))

	s, err = InitialState(testNonce(0), 1)
	require.NoError(t, err)
	assert.True(t, s.Contributes(5))
}

func TestUpdateWithinEpoch(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)

	s1, err := genesis.UpdateForBlock(1, testBlockNonce(1))
	require.NoError(t, err)
	assert.Equal(t, CombineNonce(testNonce(1), testBlockNonce(1)), s1.UpdatedNonce())
	assert.Equal(t, testNonce(1), s1.CurrentLeadershipElectionNonce())
	// the receiver is left untouched
	assert.Equal(t, testNonce(1), genesis.UpdatedNonce())

	s2, err := s1.UpdateForBlock(2, testBlockNonce(2))
	require.NoError(t, err)
	assert.Equal(t, CombineNonce(s1.UpdatedNonce(), testBlockNonce(2)), s2.UpdatedNonce())
}

func TestOrderMatters(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)

	a, err := genesis.UpdateForBlock(1, testBlockNonce(1))
	require.NoError(t, err)
	a, err = a.UpdateForBlock(2, testBlockNonce(2))
	require.NoError(t, err)

	b, err := genesis.UpdateForBlock(1, testBlockNonce(2))
	require.NoError(t, err)
	b, err = b.UpdateForBlock(2, testBlockNonce(1))
	require.NoError(t, err)

	assert.NotEqual(t, a.UpdatedNonce(), b.UpdatedNonce())
}

func TestLateBlocksDoNotContribute(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)

	s, err := genesis.UpdateForBlock(6, testBlockNonce(6))
	require.NoError(t, err)
	assert.Equal(t, genesis.UpdatedNonce(), s.UpdatedNonce())

	s, err = s.UpdateForBlock(8, testBlockNonce(8))
	require.NoError(t, err)
	assert.Equal(t, genesis, s)
}

func TestEpochBoundary(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)

	s, err := genesis.UpdateForBlock(3, testBlockNonce(3))
	require.NoError(t, err)
	accumulated := s.UpdatedNonce()

	// slot 9 is the first slot of epoch 1 and contributes after the rotation
	s, err = s.UpdateForBlock(9, testBlockNonce(9))
	require.NoError(t, err)
	assert.Equal(t, Epoch(1), s.Epoch())
	assert.Equal(t, accumulated, s.CurrentLeadershipElectionNonce())
	assert.Equal(t, CombineNonce(accumulated, testBlockNonce(9)), s.UpdatedNonce())
}

func TestAdvanceEpoch(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)
	s, err := genesis.UpdateForBlock(0, testBlockNonce(0))
	require.NoError(t, err)

	next := s.AdvanceEpoch()
	assert.Equal(t, Epoch(1), next.Epoch())
	assert.Equal(t, s.UpdatedNonce(), next.CurrentLeadershipElectionNonce())
	assert.Equal(t, s.UpdatedNonce(), next.UpdatedNonce())
	assert.Equal(t, Epoch(0), s.Epoch())
}

func TestSkipSeveralEpochs(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)
	s, err := genesis.UpdateForBlock(2, testBlockNonce(2))
	require.NoError(t, err)

	skipped, err := s.UpdateForBlock(9*5+7, testBlockNonce(7))
	require.NoError(t, err)

	stepped := s
	for i := 0; i < 5; i++ {
		stepped = stepped.AdvanceEpoch()
	}
	assert.Equal(t, stepped, skipped)
	assert.Equal(t, Epoch(5), skipped.Epoch())
	assert.Equal(t, s.UpdatedNonce(), skipped.CurrentLeadershipElectionNonce())
}

func TestSlotBeforeEpoch(t *testing.T) {
	genesis, err := InitialState(testNonce(1), 9)
	require.NoError(t, err)
	s := genesis.AdvanceEpoch()

	_, err = s.UpdateForBlock(8, testBlockNonce(8))
	assert.True(t, errors.Is(err, ErrSlotBeforeEpoch))
}

func TestEpochMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := InitialState(testNonce(3), 12)
	require.NoError(t, err)

	slot := Slot(0)
	for i := 0; i < 500; i++ {
		prev := s
		if rng.Intn(20) == 0 {
			s = s.AdvanceEpoch()
			slot = Slot(uint64(s.Epoch()) * s.EpochLength())
		} else {
			slot += Slot(rng.Intn(4))
			var bn BlockNonce
			rng.Read(bn[:])
			s, err = s.UpdateForBlock(slot, bn)
			require.NoError(t, err)
		}

		assert.True(t, s.Epoch() >= prev.Epoch())
		if s.Epoch() == prev.Epoch() {
			assert.Equal(t, prev.CurrentLeadershipElectionNonce(), s.CurrentLeadershipElectionNonce())
		}
		assert.Equal(t, prev.EpochLength(), s.EpochLength())
	}
}

func TestStateEncoding(t *testing.T) {
	genesis, err := InitialState(testNonce(4), 100)
	require.NoError(t, err)
	s, err := genesis.UpdateForBlock(250, testBlockNonce(9))
	require.NoError(t, err)

	data := s.Bytes()
	assert.Len(t, data, StateSize)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 100}, data[:8])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, data[8:16])

	got, err := DecodeState(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = DecodeState(data[:StateSize-1])
	assert.True(t, errors.Is(err, serialization.ErrUnexpectedEOF))
	_, err = DecodeState(append(data, 0))
	assert.True(t, errors.Is(err, serialization.ErrTrailingBytes))

	zero := make([]byte, StateSize)
	_, err = DecodeState(zero)
	assert.True(t, errors.Is(err, ErrZeroEpochLength))
}
