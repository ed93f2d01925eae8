package statemachine

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/celer-network/go-ledger/config"
	"github.com/celer-network/go-ledger/log"
	"github.com/celer-network/go-ledger/outcome"
	"github.com/celer-network/go-ledger/types"
	"github.com/celer-network/go-ledger/utils"
)

var ErrNilExecutionResult = errors.New("executor returned no result")

// AccountStore gives access to sender accounts. Payload effects on other accounts are the
// executor's business.
type AccountStore interface {
	GetAccount(address types.AccountAddress) (*types.AccountInfo, bool, error)
	SetAccount(info *types.AccountInfo) error
}

// ExecutionResult is what an Executor reports for one payload. A non-nil Reject means the
// payload had no effect and Events must be ignored.
type ExecutionResult struct {
	Events     []outcome.Event
	Reject     outcome.RejectReason
	EnergyUsed types.Energy
}

// Executor runs a decoded payload against ledger state. maxEnergy is what is left of the
// sender's energy after the base cost.
type Executor interface {
	Execute(sender *types.AccountInfo, payload types.Payload, maxEnergy types.Energy) (*ExecutionResult, error)
}

type StateMachine struct {
	accounts AccountStore
	executor Executor
	pricing  config.ExecutionConfig
	log      *log.Logger
}

func NewStateMachine(accounts AccountStore, executor Executor, pricing config.ExecutionConfig) *StateMachine {
	return &StateMachine{
		accounts: accounts,
		executor: executor,
		pricing:  pricing,
		log:      log.NewLogger("statemachine"),
	}
}

// BaseEnergy is the energy every transaction pays before its payload runs. The second
// result is false if the cost does not fit in an Energy.
func (sm *StateMachine) BaseEnergy(payloadSize uint32) (types.Energy, bool) {
	hi, perByte := bits.Mul64(sm.pricing.EnergyPerByte, uint64(payloadSize))
	if hi != 0 {
		return 0, false
	}
	total, carry := bits.Add64(sm.pricing.MinimumEnergy, perByte, 0)
	if carry != 0 {
		return 0, false
	}
	return types.Energy(total), true
}

// EnergyCost converts energy into the amount charged for it.
func (sm *StateMachine) EnergyCost(energy types.Energy) (types.Amount, bool) {
	hi, cost := bits.Mul64(uint64(energy), sm.pricing.EnergyPrice)
	return types.Amount(cost), hi == 0
}

// Check runs the pre-execution checks in order and returns the first failure, or nil with
// the sender account if the transaction may be executed.
func (sm *StateMachine) Check(tx *types.Transaction) (*types.AccountInfo, outcome.FailureKind, error) {
	header := tx.Header
	sender, found, err := sm.accounts.GetAccount(header.Sender)
	if err != nil {
		return nil, nil, fmt.Errorf("get account %s: %w", header.Sender, err)
	}
	if !found {
		return nil, &outcome.UnknownAccount{Account: header.Sender}, nil
	}
	if header.Nonce != sender.NextNonce {
		return nil, &outcome.NonSequentialNonce{Expected: sender.NextNonce}, nil
	}
	base, ok := sm.BaseEnergy(header.PayloadSize)
	if !ok || header.Energy < base {
		return nil, &outcome.DepositInsufficient{}, nil
	}
	deposit, ok := sm.EnergyCost(header.Energy)
	if !ok || sender.Balance < deposit {
		return nil, &outcome.InsufficientFunds{}, nil
	}
	if !utils.SigIsValid(sender.VerifyKey[:], tx.SignBytes(), tx.Signature[:]) {
		return nil, &outcome.IncorrectSignature{}, nil
	}
	if !sender.HasValidCredential {
		return nil, &outcome.NoValidCredential{}, nil
	}
	return sender, nil, nil
}

// ApplyTransaction checks, decodes and executes tx. A failed check yields TxInvalid and
// leaves the sender untouched. Otherwise the sender pays for the energy used and its
// nonce advances, whether the payload succeeded or was rejected. A payload that does not
// decode is returned as an error.
func (sm *StateMachine) ApplyTransaction(tx *types.Transaction) (outcome.TxResult, error) {
	txHash := tx.Hash()
	sender, failure, err := sm.Check(tx)
	if err != nil {
		return nil, err
	}
	if failure != nil {
		sm.log.Debug().Hex("tx", txHash[:]).Str("failure", failure.String()).Msg("Transaction invalid")
		return &outcome.TxInvalid{Failure: failure}, nil
	}

	payload, err := tx.Payload.Decode()
	if err != nil {
		sm.log.Debug().Hex("tx", txHash[:]).Err(err).Msg("Undecodable payload")
		return nil, err
	}

	base, _ := sm.BaseEnergy(tx.Header.PayloadSize)
	res, err := sm.executor.Execute(sender, payload, tx.Header.Energy-base)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", payload.GetPayloadType(), err)
	}
	if res == nil {
		return nil, ErrNilExecutionResult
	}

	reject := res.Reject
	energy := base + res.EnergyUsed
	if res.EnergyUsed > tx.Header.Energy-base {
		energy = tx.Header.Energy
		reject = &outcome.OutOfEnergy{}
	}
	// Check verified the balance covers all of the header energy
	cost, _ := sm.EnergyCost(energy)
	if cost, err = sm.charge(tx.Header.Sender, cost); err != nil {
		return nil, err
	}

	var result outcome.ValidResult
	if reject != nil {
		result = &outcome.TxReject{Reason: reject, TransactionCost: cost, EnergyCost: energy}
	} else {
		result = &outcome.TxSuccess{Events: res.Events, TransactionCost: cost, EnergyCost: energy}
	}

	if reject != nil {
		sm.log.Debug().Hex("tx", txHash[:]).Str("payload", payload.GetPayloadType().String()).
			Str("reason", reject.String()).Uint64("energy", uint64(energy)).Msg("Transaction rejected")
	} else {
		sm.log.Debug().Hex("tx", txHash[:]).Str("payload", payload.GetPayloadType().String()).
			Int("events", len(res.Events)).Uint64("energy", uint64(energy)).Msg("Transaction applied")
	}
	return &outcome.TxValid{Result: result}, nil
}

// charge reloads the sender, since the executor may have changed it, then takes the fee
// and advances the nonce. It returns the amount actually taken.
func (sm *StateMachine) charge(address types.AccountAddress, cost types.Amount) (types.Amount, error) {
	sender, found, err := sm.accounts.GetAccount(address)
	if err != nil {
		return 0, fmt.Errorf("get account %s: %w", address, err)
	}
	if !found {
		return 0, fmt.Errorf("sender %s disappeared during execution", address)
	}
	if sender.Balance < cost {
		sm.log.Warn().Str("sender", address.String()).Uint64("balance", uint64(sender.Balance)).
			Uint64("cost", uint64(cost)).Msg("Sender spent its deposit during execution")
		cost = sender.Balance
	}
	sender.Balance -= cost
	sender.NextNonce++
	if err := sm.accounts.SetAccount(sender); err != nil {
		return 0, fmt.Errorf("charge sender %s: %w", address, err)
	}
	return cost, nil
}
