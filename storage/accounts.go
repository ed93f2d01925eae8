package storage

import (
	"fmt"

	"github.com/celer-network/go-ledger/db"
	"github.com/celer-network/go-ledger/statemachine"
	"github.com/celer-network/go-ledger/types"
)

var _ statemachine.AccountStore = (*Storage)(nil)

func (s *Storage) GetAccount(address types.AccountAddress) (*types.AccountInfo, bool, error) {
	data, found, err := s.db.Get(db.NamespaceAccount, address[:])
	if err != nil || !found {
		return nil, false, err
	}
	info, err := types.DecodeAccountInfo(data)
	if err != nil {
		return nil, false, fmt.Errorf("account %s: %w", address, err)
	}
	return info, true, nil
}

func (s *Storage) SetAccount(info *types.AccountInfo) error {
	return s.db.Set(db.NamespaceAccount, info.Address[:], info.Bytes())
}
