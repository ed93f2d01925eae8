package config

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-network/go-ledger/seed"
)

func writeConfig(t *testing.T, name, text string) string {
	dir, err := ioutil.TempDir("", "ledgerconfig")
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(text), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	state, err := cfg.Genesis.State()
	require.NoError(t, err)
	assert.Equal(t, uint64(3600), state.EpochLength())
	assert.Equal(t, seed.LeadershipElectionNonce{}, state.CurrentLeadershipElectionNonce())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "ledger.yaml", `
genesis:
  epoch_length: 90
  initial_nonce: "0x0101010101010101010101010101010101010101010101010101010101010101"
db:
  backend: badger
  dir: /tmp/ledger
execution:
  energy_price: 3
`)
	defer os.RemoveAll(filepath.Dir(path))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), cfg.Genesis.EpochLength)
	assert.Equal(t, BackendBadger, cfg.DB.Backend)
	assert.Equal(t, "/tmp/ledger", cfg.DB.Dir)
	assert.Equal(t, uint64(3), cfg.Execution.EnergyPrice)
	assert.Equal(t, uint64(100), cfg.Execution.MinimumEnergy)

	nonce, err := cfg.Genesis.Nonce()
	require.NoError(t, err)
	assert.Equal(t, byte(1), nonce[31])
}

func TestLoadTOMLWithEnvOverride(t *testing.T) {
	path := writeConfig(t, "ledger.toml", `
[genesis]
epoch_length = 10
`)
	defer os.RemoveAll(filepath.Dir(path))
	os.Setenv("LEDGER_GENESIS_EPOCH_LENGTH", "20")
	defer os.Unsetenv("LEDGER_GENESIS_EPOCH_LENGTH")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), cfg.Genesis.EpochLength)
}

func TestValidateBasic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DB.Backend = "leveldb"
	assert.True(t, errors.Is(cfg.ValidateBasic(), ErrInvalidBackend))

	cfg = DefaultConfig()
	cfg.DB.Backend = BackendBadger
	assert.True(t, errors.Is(cfg.ValidateBasic(), ErrMissingDBDir))

	cfg = DefaultConfig()
	cfg.Genesis.EpochLength = 0
	assert.True(t, errors.Is(cfg.ValidateBasic(), seed.ErrZeroEpochLength))

	cfg = DefaultConfig()
	cfg.Genesis.InitialNonce = "0x0102"
	assert.True(t, errors.Is(cfg.ValidateBasic(), ErrInvalidInitialNonce))

	cfg = DefaultConfig()
	cfg.Genesis.InitialNonce = "zz"
	assert.True(t, errors.Is(cfg.ValidateBasic(), ErrInvalidInitialNonce))

	cfg = DefaultConfig()
	cfg.Execution.EnergyPrice = 0
	assert.True(t, errors.Is(cfg.ValidateBasic(), ErrZeroEnergyPrice))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), "/nonexistent/ledger.yaml")
	assert.Error(t, err)
}
