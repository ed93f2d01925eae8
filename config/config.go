// Package config holds the settings shared by ledger tools: genesis parameters of the seed
// state, the database backend and execution pricing.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/viper"

	"github.com/celer-network/go-ledger/seed"
)

const (
	EnvPrefix = "LEDGER"

	BackendMemory = "memory"
	BackendBadger = "badger"
)

var (
	ErrInvalidBackend      = errors.New("unknown db backend")
	ErrMissingDBDir        = errors.New("db dir required for badger backend")
	ErrInvalidInitialNonce = errors.New("initial nonce must be 32 hex-encoded bytes")
	ErrZeroEnergyPrice     = errors.New("energy price must be positive")
)

type Config struct {
	Genesis   GenesisConfig   `mapstructure:"genesis"`
	DB        DBConfig        `mapstructure:"db"`
	Execution ExecutionConfig `mapstructure:"execution"`
}

type GenesisConfig struct {
	EpochLength  uint64 `mapstructure:"epoch_length"`
	InitialNonce string `mapstructure:"initial_nonce"`
}

type DBConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// ExecutionConfig prices transactions. The base cost in energy of a transaction is
// MinimumEnergy plus EnergyPerByte for every payload byte; one unit of energy costs
// EnergyPrice.
type ExecutionConfig struct {
	MinimumEnergy uint64 `mapstructure:"minimum_energy"`
	EnergyPerByte uint64 `mapstructure:"energy_per_byte"`
	EnergyPrice   uint64 `mapstructure:"energy_price"`
}

func DefaultConfig() *Config {
	return &Config{
		Genesis: GenesisConfig{
			EpochLength:  3600,
			InitialNonce: hexutil.Encode(make([]byte, seed.NonceSize)),
		},
		DB: DBConfig{
			Backend: BackendMemory,
		},
		Execution: ExecutionConfig{
			MinimumEnergy: 100,
			EnergyPerByte: 1,
			EnergyPrice:   1,
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("genesis.epoch_length", def.Genesis.EpochLength)
	v.SetDefault("genesis.initial_nonce", def.Genesis.InitialNonce)
	v.SetDefault("db.backend", def.DB.Backend)
	v.SetDefault("db.dir", def.DB.Dir)
	v.SetDefault("execution.minimum_energy", def.Execution.MinimumEnergy)
	v.SetDefault("execution.energy_per_byte", def.Execution.EnergyPerByte)
	v.SetDefault("execution.energy_price", def.Execution.EnergyPrice)
}

// Load reads the config file at path, if any, on top of the defaults. LEDGER_* environment
// variables override both, e.g. LEDGER_DB_DIR for db.dir.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateBasic checks the values without touching the database.
func (c *Config) ValidateBasic() error {
	if _, err := c.Genesis.State(); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	switch c.DB.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.DB.Dir == "" {
			return ErrMissingDBDir
		}
	default:
		return fmt.Errorf("%q: %w", c.DB.Backend, ErrInvalidBackend)
	}
	if c.Execution.EnergyPrice == 0 {
		return ErrZeroEnergyPrice
	}
	return nil
}

// Nonce decodes the configured genesis nonce.
func (g GenesisConfig) Nonce() (seed.LeadershipElectionNonce, error) {
	var nonce seed.LeadershipElectionNonce
	raw, err := hexutil.Decode(g.InitialNonce)
	if err != nil {
		return nonce, fmt.Errorf("%v: %w", err, ErrInvalidInitialNonce)
	}
	if len(raw) != len(nonce) {
		return nonce, fmt.Errorf("got %d bytes: %w", len(raw), ErrInvalidInitialNonce)
	}
	copy(nonce[:], raw)
	return nonce, nil
}

// State builds the genesis seed state.
func (g GenesisConfig) State() (*seed.State, error) {
	nonce, err := g.Nonce()
	if err != nil {
		return nil, err
	}
	return seed.InitialState(nonce, g.EpochLength)
}
