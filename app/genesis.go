package app

import (
	"encoding/json"
	"os"
	"time"

	errorsmod "cosmossdk.io/errors"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
	tokentypes "github.com/pushchain/dpos-core/x/token/types"
)

// GenesisState is the initial state of every module.
type GenesisState struct {
	GenesisTime time.Time                    `json:"genesis_time"`
	Accounts    *accountstypes.GenesisState  `json:"accounts"`
	Token       *tokentypes.GenesisState     `json:"token"`
	Producers   *producerstypes.GenesisState `json:"producers"`
}

// NewGenesis returns a genesis with the system and token contract accounts,
// both controlled by key.
func NewGenesis(key string) *GenesisState {
	g := &GenesisState{
		Accounts:  accountstypes.DefaultGenesis(),
		Token:     tokentypes.DefaultGenesis(),
		Producers: producerstypes.DefaultGenesis(),
	}
	g.AddAccount(SystemContract, key, 0)
	g.AddAccount(TokenContract, key, 0)
	return g
}

// AddAccount adds an account controlled by key holding balance newly issued
// tokens.
func (g *GenesisState) AddAccount(name, key string, balance int64) accountstypes.Account {
	g.Token.Supply += balance
	return g.Accounts.AddAccount(name, key, balance)
}

// Validate checks every module genesis.
func (g GenesisState) Validate() error {
	if g.Accounts == nil || g.Token == nil || g.Producers == nil {
		return errorsmod.Wrap(ErrNotInitialized, "genesis is missing a module")
	}
	if err := g.Accounts.Validate(); err != nil {
		return err
	}
	if err := g.Token.Validate(); err != nil {
		return err
	}
	return g.Producers.Validate()
}

// LoadGenesis reads a JSON genesis file.
func LoadGenesis(path string) (*GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g GenesisState
	if err := json.Unmarshal(bz, &g); err != nil {
		return nil, errorsmod.Wrapf(err, "parse genesis %s", path)
	}
	return &g, g.Validate()
}

// Save writes g as indented JSON.
func (g GenesisState) Save(path string) error {
	bz, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}
