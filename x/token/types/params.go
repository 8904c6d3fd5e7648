package types

import (
	"encoding/json"
	"fmt"
)

const (
	// Precision is the number of decimal places of every amount.
	Precision = 4

	// DefaultSymbol is the symbol of the system token.
	DefaultSymbol = "SYS"

	// DefaultMaxSupply is 10,000,000,000.0000 tokens.
	DefaultMaxSupply int64 = 10_000_000_000_0000

	MaxMemoLength = 256
)

// Params defines the token module parameters.
type Params struct {
	Symbol    string `json:"symbol"`
	MaxSupply int64  `json:"max_supply"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		Symbol:    DefaultSymbol,
		MaxSupply: DefaultMaxSupply,
	}
}

// Stringer method for Params.
func (p Params) String() string {
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// ValidateBasic does the sanity check on the params.
func (p Params) ValidateBasic() error {
	if len(p.Symbol) == 0 || len(p.Symbol) > 7 {
		return fmt.Errorf("symbol must be 1 to 7 characters, got %q", p.Symbol)
	}
	for _, c := range p.Symbol {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("symbol %q must be upper case letters", p.Symbol)
		}
	}
	if p.MaxSupply <= 0 {
		return fmt.Errorf("max supply must be positive, got %d", p.MaxSupply)
	}
	return nil
}
