package types

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultMaxProducers      = 21
	DefaultMaxVotedProducers = 30
	MaxURLLength             = 512
)

// Params defines the producers module parameters.
type Params struct {
	MaxProducers      uint32 `json:"max_producers"`
	MaxVotedProducers uint32 `json:"max_voted_producers"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		MaxProducers:      DefaultMaxProducers,
		MaxVotedProducers: DefaultMaxVotedProducers,
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
	if p.MaxProducers == 0 {
		return fmt.Errorf("max producers must be positive")
	}
	if p.MaxVotedProducers == 0 {
		return fmt.Errorf("max voted producers must be positive")
	}
	return nil
}
