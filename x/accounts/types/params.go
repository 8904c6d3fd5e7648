package types

import (
	"encoding/json"
	"fmt"
)

// DefaultMaxAuthorityDepth bounds every walk over a permission parent chain.
const DefaultMaxAuthorityDepth = 6

// Params defines the accounts module parameters.
type Params struct {
	MaxAuthorityDepth uint32 `json:"max_authority_depth"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		MaxAuthorityDepth: DefaultMaxAuthorityDepth,
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
	if p.MaxAuthorityDepth < 2 {
		return fmt.Errorf("max authority depth must be at least 2, got %d", p.MaxAuthorityDepth)
	}
	return nil
}
