package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
)

const (
	// OwnerPermission is the root permission of every account.
	OwnerPermission = "owner"
	// ActivePermission is the default permission required by actions.
	ActivePermission = "active"

	maxNameLength = 12
)

// Account is a named on-chain identity holding a token balance and the
// counters used for producer voting.
type Account struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Balance        int64    `json:"balance"`
	Staked         int64    `json:"staked"`
	LastVoteWeight float64  `json:"last_vote_weight"`
	Producers      []string `json:"producers,omitempty"`
	Created        int64    `json:"created"`
}

// Stringer method for Account.
func (a Account) String() string {
	bz, err := json.Marshal(a)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// ValidateBasic checks the stateless fields of the account.
func (a Account) ValidateBasic() error {
	if a.ID == 0 {
		return errorsmod.Wrap(ErrInvalidGenesis, "account id must be positive")
	}
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	if a.Balance < 0 || a.Staked < 0 {
		return errorsmod.Wrapf(ErrInvalidGenesis, "account %s has a negative balance", a.Name)
	}
	return nil
}

// ValidateName checks an account or permission name: 1 to 12 characters
// from [a-z1-5.], not ending with a dot.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLength {
		return errorsmod.Wrapf(ErrInvalidName, "%q must be 1 to %d characters", name, maxNameLength)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z') && !(c >= '1' && c <= '5') && c != '.' {
			return errorsmod.Wrapf(ErrInvalidName, "%q contains %q", name, c)
		}
	}
	if name[len(name)-1] == '.' {
		return errorsmod.Wrapf(ErrInvalidName, "%q ends with a dot", name)
	}
	return nil
}
