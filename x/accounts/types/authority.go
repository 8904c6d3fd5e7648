package types

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// PermissionLevel names a permission of an account, e.g. alice@active.
type PermissionLevel struct {
	Actor      string `json:"actor"`
	Permission string `json:"permission"`
}

func (p PermissionLevel) String() string {
	return fmt.Sprintf("%s@%s", p.Actor, p.Permission)
}

type KeyWeight struct {
	Key    string `json:"key"`
	Weight uint16 `json:"weight"`
}

type PermissionLevelWeight struct {
	Permission PermissionLevel `json:"permission"`
	Weight     uint16          `json:"weight"`
}

// Authority is the weighted threshold rule a permission is satisfied by.
type Authority struct {
	Threshold uint32                  `json:"threshold"`
	Keys      []KeyWeight             `json:"keys,omitempty"`
	Accounts  []PermissionLevelWeight `json:"accounts,omitempty"`
}

// NewKeyAuthority returns an authority satisfied by a single key.
func NewKeyAuthority(key string) Authority {
	return Authority{
		Threshold: 1,
		Keys:      []KeyWeight{{Key: key, Weight: 1}},
	}
}

// ValidateBasic checks that the threshold is reachable and no key or
// permission level is listed twice.
func (a Authority) ValidateBasic() error {
	if a.Threshold == 0 {
		return errorsmod.Wrap(ErrInvalidAuthority, "threshold must be positive")
	}

	var total uint64
	keys := make(map[string]struct{}, len(a.Keys))
	for _, kw := range a.Keys {
		if kw.Key == "" || kw.Weight == 0 {
			return errorsmod.Wrap(ErrInvalidAuthority, "empty key or zero weight")
		}
		if _, dup := keys[kw.Key]; dup {
			return errorsmod.Wrapf(ErrInvalidAuthority, "duplicate key %s", kw.Key)
		}
		keys[kw.Key] = struct{}{}
		total += uint64(kw.Weight)
	}

	levels := make(map[PermissionLevel]struct{}, len(a.Accounts))
	for _, pw := range a.Accounts {
		if pw.Weight == 0 {
			return errorsmod.Wrapf(ErrInvalidAuthority, "zero weight for %s", pw.Permission)
		}
		if _, dup := levels[pw.Permission]; dup {
			return errorsmod.Wrapf(ErrInvalidAuthority, "duplicate permission level %s", pw.Permission)
		}
		levels[pw.Permission] = struct{}{}
		total += uint64(pw.Weight)
	}

	if total < uint64(a.Threshold) {
		return errorsmod.Wrapf(ErrInvalidAuthority, "weights sum %d below threshold %d", total, a.Threshold)
	}
	return nil
}
