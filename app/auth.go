package app

import (
	"context"
	"slices"

	errorsmod "cosmossdk.io/errors"

	accountskeeper "github.com/pushchain/dpos-core/x/accounts/keeper"
	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
)

// SignatureVerifier decides whether a set of verified keys satisfies an
// authority.
type SignatureVerifier interface {
	VerifyAuthority(ctx context.Context, auth accountstypes.Authority, keys []string) error
}

var _ SignatureVerifier = WeightedKeyVerifier{}

// WeightedKeyVerifier sums the weights of the provided keys and of the
// account permissions those keys satisfy in turn.
type WeightedKeyVerifier struct {
	Accounts accountskeeper.Keeper
}

func (v WeightedKeyVerifier) VerifyAuthority(ctx context.Context, auth accountstypes.Authority, keys []string) error {
	params, err := v.Accounts.GetParams(ctx)
	if err != nil {
		return err
	}
	ok, err := v.satisfied(ctx, auth, keys, params.MaxAuthorityDepth)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrapf(ErrMissingSignatures, "threshold %d", auth.Threshold)
	}
	return nil
}

func (v WeightedKeyVerifier) satisfied(ctx context.Context, auth accountstypes.Authority, keys []string, depth uint32) (bool, error) {
	var total uint64
	for _, kw := range auth.Keys {
		if slices.Contains(keys, kw.Key) {
			total += uint64(kw.Weight)
		}
	}
	if total >= uint64(auth.Threshold) {
		return true, nil
	}
	if depth <= 1 {
		return false, nil
	}

	for _, lw := range auth.Accounts {
		p, err := v.Accounts.GetPermissionLevel(ctx, lw.Permission)
		if err != nil {
			return false, err
		}
		ok, err := v.satisfied(ctx, p.Auth, keys, depth-1)
		if err != nil {
			return false, err
		}
		if ok {
			total += uint64(lw.Weight)
			if total >= uint64(auth.Threshold) {
				return true, nil
			}
		}
	}
	return false, nil
}

// authorize resolves every declared authorization of action and returns the
// authority the action handler runs with.
func (c *Chain) authorize(ctx context.Context, action Action, keys []string) (producerstypes.Authority, error) {
	if len(action.Authorization) == 0 {
		return nil, errorsmod.Wrapf(ErrMissingAuthority, "%s::%s", action.Account, action.Name)
	}

	scope, err := c.AccountKeeper.ScopePermission(ctx, action.Account, action.Name)
	if err != nil {
		return nil, err
	}

	actors := make(producerstypes.Authority, 0, len(action.Authorization))
	for _, level := range action.Authorization {
		signed, err := c.AccountKeeper.CheckAuthorization(ctx, level, scope.ID)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "authorization %s", level)
		}
		if err := c.verifier.VerifyAuthority(ctx, signed.Auth, keys); err != nil {
			return nil, errorsmod.Wrapf(err, "authorization %s", level)
		}
		actors = append(actors, level.Actor)
	}
	return actors, nil
}
