package app

import (
	"bytes"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
	tokentypes "github.com/pushchain/dpos-core/x/token/types"
)

const (
	SystemContract = producerstypes.SystemAccount
	TokenContract  = "token"
)

type NewAccount struct {
	Creator string                  `json:"creator"`
	Name    string                  `json:"name"`
	Owner   accountstypes.Authority `json:"owner"`
	Active  accountstypes.Authority `json:"active"`
}

type UpdateAuth struct {
	Account    string                  `json:"account"`
	Permission string                  `json:"permission"`
	Parent     string                  `json:"parent"`
	Auth       accountstypes.Authority `json:"auth"`
}

type DeleteAuth struct {
	Account    string `json:"account"`
	Permission string `json:"permission"`
}

// LinkAuth makes Requirement the permission Account must use for Type on
// Code.
type LinkAuth struct {
	Account     string `json:"account"`
	Code        string `json:"code"`
	Type        string `json:"type"`
	Requirement string `json:"requirement"`
}

type UnlinkAuth struct {
	Account string `json:"account"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

type RegProducer struct {
	Producer    string `json:"producer"`
	ProducerKey string `json:"producer_key"`
	URL         string `json:"url"`
}

type UnregProd struct {
	Producer string `json:"producer"`
}

type VoteProducer struct {
	Voter     string   `json:"voter"`
	Producers []string `json:"producers"`
}

type ClaimRewards struct {
	Owner string `json:"owner"`
}

// Transfer moves Quantity, an asset string such as "1.0000 SYS".
type Transfer struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Quantity string `json:"quantity"`
	Memo     string `json:"memo"`
}

type Stake struct {
	Account  string `json:"account"`
	Quantity string `json:"quantity"`
}

type handler func(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error

func actionKey(contract, name string) string {
	return contract + "::" + name
}

var handlers = map[string]handler{
	actionKey(SystemContract, "newaccount"):   handleNewAccount,
	actionKey(SystemContract, "updateauth"):   handleUpdateAuth,
	actionKey(SystemContract, "deleteauth"):   handleDeleteAuth,
	actionKey(SystemContract, "linkauth"):     handleLinkAuth,
	actionKey(SystemContract, "unlinkauth"):   handleUnlinkAuth,
	actionKey(SystemContract, "regproducer"):  handleRegProducer,
	actionKey(SystemContract, "unregprod"):    handleUnregProd,
	actionKey(SystemContract, "voteproducer"): handleVoteProducer,
	actionKey(SystemContract, "claimrewards"): handleClaimRewards,
	actionKey(TokenContract, "transfer"):      handleTransfer,
	actionKey(TokenContract, "stake"):         handleStake,
	actionKey(TokenContract, "unstake"):       handleUnstake,
}

// NewAction encodes data as the payload of contract::name.
func NewAction(contract, name string, data any, authorization ...accountstypes.PermissionLevel) (Action, error) {
	bz, err := json.Marshal(data)
	if err != nil {
		return Action{}, err
	}
	return Action{Account: contract, Name: name, Authorization: authorization, Data: bz}, nil
}

func decode[T any](data json.RawMessage) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, errorsmod.Wrap(ErrInvalidActionData, err.Error())
	}
	return v, nil
}

func handleNewAccount(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[NewAccount](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Creator); err != nil {
		return err
	}
	if _, err := c.AccountKeeper.GetAccount(ctx, d.Creator); err != nil {
		return err
	}
	_, err = c.AccountKeeper.CreateAccount(ctx, d.Name, d.Owner, d.Active)
	return err
}

func handleUpdateAuth(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[UpdateAuth](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Account); err != nil {
		return err
	}
	_, err = c.AccountKeeper.UpdateAuth(ctx, d.Account, d.Permission, d.Parent, d.Auth)
	return err
}

func handleDeleteAuth(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[DeleteAuth](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Account); err != nil {
		return err
	}
	return c.AccountKeeper.DeleteAuth(ctx, d.Account, d.Permission)
}

// scopeLevel names the permission code declares for action type.
func (c *Chain) scopeLevel(ctx sdk.Context, code, action string) (accountstypes.PermissionLevel, error) {
	scope, err := c.AccountKeeper.ScopePermission(ctx, code, action)
	if err != nil {
		return accountstypes.PermissionLevel{}, err
	}
	return accountstypes.PermissionLevel{Actor: code, Permission: scope.Name}, nil
}

func handleLinkAuth(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[LinkAuth](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Account); err != nil {
		return err
	}
	scope, err := c.scopeLevel(ctx, d.Code, d.Type)
	if err != nil {
		return err
	}
	_, err = c.AccountKeeper.LinkAuth(ctx, d.Account, scope, d.Requirement)
	return err
}

func handleUnlinkAuth(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[UnlinkAuth](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Account); err != nil {
		return err
	}
	scope, err := c.scopeLevel(ctx, d.Code, d.Type)
	if err != nil {
		return err
	}
	return c.AccountKeeper.UnlinkAuth(ctx, d.Account, scope)
}

func handleRegProducer(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[RegProducer](data)
	if err != nil {
		return err
	}
	return c.ProducersKeeper.RegisterProducer(ctx, auth, d.Producer, d.ProducerKey, d.URL)
}

func handleUnregProd(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[UnregProd](data)
	if err != nil {
		return err
	}
	return c.ProducersKeeper.UnregisterProducer(ctx, auth, d.Producer)
}

func handleVoteProducer(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[VoteProducer](data)
	if err != nil {
		return err
	}
	return c.ProducersKeeper.VoteProducers(ctx, auth, d.Voter, d.Producers)
}

func handleClaimRewards(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[ClaimRewards](data)
	if err != nil {
		return err
	}
	_, err = c.ProducersKeeper.ClaimRewards(ctx, auth, d.Owner)
	return err
}

func (c *Chain) parseQuantity(ctx sdk.Context, quantity string) (int64, error) {
	params, err := c.TokenKeeper.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	return tokentypes.ParseAmount(quantity, params.Symbol)
}

func handleTransfer(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[Transfer](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.From); err != nil {
		return err
	}
	amount, err := c.parseQuantity(ctx, d.Quantity)
	if err != nil {
		return err
	}
	return c.TokenKeeper.Transfer(ctx, d.From, d.To, amount, d.Memo)
}

func handleStake(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[Stake](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Account); err != nil {
		return err
	}
	amount, err := c.parseQuantity(ctx, d.Quantity)
	if err != nil {
		return err
	}
	return c.TokenKeeper.Stake(ctx, d.Account, amount)
}

func handleUnstake(c *Chain, ctx sdk.Context, auth producerstypes.Authority, data json.RawMessage) error {
	d, err := decode[Stake](data)
	if err != nil {
		return err
	}
	if err := auth.RequireAuth(d.Account); err != nil {
		return err
	}
	amount, err := c.parseQuantity(ctx, d.Quantity)
	if err != nil {
		return err
	}
	return c.TokenKeeper.Unstake(ctx, d.Account, amount)
}
