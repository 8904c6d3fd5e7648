package types

import (
	"cosmossdk.io/collections"
)

var (
	// ParamsKey saves the current module params.
	ParamsKey = collections.NewPrefix(0)

	// ParamsName is the name of the params collection.
	ParamsName = "params"

	// SupplyKey saves the outstanding token supply.
	SupplyKey = collections.NewPrefix(1)

	// SupplyName is the name of the supply collection.
	SupplyName = "supply"
)

const (
	ModuleName = "token"

	StoreKey = ModuleName
)
