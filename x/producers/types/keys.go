package types

import (
	"cosmossdk.io/collections"
)

var (
	// ParamsKey saves the current module params.
	ParamsKey = collections.NewPrefix(0)

	// ParamsName is the name of the params collection.
	ParamsName = "params"

	// GlobalStateKey saves the singleton global chain state.
	GlobalStateKey  = collections.NewPrefix(1)
	GlobalStateName = "global_state"

	// ProducersKey stores producers by owner.
	ProducersKey  = collections.NewPrefix(2)
	ProducersName = "producers"

	// ProducersByVotesKey orders producers by descending total votes.
	ProducersByVotesKey  = collections.NewPrefix(3)
	ProducersByVotesName = "producers_by_votes"

	// ScheduleKey saves the active producer schedule.
	ScheduleKey  = collections.NewPrefix(4)
	ScheduleName = "schedule"
)

const (
	ModuleName = "producers"

	StoreKey = ModuleName
)
