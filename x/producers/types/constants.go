package types

const (
	// SystemAccount is the privileged identity that runs block bookkeeping,
	// receives minted tokens and pays producers.
	SystemAccount = "system"

	// MinActivatedStake is 150,000,000.0000 tokens. Below it the reward system
	// stays dormant.
	MinActivatedStake int64 = 150_000_000_0000

	// ContinuousRate is the annual inflation rate applied continuously.
	ContinuousRate = 0.04879

	UsecondsPerDay int64 = 24 * 3600 * 1_000_000
	// UsecondsPerYear uses a 52 week year.
	UsecondsPerYear int64 = 52 * 7 * UsecondsPerDay

	// MinVotePay is the smallest vote pay a claim pays out, 1.0000 tokens.
	MinVotePay int64 = 1_0000

	// MinDailyAmount is the per-producer cutoff of the vote pay projection.
	MinDailyAmount int64 = 100 * 10_000

	// ScheduleUpdateSlots is the minimum number of half second slots between
	// two producer schedule elections.
	ScheduleUpdateSlots uint32 = 120

	IssueMemo       = "issue tokens for producer pay and savings"
	ProducerPayMemo = "producer pay"
)
