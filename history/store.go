package history

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushchain/dpos-core/app"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
)

var _ app.BlockListener = (*Store)(nil)

// Store records irreversible blocks and the reward claims they contain.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewStore creates a new history store.
func NewStore(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// OnIrreversibleBlock indexes res. Indexing the same revision twice is a
// no-op, so replays are safe.
func (s *Store) OnIrreversibleBlock(res app.BlockResult) error {
	claims, err := claimsFromEvents(res)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		block := ProducedBlock{
			Revision:  res.Revision,
			Producer:  res.Producer,
			Timestamp: res.Timestamp,
			Events:    len(res.Events),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&block).Error; err != nil {
			return errors.Wrapf(err, "failed to store block %d", res.Revision)
		}
		if len(claims) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&claims).Error; err != nil {
			return errors.Wrapf(err, "failed to store claims of block %d", res.Revision)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, c := range claims {
		s.logger.Info().
			Int64("revision", c.Revision).
			Str("producer", c.Producer).
			Int64("block_pay", c.BlockPay).
			Int64("vote_pay", c.VotePay).
			Msg("indexed reward claim")
	}
	return nil
}

func claimsFromEvents(res app.BlockResult) ([]RewardClaim, error) {
	var claims []RewardClaim
	for _, ev := range res.Events {
		if ev.Type != producerstypes.EventTypeClaimRewards {
			continue
		}

		c := RewardClaim{Revision: res.Revision}
		for _, attr := range ev.Attributes {
			var (
				dst *int64
				err error
			)
			switch attr.Key {
			case producerstypes.AttributeKeyProducer:
				c.Producer = attr.Value
				continue
			case producerstypes.AttributeKeyClaimTime:
				dst = &c.ClaimTime
			case producerstypes.AttributeKeyMinted:
				dst = &c.Minted
			case producerstypes.AttributeKeyBlockPay:
				dst = &c.BlockPay
			case producerstypes.AttributeKeyVotePay:
				dst = &c.VotePay
			default:
				continue
			}
			if *dst, err = strconv.ParseInt(attr.Value, 10, 64); err != nil {
				return nil, errors.Wrapf(err, "bad %s attribute in block %d", attr.Key, res.Revision)
			}
		}
		if c.Producer == "" {
			return nil, errors.Errorf("claim event without producer in block %d", res.Revision)
		}
		claims = append(claims, c)
	}
	return claims, nil
}

// LastRevision returns the newest indexed revision, or 0.
func (s *Store) LastRevision() (int64, error) {
	var rev int64
	if err := s.db.Model(&ProducedBlock{}).Select("COALESCE(MAX(revision), 0)").Scan(&rev).Error; err != nil {
		return 0, errors.Wrap(err, "failed to query last revision")
	}
	return rev, nil
}

// ClaimsByProducer returns the newest claims of producer first.
func (s *Store) ClaimsByProducer(producer string, limit int) ([]RewardClaim, error) {
	var claims []RewardClaim
	query := s.db.Where("producer = ?", producer).Order("revision DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&claims).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to query claims of %s", producer)
	}
	return claims, nil
}

// ProducerTotals sums the blocks produced and the pay received by producer.
type ProducerTotals struct {
	Producer string
	Blocks   int64
	Claims   int64
	Paid     int64
}

// Totals returns the lifetime totals of producer.
func (s *Store) Totals(producer string) (ProducerTotals, error) {
	t := ProducerTotals{Producer: producer}
	if err := s.db.Model(&ProducedBlock{}).Where("producer = ?", producer).Count(&t.Blocks).Error; err != nil {
		return t, errors.Wrapf(err, "failed to count blocks of %s", producer)
	}

	var sums struct {
		Claims int64
		Paid   int64
	}
	err := s.db.Model(&RewardClaim{}).
		Select("COUNT(*) AS claims, COALESCE(SUM(block_pay + vote_pay), 0) AS paid").
		Where("producer = ?", producer).
		Scan(&sums).Error
	if err != nil {
		return t, errors.Wrapf(err, "failed to sum claims of %s", producer)
	}
	t.Claims, t.Paid = sums.Claims, sums.Paid
	return t, nil
}
