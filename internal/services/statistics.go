package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/swingold/backend/internal/models"
)

const statsKeyPrefix = "stats:user:"

var (
	hundred       = decimal.NewFromInt(100)
	percentageDP  = int32(2)
	percentageULP = decimal.New(1, -percentageDP)
)

// StatisticsService derives spend and earn rollups from the ledger.
type StatisticsService struct {
	db        *sql.DB
	directory *Directory
	redis     *redis.Client
	ttl       time.Duration
	log       *logrus.Logger
}

func NewStatisticsService(db *sql.DB, directory *Directory, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *StatisticsService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &StatisticsService{db: db, directory: directory, redis: redisClient, ttl: ttl, log: logger}
}

// userLedgerQuery selects every entry of a user, whatever its status.
const userLedgerQuery = `SELECT direction, amount, event_id, item_id FROM ledger_entries WHERE user_id = $1`

// ComputeUserStats scans the user's entries and sums them by direction and category.
// A debit with an event_id is event spending, one with only an item_id is item spending,
// and anything else counts as a transfer.
func (s *StatisticsService) ComputeUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	if cached := s.cached(ctx, userID); cached != nil {
		return cached, nil
	}

	if _, err := s.directory.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, userLedgerQuery, userID)
	if err != nil {
		return nil, storeError("compute user stats", err)
	}
	defer rows.Close()

	stats := &models.UserStats{
		UserID:      userID,
		TotalSpent:  decimal.Zero,
		TotalEarned: decimal.Zero,
		SpendingBreakdown: models.SpendingBreakdown{
			Events:    decimal.Zero,
			Items:     decimal.Zero,
			Transfers: decimal.Zero,
		},
	}
	for rows.Next() {
		var (
			direction models.Direction
			amount    decimal.Decimal
			eventID   sql.NullInt64
			itemID    sql.NullInt64
		)
		if err := rows.Scan(&direction, &amount, &eventID, &itemID); err != nil {
			return nil, storeError("compute user stats", err)
		}

		if direction == models.DirectionCredit {
			stats.TotalEarned = stats.TotalEarned.Add(amount)
			continue
		}
		stats.TotalSpent = stats.TotalSpent.Add(amount)
		switch {
		case eventID.Valid:
			stats.SpendingBreakdown.Events = stats.SpendingBreakdown.Events.Add(amount)
		case itemID.Valid:
			stats.SpendingBreakdown.Items = stats.SpendingBreakdown.Items.Add(amount)
		default:
			stats.SpendingBreakdown.Transfers = stats.SpendingBreakdown.Transfers.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("compute user stats", err)
	}

	stats.SpendingPercentage = spendingPercentages(stats.TotalSpent, stats.SpendingBreakdown)

	s.store(ctx, stats)
	return stats, nil
}

// Invalidate drops cached stats for the given users.
func (s *StatisticsService) Invalidate(ctx context.Context, userIDs ...int64) {
	if s == nil || s.redis == nil || len(userIDs) == 0 {
		return
	}

	seen := make(map[int64]bool, len(userIDs))
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, statsKey(id))
	}

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.log.WithError(err).WithField("keys", keys).Warn("Failed to invalidate cached stats")
	}
}

func (s *StatisticsService) cached(ctx context.Context, userID int64) *models.UserStats {
	if s.redis == nil || s.ttl <= 0 {
		return nil
	}
	raw, err := s.redis.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Debug("Stats cache read failed")
		}
		return nil
	}
	var stats models.UserStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatisticsService) store(ctx context.Context, stats *models.UserStats) {
	if s.redis == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, statsKey(stats.UserID), raw, s.ttl).Err(); err != nil {
		s.log.WithError(err).Debug("Stats cache write failed")
	}
}

func statsKey(userID int64) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, userID)
}

// spendingPercentages rounds each share to two decimals with the largest remainder
// method, so the shares add up to exactly 100 whenever anything was spent.
func spendingPercentages(total decimal.Decimal, b models.SpendingBreakdown) models.SpendingBreakdown {
	if !total.IsPositive() {
		return models.SpendingBreakdown{Events: decimal.Zero, Items: decimal.Zero, Transfers: decimal.Zero}
	}

	type share struct {
		amount    decimal.Decimal
		value     decimal.Decimal
		remainder decimal.Decimal
	}
	shares := []*share{{amount: b.Events}, {amount: b.Items}, {amount: b.Transfers}}

	assigned := decimal.Zero
	for _, sh := range shares {
		exact := sh.amount.Mul(hundred).Div(total)
		sh.value = exact.RoundFloor(percentageDP)
		sh.remainder = exact.Sub(sh.value)
		assigned = assigned.Add(sh.value)
	}

	order := []*share{shares[0], shares[1], shares[2]}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].remainder.GreaterThan(order[j].remainder)
	})

	left := hundred.Sub(assigned).Div(percentageULP).IntPart()
	for _, sh := range order {
		if left <= 0 {
			break
		}
		if !sh.amount.IsPositive() {
			continue
		}
		sh.value = sh.value.Add(percentageULP)
		left--
	}

	return models.SpendingBreakdown{Events: shares[0].value, Items: shares[1].value, Transfers: shares[2].value}
}
