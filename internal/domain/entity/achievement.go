package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Achievement criterion types.
const (
	CriterionFirstSale       = "first_sale"
	CriterionCountThreshold  = "count_threshold"
	CriterionAmountThreshold = "amount_threshold"
	CriterionTimeWindow      = "time_window"
	CriterionVariety         = "variety_threshold"
)

// AchievementCriteria is the typed unlock predicate. Threshold and
// WindowDays are interpreted per Type:
//   - first_sale:        met when at least one sale exists
//   - count_threshold:   total sales count >= Threshold
//   - amount_threshold:  sum of effective amounts >= Amount (within
//     WindowDays when set, all-time otherwise)
//   - time_window:       sales count within WindowDays >= Threshold
//   - variety_threshold: distinct products sold >= Threshold
type AchievementCriteria struct {
	Type       string          `json:"type"`
	Threshold  int             `json:"threshold,omitempty"`
	Amount     decimal.Decimal `json:"amount,omitempty"`
	WindowDays int             `json:"window_days,omitempty"`
}

// AchievementDefinition describes one unlockable achievement. Code is unique.
type AchievementDefinition struct {
	Code        string
	Title       string
	Description string
	Icon        string
	Criteria    AchievementCriteria
}

// AchievementUnlock records that a user met an achievement's criteria.
// At most one row exists per (user, code); the evaluator checks existing
// unlocks before re-testing and the store enforces a unique constraint.
type AchievementUnlock struct {
	ID         string
	UserID     string
	Code       string
	UnlockedAt time.Time
	Progress   json.RawMessage // aggregate snapshot at unlock time
}
