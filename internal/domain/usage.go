package domain

import "time"

// DailyUsageCounter tracks per-day usage of a quota category for one user.
// Monotonically increasing within a day; "reset" happens by keying on the date.
type DailyUsageCounter struct {
	UserID   string    `json:"user_id"`
	UsageDay time.Time `json:"usage_day"` // calendar date, midnight UTC
	Category string    `json:"category"`
	Count    int       `json:"count"`
}

// Quota category constants
const (
	UsageCategoryOracle = "oracle" // AI-backed quest reflection feedback
)

// QuotaFor returns the per-day quota for a usage category
func QuotaFor(category string) int {
	switch category {
	case UsageCategoryOracle:
		return OracleDailyQuota
	default:
		return DefaultDailyQuota
	}
}
