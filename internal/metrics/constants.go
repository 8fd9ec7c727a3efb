package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameQuestsAssigned      = "quests_assigned_total"
	MetricNameQuestsAccepted      = "quests_accepted_total"
	MetricNameQuestsCompleted     = "quests_completed_total"
	MetricNameXPAwarded           = "xp_awarded_total"
	MetricNamePowerUpsActivated   = "powerups_activated_total"
	MetricNameCooldownRejections  = "powerup_cooldown_rejections_total"
	MetricNameStreaksLost         = "streaks_lost_total"
	MetricNameStreaksRestored     = "streaks_restored_total"
	MetricNameRateLimitRejections = "rate_limit_rejections_total"
	MetricNameLeagueWeeksDone     = "league_weeks_processed_total"
	MetricNameLeaguePromotions    = "league_promotions_total"
	MetricNameLeagueDemotions     = "league_demotions_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextQuestsAssigned      = "Total number of daily quests assigned"
	HelpTextQuestsAccepted      = "Total number of quest assignments accepted"
	HelpTextQuestsCompleted     = "Total number of quest assignments completed"
	HelpTextXPAwarded           = "Total XP awarded from quest completions"
	HelpTextPowerUpsActivated   = "Total number of power-up activations"
	HelpTextCooldownRejections  = "Total number of activations rejected by cooldown"
	HelpTextStreaksLost         = "Total number of streak losses captured"
	HelpTextStreaksRestored     = "Total number of streaks restored"
	HelpTextRateLimitRejections = "Total number of actions rejected by the daily quota"
	HelpTextLeagueWeeksDone     = "Total number of league weeks processed"
	HelpTextLeaguePromotions    = "Total number of league promotions applied"
	HelpTextLeagueDemotions     = "Total number of league demotions applied"
)

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelDifficulty = "difficulty"
	LabelPowerUp    = "powerup"
	LabelCategory   = "category"
	LabelTier       = "tier"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
