package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Quest Metrics
var (
	QuestsAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsAssigned,
			Help: HelpTextQuestsAssigned,
		},
		[]string{LabelDifficulty},
	)

	QuestsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameQuestsAccepted,
			Help: HelpTextQuestsAccepted,
		},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelDifficulty},
	)

	XPAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
	)
)

// Power-Up and Streak Metrics
var (
	PowerUpsActivated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePowerUpsActivated,
			Help: HelpTextPowerUpsActivated,
		},
		[]string{LabelPowerUp},
	)

	CooldownRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCooldownRejections,
			Help: HelpTextCooldownRejections,
		},
		[]string{LabelPowerUp},
	)

	StreaksLost = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreaksLost,
			Help: HelpTextStreaksLost,
		},
	)

	StreaksRestored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStreaksRestored,
			Help: HelpTextStreaksRestored,
		},
	)
)

// Quota and League Metrics
var (
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitRejections,
			Help: HelpTextRateLimitRejections,
		},
		[]string{LabelCategory},
	)

	LeagueWeeksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLeagueWeeksDone,
			Help: HelpTextLeagueWeeksDone,
		},
	)

	LeaguePromotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeaguePromotions,
			Help: HelpTextLeaguePromotions,
		},
		[]string{LabelTier},
	)

	LeagueDemotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeagueDemotions,
			Help: HelpTextLeagueDemotions,
		},
		[]string{LabelTier},
	)
)
