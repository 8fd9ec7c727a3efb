package worker

// Log messages for the league week worker
const (
	LogMsgLeagueWeekScheduled = "League week processing scheduled"
	LogMsgLeagueWeekFailed    = "League week processing failed"
	LogMsgLeagueWeekCompleted = "League week processing completed"
)

// Log messages for the streak sweep worker
const (
	LogMsgStreakSweepScheduled = "Streak sweep scheduled"
	LogMsgStreakSweepFailed    = "Streak sweep failed"
	LogMsgStreakSweepCompleted = "Streak sweep completed"
)
