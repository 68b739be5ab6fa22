package notify

import (
	"fmt"

	"fwd/internal/utils"
)

// Outcome is the only thing the outbound mailer is told after an intake
// batch settles: what the trip is called now and how much actually changed.
// The mailer formats its own messages.
type Outcome struct {
	UserID            int64
	TripName          string
	SegmentsAdded     int
	DuplicatesSkipped int
}

// Notifier is the boundary to the outbound-email collaborator.
type Notifier interface {
	TravelAdded(o Outcome)
	ParsingFailed(userID int64)
}

// LogNotifier is the default sink when no mailer is wired up.
type LogNotifier struct{}

func (LogNotifier) TravelAdded(o Outcome) {
	utils.LogEvent("", "notify", "travel_added",
		fmt.Sprintf("user_id=%d trip=%q added=%d duplicates=%d",
			o.UserID, o.TripName, o.SegmentsAdded, o.DuplicatesSkipped))
}

func (LogNotifier) ParsingFailed(userID int64) {
	utils.LogEvent("", "notify", "parsing_failed", fmt.Sprintf("user_id=%d", userID))
}
