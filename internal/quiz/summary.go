package quiz

import (
	"time"

	"github.com/samber/lo"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID string
	Mode      Mode
	Questions int
	Correct   int
	Accuracy  float64
	Duration  time.Duration

	// Promoted lists the item IDs that reached the target box this session.
	Promoted []string

	// Missed lists the item IDs answered incorrectly, in order.
	Missed []string
}

// Summary builds the session summary as of now.
func (s *Session) Summary(now time.Time) Summary {
	correct := lo.CountBy(s.results, func(r Result) bool { return r.Correct })

	var accuracy float64
	if len(s.results) > 0 {
		accuracy = float64(correct) / float64(len(s.results))
	}

	return Summary{
		SessionID: s.ID,
		Mode:      s.Mode,
		Questions: len(s.results),
		Correct:   correct,
		Accuracy:  accuracy,
		Duration:  now.Sub(s.startTime),
		Promoted: lo.FilterMap(s.results, func(r Result, _ int) (string, bool) {
			return r.ItemID, r.Promoted()
		}),
		Missed: lo.FilterMap(s.results, func(r Result, _ int) (string, bool) {
			return r.ItemID, !r.Correct
		}),
	}
}
