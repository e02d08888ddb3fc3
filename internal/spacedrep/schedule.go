package spacedrep

import "time"

// boxIntervalDays is the review interval in days for each Leitner box.
// Box 1 maps to boxIntervalDays[0].
var boxIntervalDays = [...]int{0, 1, 3, 7, 14}

// NumBoxes is the number of Leitner boxes.
const NumBoxes = len(boxIntervalDays)

// TargetBox is the box at which an item counts as mastered.
const TargetBox = NumBoxes

// DayMillis is one day in epoch milliseconds.
const DayMillis int64 = 86_400_000

// IntervalFor returns the review interval for a box. Out-of-range boxes are
// clamped to [1, NumBoxes].
func IntervalFor(box int) time.Duration {
	return time.Duration(intervalMillis(box)) * time.Millisecond
}

// IntervalDays returns the review interval for a box in whole days, clamped
// like IntervalFor.
func IntervalDays(box int) int {
	return boxIntervalDays[clampBox(box)-1]
}

func intervalMillis(box int) int64 {
	return int64(IntervalDays(box)) * DayMillis
}

func clampBox(box int) int {
	if box < 1 {
		return 1
	}
	if box > NumBoxes {
		return NumBoxes
	}
	return box
}
