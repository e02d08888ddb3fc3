package drill

import "time"

// hintTickMsg polls the hint service while a hint is pending.
type hintTickMsg time.Time

// hintPollInterval is how often a pending hint is checked.
const hintPollInterval = 250 * time.Millisecond
