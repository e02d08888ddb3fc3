package store

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/wordloop/wordloop/internal/spacedrep"
)

// SnapshotVersion is the current SnapshotData layout.
const SnapshotVersion = 1

// ErrCorruptSnapshot is returned when a stored snapshot cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version  int                   `json:"version"`
	Progress spacedrep.ProgressMap `json:"progress"`
	Mode     string                `json:"mode,omitempty"`
	Category string                `json:"category,omitempty"`

	// Recovered lists the ids whose stored entry could not be decoded and
	// was replaced by the default state. Not persisted.
	Recovered []string `json:"-"`
}

// UnmarshalJSON decodes each progress entry on its own so one damaged entry
// costs only that item its progress.
func (d *SnapshotData) UnmarshalJSON(b []byte) error {
	var raw struct {
		Version  int                        `json:"version"`
		Progress map[string]json.RawMessage `json:"progress"`
		Mode     string                     `json:"mode"`
		Category string                     `json:"category"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	progress, recovered := decodeProgress(raw.Progress)
	*d = SnapshotData{
		Version:   raw.Version,
		Progress:  progress,
		Mode:      raw.Mode,
		Category:  raw.Category,
		Recovered: recovered,
	}
	return nil
}

// decodeProgress decodes id-to-state entries. An entry that does not decode
// gets spacedrep.DefaultState(id) and its id is returned in recovered,
// sorted.
func decodeProgress(raw map[string]json.RawMessage) (progress spacedrep.ProgressMap, recovered []string) {
	if raw == nil {
		return nil, nil
	}
	progress = make(spacedrep.ProgressMap, len(raw))
	for id, body := range raw {
		var ps spacedrep.ProgressState
		if err := json.Unmarshal(body, &ps); err != nil {
			progress[id] = spacedrep.DefaultState(id)
			recovered = append(recovered, id)
			continue
		}
		progress[id] = ps
	}
	slices.Sort(recovered)
	return progress, recovered
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	// A snapshot whose data cannot be decoded yields ErrCorruptSnapshot.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures a single graded answer.
type AnswerEventData struct {
	SessionID     string
	ItemID        string
	Category      string
	Mode          string
	Prompt        string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	BoxBefore     int
	BoxAfter      int
	TimeMs        int64
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	Category        string
	Mode            string
	QuestionsServed int
	CorrectAnswers  int
	MasteredCount   int
	DurationSecs    int
}

// Session lifecycle actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionSummaryRecord is a completed session for the history view.
type SessionSummaryRecord struct {
	SessionID       string
	Timestamp       time.Time
	Category        string
	Mode            string
	QuestionsServed int
	CorrectAnswers  int
	MasteredCount   int
	DurationSecs    int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one model, named by Key.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ItemAccuracyRecord is the answer history for one item.
type ItemAccuracyRecord struct {
	Attempts int
	Correct  int
	LastSeen time.Time
}

// Accuracy is the fraction of correct answers, 0 with no attempts.
func (r ItemAccuracyRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// ItemAccuracy returns the answer history for one item.
	ItemAccuracy(ctx context.Context, itemID string) (ItemAccuracyRecord, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)


	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
