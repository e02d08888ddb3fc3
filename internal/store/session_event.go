package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/samber/lo"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insertEvent(ctx, tableSessionEvents,
		[]string{"session_id", "action", "category", "mode", "questions_served", "correct_answers", "mastered_count", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Category, data.Mode, data.QuestionsServed, data.CorrectAnswers, data.MasteredCount, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insertEvent(ctx, tableAnswerEvents,
		[]string{"session_id", "item_id", "category", "mode", "prompt", "correct_answer", "learner_answer", "correct", "box_before", "box_after", "time_ms"},
		[]any{data.SessionID, data.ItemID, data.Category, data.Mode, data.Prompt, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.BoxBefore, data.BoxAfter, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

type sessionRow struct {
	SessionID       string `sql:"session_id"`
	TimestampMs     int64  `sql:"timestamp_ms"`
	Category        string `sql:"category"`
	Mode            string `sql:"mode"`
	QuestionsServed int    `sql:"questions_served"`
	CorrectAnswers  int    `sql:"correct_answers"`
	MasteredCount   int    `sql:"mastered_count"`
	DurationSecs    int    `sql:"duration_secs"`
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("session_id", "timestamp_ms", "category", "mode", "questions_served", "correct_answers", "mastered_count", "duration_secs").
		From(entsql.Table(tableSessionEvents)).
		Where(entsql.EQ("action", SessionEnd)).
		OrderBy(entsql.Desc("sequence"))
	q, args := applyQueryOpts(sel, opts).Query()

	var rows []sessionRow
	if err := queryRows(ctx, r.drv, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}

	return lo.Map(rows, func(row sessionRow, _ int) SessionSummaryRecord {
		return SessionSummaryRecord{
			SessionID:       row.SessionID,
			Timestamp:       time.UnixMilli(row.TimestampMs),
			Category:        row.Category,
			Mode:            row.Mode,
			QuestionsServed: row.QuestionsServed,
			CorrectAnswers:  row.CorrectAnswers,
			MasteredCount:   row.MasteredCount,
			DurationSecs:    row.DurationSecs,
		}
	}), nil
}

type accuracyRow struct {
	Attempts int   `sql:"attempts"`
	Correct  int   `sql:"correct"`
	LastSeen int64 `sql:"last_seen"`
}

func (r *eventRepo) ItemAccuracy(ctx context.Context, itemID string) (ItemAccuracyRecord, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.As(entsql.Count("*"), "attempts"),
			entsql.As(entsql.Sum("correct"), "correct"),
			entsql.As(entsql.Max("timestamp_ms"), "last_seen"),
		).
		From(entsql.Table(tableAnswerEvents)).
		Where(entsql.EQ("item_id", itemID)).
		Query()

	var rows []accuracyRow
	if err := queryRows(ctx, r.drv, q, args, &rows); err != nil {
		return ItemAccuracyRecord{}, fmt.Errorf("query item accuracy: %w", err)
	}
	if len(rows) == 0 || rows[0].Attempts == 0 {
		return ItemAccuracyRecord{}, nil
	}
	return ItemAccuracyRecord{
		Attempts: rows[0].Attempts,
		Correct:  rows[0].Correct,
		LastSeen: time.UnixMilli(rows[0].LastSeen),
	}, nil
}
