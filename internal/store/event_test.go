package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerEventsAndItemAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	acc, err := repo.ItemAccuracy(ctx, "w-001")
	require.NoError(t, err)
	assert.Equal(t, ItemAccuracyRecord{}, acc)

	for i, correct := range []bool{true, false, true, true} {
		err := repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID:     "s1",
			ItemID:        "w-001",
			Category:      "Words",
			Mode:          "term_to_meaning",
			Prompt:        "abundant",
			CorrectAnswer: "plentiful",
			LearnerAnswer: "plentiful",
			Correct:       correct,
			BoxBefore:     i + 1,
			BoxAfter:      i + 2,
			TimeMs:        1500,
		})
		require.NoError(t, err)
	}
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", ItemID: "w-002", Correct: false, BoxBefore: 1, BoxAfter: 1}))

	acc, err = repo.ItemAccuracy(ctx, "w-001")
	require.NoError(t, err)
	assert.Equal(t, 4, acc.Attempts)
	assert.Equal(t, 3, acc.Correct)
	assert.InDelta(t, 0.75, acc.Accuracy(), 1e-9)
	assert.WithinDuration(t, time.Now(), acc.LastSeen, time.Minute)

	acc, err = repo.ItemAccuracy(ctx, "w-002")
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Attempts)
	assert.Zero(t, acc.Accuracy())
}

func TestQuerySessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: SessionStart, Category: "All", Mode: "term_to_meaning"}))
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:       id,
			Action:          SessionEnd,
			Category:        "All",
			Mode:            "term_to_meaning",
			QuestionsServed: 10,
			CorrectAnswers:  7,
			MasteredCount:   2,
			DurationSecs:    95,
		}))
	}
	// A session that never ended is not a summary.
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "d", Action: SessionStart}))

	records, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].SessionID)
	assert.Equal(t, "a", records[2].SessionID)
	assert.Equal(t, 10, records[0].QuestionsServed)
	assert.Equal(t, 7, records[0].CorrectAnswers)
	assert.Equal(t, 2, records[0].MasteredCount)
	assert.Equal(t, 95, records[0].DurationSecs)
	assert.Equal(t, "All", records[0].Category)

	records, err = repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "hint", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true, RequestBody: `{"q":1}`, ResponseBody: `{"a":1}`},
		{Provider: "mock", Model: "m1", Purpose: "hint", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{Provider: "mock", Model: "m2", Purpose: "hint", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "m2", list[0].Model)
	assert.Greater(t, list[0].Sequence, list[1].Sequence)

	first := list[2]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, events[0], got.LLMRequestEventData)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, LLMUsage{Key: "m1", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 200}, byModel[0])
	assert.Equal(t, "m2", byModel[1].Key)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "x", Action: SessionStart}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "hint", Success: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "x", Action: SessionEnd}))

	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, llm, 1)
	assert.Equal(t, int64(2), llm[0].Sequence)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	assert.Empty(t, after)
}
