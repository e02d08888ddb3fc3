package hints

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/wordloop/wordloop/internal/llm"
	"github.com/wordloop/wordloop/internal/vocab"
)

var abundant = vocab.LearningItem{
	ID:       "w-001",
	Category: vocab.CategoryWords,
	Term:     "abundant",
	Meaning:  "existing in large quantities; plentiful",
	Example:  "The region has abundant rainfall.",
}

func validHintJSON() json.RawMessage {
	return json.RawMessage(`{
		"explanation": " Abundant means there is more than enough of something. ",
		"mnemonic": "A BUNch DANcing: so many people they fill the room.",
		"example": "Fresh fruit is abundant in summer."
	}`)
}

func waitForHint(t *testing.T, svc *Service, itemID string) *Hint {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if h, ok := svc.Consume(itemID); ok {
			return h
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for hint")
	return nil
}

func newTestService(p llm.Provider) (*Service, *test.Hook) {
	log, hook := test.NewNullLogger()
	return NewService(p, DefaultConfig(), log), hook
}

func TestService_GeneratesHint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validHintJSON()})
	svc, _ := newTestService(mock)

	svc.Request(t.Context(), Input{Item: abundant, Picked: "scarce", Accuracy: 0.25, Attempts: 4})
	h := waitForHint(t, svc, "w-001")

	if h.ItemID != "w-001" {
		t.Errorf("item = %q, want w-001", h.ItemID)
	}
	if h.Explanation != "Abundant means there is more than enough of something." {
		t.Errorf("explanation not trimmed: %q", h.Explanation)
	}
	if h.Mnemonic == "" || h.Example == "" {
		t.Errorf("incomplete hint: %+v", h)
	}

	if _, ok := svc.Consume("w-001"); ok {
		t.Error("hint should be consumed only once")
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Schema != HintSchema {
		t.Error("request should carry the hint schema")
	}
	prompt := calls[0].Messages[0].Content
	for _, want := range []string{"Term (word): abundant", "Learner picked: scarce", "25% over 4 attempts"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestService_ConsumeOtherItem(t *testing.T) {
	svc, _ := newTestService(llm.NewMockProvider(llm.MockResponse{Content: validHintJSON()}))
	svc.Request(t.Context(), Input{Item: abundant})

	deadline := time.Now().Add(5 * time.Second)
	for svc.Pending() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if _, ok := svc.Consume("w-999"); ok {
		t.Fatal("hint for another item must not be delivered")
	}
	waitForHint(t, svc, "w-001")
}

func TestService_InvalidResponseIsLogged(t *testing.T) {
	svc, hook := newTestService(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"mnemonic":"only"}`)}))
	svc.Request(t.Context(), Input{Item: abundant})

	deadline := time.Now().Add(5 * time.Second)
	for svc.Pending() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if _, ok := svc.Consume("w-001"); ok {
		t.Fatal("invalid hint must not be delivered")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %+v", entry)
	}
	var inv *llm.ErrInvalidResponse
	if err, _ := entry.Data[logrus.ErrorKey].(error); !errors.As(err, &inv) {
		t.Errorf("logged error = %v, want ErrInvalidResponse", err)
	}
}

// blockingProvider holds each call until released, so the test controls
// completion order.
type blockingProvider struct {
	mu      sync.Mutex
	release map[string]chan struct{}
}

func (b *blockingProvider) ModelID() string { return "blocking" }

func (b *blockingProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	term := strings.SplitN(strings.TrimPrefix(req.Messages[0].Content, "Term (word): "), "\n", 2)[0]
	b.mu.Lock()
	ch := b.release[term]
	b.mu.Unlock()
	select {
	case <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	body, _ := json.Marshal(map[string]string{"explanation": term, "mnemonic": term, "example": term})
	return &llm.Response{Content: body}, nil
}

func TestService_NewestWins(t *testing.T) {
	bp := &blockingProvider{release: map[string]chan struct{}{
		"abundant": make(chan struct{}),
		"brief":    make(chan struct{}),
	}}
	svc, _ := newTestService(bp)
	brief := vocab.LearningItem{ID: "w-002", Category: vocab.CategoryWords, Term: "brief", Meaning: "short"}

	svc.Request(t.Context(), Input{Item: abundant})
	svc.Request(t.Context(), Input{Item: brief})

	close(bp.release["brief"])
	h := waitForHint(t, svc, "w-002")
	if h.Mnemonic != "brief" {
		t.Errorf("mnemonic = %q, want brief", h.Mnemonic)
	}

	// The first request was cancelled and its result never surfaces.
	close(bp.release["abundant"])
	time.Sleep(20 * time.Millisecond)
	if _, ok := svc.Consume("w-001"); ok {
		t.Error("stale hint was delivered")
	}
}

func TestService_Cancel(t *testing.T) {
	bp := &blockingProvider{release: map[string]chan struct{}{"abundant": make(chan struct{})}}
	svc, _ := newTestService(bp)

	svc.Request(t.Context(), Input{Item: abundant})
	if !svc.Pending() {
		t.Fatal("request should be pending")
	}
	svc.Cancel()
	if svc.Pending() {
		t.Error("cancel should clear the pending request")
	}
	close(bp.release["abundant"])
	time.Sleep(20 * time.Millisecond)
	if _, ok := svc.Consume("w-001"); ok {
		t.Error("cancelled hint was delivered")
	}
}

func TestService_Disabled(t *testing.T) {
	svc, _ := newTestService(nil)
	if svc.Enabled() {
		t.Fatal("nil provider should disable hints")
	}
	svc.Request(context.Background(), Input{Item: abundant})
	if svc.Pending() {
		t.Error("disabled service should not start requests")
	}

	if _, err := svc.Generate(context.Background(), Input{Item: abundant}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Generate err = %v, want ErrDisabled", err)
	}

	var none *Service
	if none.Enabled() || none.Pending() {
		t.Error("nil service should be inert")
	}
	none.Cancel()
}

func TestService_GenerateSync(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validHintJSON()})
	svc, _ := newTestService(mock)

	h, err := svc.Generate(context.Background(), Input{Item: abundant})
	if err != nil {
		t.Fatal(err)
	}
	if h.Explanation != "Abundant means there is more than enough of something." {
		t.Errorf("explanation not trimmed: %q", h.Explanation)
	}
	if _, ok := svc.Consume("w-001"); ok {
		t.Error("a synchronous hint must not fill the pending slot")
	}
}

func TestUserPrompt_PhrasalVerb(t *testing.T) {
	p := userPrompt(Input{Item: vocab.LearningItem{Category: vocab.CategoryPhrasalVerbs, Term: "give up", Meaning: "stop trying"}})
	if !strings.Contains(p, "Term (phrasal verb): give up") {
		t.Errorf("prompt = %q", p)
	}
	if strings.Contains(p, "Learner accuracy") {
		t.Error("accuracy line should be omitted without attempts")
	}
}
