package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wordloop/wordloop/internal/llm"
	"github.com/wordloop/wordloop/internal/vocab"
)

// ErrDisabled is returned by Generate when no provider is configured.
var ErrDisabled = errors.New("hints are disabled")

// Hint is a memory aid for one missed item.
type Hint struct {
	ItemID      string `json:"-"`
	Explanation string `json:"explanation"`
	Mnemonic    string `json:"mnemonic"`
	Example     string `json:"example"`
}

// Input describes the miss a hint is requested for.
type Input struct {
	Item vocab.LearningItem
	// Picked is the option the learner chose.
	Picked string
	// Accuracy is the learner's lifetime accuracy on the item, 0..1.
	Accuracy float64
	Attempts int
}

// Service generates hints in the background. At most one request is in
// flight: a new request cancels the previous one and only the newest
// result is ever delivered.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      logrus.FieldLogger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	ready  *Hint
}

// NewService returns a Service. A nil provider or cfg.Enabled false
// yields a disabled service whose Request is a no-op.
func NewService(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Service {
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Enabled reports whether hints can be generated.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil && s.cfg.Enabled
}

// Request starts generating a hint for in. Any pending hint is dropped.
func (s *Service) Request(ctx context.Context, in Input) {
	if !s.Enabled() {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.ready = nil
	var cancel context.CancelFunc
	if s.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		hint, err := s.Generate(ctx, in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.cancel = nil
		if err != nil {
			s.log.WithError(err).WithField("item", in.Item.ID).Warn("hint generation failed")
			return
		}
		s.ready = hint
	}()
}

// Consume returns the ready hint for itemID and clears it. A hint for a
// different item stays pending until it is replaced.
func (s *Service) Consume(itemID string) (*Hint, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready == nil || s.ready.ItemID != itemID {
		return nil, false
	}
	h := s.ready
	s.ready = nil
	return h, true
}

// Pending reports whether a request is still running.
func (s *Service) Pending() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Cancel stops the in-flight request and drops any ready hint.
func (s *Service) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.ready = nil
}

// Generate produces a hint synchronously, bypassing the pending slot.
func (s *Service) Generate(ctx context.Context, in Input) (*Hint, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	req := llm.UserPrompt(systemPrompt, userPrompt(in))
	req.Schema = HintSchema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "hint"), req)
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var h Hint
	if err := json.Unmarshal(resp.Content, &h); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}
	h.ItemID = in.Item.ID
	h.Explanation = strings.TrimSpace(h.Explanation)
	h.Mnemonic = strings.TrimSpace(h.Mnemonic)
	h.Example = strings.TrimSpace(h.Example)
	return &h, nil
}
