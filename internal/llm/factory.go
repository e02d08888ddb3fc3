package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// New builds the configured provider. The chain is
// caller -> retry -> event log -> vendor adapter, so every attempt is
// recorded. It returns nil, nil when no provider is configured.
func New(ctx context.Context, cfg Config, recorder EventRecorder, log logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "":
		return nil, nil
	case ProviderMock:
		base = NewMockProvider()
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	log = log.WithField("provider", cfg.Provider)
	return WithRetry(WithEventLog(base, cfg.Provider, recorder, log), cfg.Retry, log), nil
}
