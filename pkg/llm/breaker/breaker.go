package breaker

import (
	"context"
	"errors"
	"time"

	"portfolio-chatbot-be/pkg/llm"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("llm circuit breaker is open")

type Config struct {
	MaxFailures          uint32
	Timeout              time.Duration
	HalfOpenMaxSuccesses uint32
	OnStateChange        func(from, to string)
}

func DefaultConfig() Config {
	return Config{
		MaxFailures:          3,
		Timeout:              30 * time.Second,
		HalfOpenMaxSuccesses: 2,
	}
}

// Provider trips after consecutive backend failures so a dead LLM fails fast.
// Calls are never retried.
type Provider struct {
	next llm.LLMProvider
	cb   *gobreaker.CircuitBreaker
}

var _ llm.LLMProvider = &Provider{}

func Wrap(next llm.LLMProvider, cfg Config) *Provider {
	settings := gobreaker.Settings{
		Name:        "LLMCircuitBreaker",
		MaxRequests: cfg.HalfOpenMaxSuccesses,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// A cancelled request says nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			cfg.OnStateChange(from.String(), to.String())
		}
	}

	return &Provider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *Provider) execute(fn func() (string, error)) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrCircuitOpen
		}
		return "", err
	}
	return out.(string), nil
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.execute(func() (string, error) {
		return p.next.Chat(ctx, history, opts...)
	})
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.execute(func() (string, error) {
		return p.next.Generate(ctx, prompt, opts...)
	})
}

// State reports the breaker state, e.g. "closed" or "open".
func (p *Provider) State() string {
	return p.cb.State().String()
}
