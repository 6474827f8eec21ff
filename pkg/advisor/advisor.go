// Package advisor talks to a generative AI model and decodes its JSON answers.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrGeneration        = errors.New("ai generation failed")
	ErrMalformedResponse = errors.New("ai response is not valid json")
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExtractJSON returns the outermost JSON object found in text, dropping markdown fences and prose.
// An empty string means no object was found.
func ExtractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return ""
	}
	return trimmed[start : end+1]
}

func DecodeJSON(text string, target any) error {
	payload := ExtractJSON(text)
	if payload == "" {
		return fmt.Errorf("%w: no json object found", ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// StubGenerator returns canned responses and records the prompts it was given.
type StubGenerator struct {
	mu       sync.Mutex
	Response string
	Err      error
	Prompts  []string
}

func (s *StubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

func (s *StubGenerator) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Prompts) == 0 {
		return ""
	}
	return s.Prompts[len(s.Prompts)-1]
}

func (s *StubGenerator) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Response = ""
	s.Err = nil
	s.Prompts = nil
}

// Unavailable is used when no AI backend is configured; every call fails with ErrGeneration.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: advisor unavailable: %w", ErrGeneration, u.Reason)
}
