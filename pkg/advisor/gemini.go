package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/busanbiff/tripbudget/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

var ErrMissingCredentials = errors.New("gemini api key is missing")

// GeminiClient calls the Generative Language API.
type GeminiClient struct {
	service *generativelanguage.Service
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewGeminiClient builds a client from configuration. Extra options are appended after the
// credential options, which lets callers point the client at another endpoint or HTTP client.
func NewGeminiClient(ctx context.Context, cfg config.Gemini, extra ...option.ClientOption) (*GeminiClient, error) {
	var opts []option.ClientOption
	switch {
	case cfg.UseDefaultCredentials:
		tokenSource, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to load google default credentials: %w", err)
		}
		opts = append(opts, option.WithTokenSource(tokenSource))
	case strings.TrimSpace(cfg.ApiKey) != "":
		opts = append(opts, option.WithAPIKey(cfg.ApiKey))
	case len(extra) == 0:
		return nil, ErrMissingCredentials
	}
	if cfg.BaseUrl != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseUrl))
	}
	opts = append(opts, extra...)

	service, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language service: %w", err)
	}

	return &GeminiClient{
		service: service,
		model:   modelName(cfg.Model),
		timeout: cfg.Timeout,
		limiter: newLimiter(cfg.RatePerMinute, cfg.Burst),
	}, nil
}

func newLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

func modelName(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit: %w", ErrGeneration, err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	request := &generativelanguage.GenerateContentRequest{
		SystemInstruction: &generativelanguage.Content{
			Parts: []*generativelanguage.Part{{Text: "You are a travel budget assistant for the Busan International Film Festival. Respond with JSON only."}},
		},
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt}},
		}},
		GenerationConfig: &generativelanguage.GenerationConfig{
			ResponseMimeType: "application/json",
		},
	}

	log.Tracef("gemini prompt: %s", prompt)
	response, err := c.service.Models.GenerateContent(c.model, request).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("%w: %w", ErrGeneration, err)
		log.Error(err)
		return "", err
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: response has no candidates", ErrGeneration)
	}
	var builder strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	if builder.Len() == 0 {
		return "", fmt.Errorf("%w: response has no text", ErrGeneration)
	}
	log.Tracef("gemini response: %s", builder.String())
	return builder.String(), nil
}
