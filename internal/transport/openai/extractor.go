package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/domain"
	"github.com/gtmquest/agencymatch/internal/metrics"
	"github.com/gtmquest/agencymatch/internal/usecase/brief"
)

const systemPrompt = `You read project briefs sent to a directory of B2B go-to-market agencies.
Reply with one JSON object and nothing else:
{"industry": string, "category": string, "stage": string, "specializations": [string], "regions": [string], "budget": number|null}
- category is one of "b2b_saas", "dtc", "enterprise", "marketplace", "consumer" or "".
- stage is one of "idea", "pre_launch", "early", "growth", "scale" or "".
- specializations use short marketing terms such as "demand gen", "abm", "content", "plg", "brand", "seo", "paid media".
- regions use short names such as "US", "UK", "Europe", "APAC", "Global".
- budget is the monthly budget in US dollars, or null when the brief gives none.`

// Extractor reads brief requirements with an OpenAI-compatible chat completion.
type Extractor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewExtractor creates an OpenAI-compatible brief extractor.
func NewExtractor(cfg *Config) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// Compile-time check: Extractor implements brief.Extractor.
var _ brief.Extractor = (*Extractor)(nil)

// Name identifies the extractor in metrics and logs.
func (e *Extractor) Name() string { return "openai" }

// extraction is the JSON object the model is asked to return.
type extraction struct {
	Industry        string   `json:"industry"`
	Category        string   `json:"category"`
	Stage           string   `json:"stage"`
	Specializations []string `json:"specializations"`
	Regions         []string `json:"regions"`
	Budget          *float64 `json:"budget"`
}

// Extract implements brief.Extractor. Provider and decoding failures wrap
// domain.ErrBriefProviderError so callers can fall back.
func (e *Extractor) Extract(ctx context.Context, message string) (brief.Requirements, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	}

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, req)
	metrics.BriefRequestDuration.WithLabelValues(e.model).Observe(time.Since(start).Seconds())

	if err != nil {
		return brief.Requirements{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return brief.Requirements{}, fmt.Errorf("empty completion response: %w", domain.ErrBriefProviderError)
	}

	var out extraction
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		e.logger.Warn("Undecodable brief extraction", zap.String("model", e.model), zap.Error(err))
		return brief.Requirements{}, fmt.Errorf("decode completion: %w: %w", domain.ErrBriefProviderError, err)
	}

	return out.requirements(), nil
}

func (x extraction) requirements() brief.Requirements {
	req := brief.Requirements{
		Industry:        strings.ToLower(strings.TrimSpace(x.Industry)),
		Specializations: nonEmpty(x.Specializations),
		Regions:         nonEmpty(x.Regions),
	}
	switch c := strings.ToLower(strings.TrimSpace(x.Category)); c {
	case brief.CategoryB2BSaaS, brief.CategoryDTC, brief.CategoryEnterprise,
		brief.CategoryMarketplace, brief.CategoryConsumer:
		req.Category = c
	}
	if st := strings.ToLower(strings.TrimSpace(x.Stage)); brief.ValidStage(st) {
		req.Stage = st
	}
	// Budgets that do not fit in int64 are dropped rather than wrapped.
	if x.Budget != nil && *x.Budget > 0 && *x.Budget < math.MaxInt64 {
		b := int64(*x.Budget)
		req.Budget = &b
	}
	return req
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrBriefProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrBriefProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("chat request failed: %w: %w", wrap, err)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
