// Package extraction reads supplier invoices and receipts with an OpenAI vision model.
package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
)

const (
	DefaultModel = "gpt-4o"
	maxTokens    = 500
	temperature  = 0.1
)

// Config configures the OpenAI extractor.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // optional, e.g. for proxies or tests
	HTTPClient *http.Client
}

// OpenAIExtractor implements gateways.DocumentExtractor.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
	schema *gojsonschema.Schema
}

var _ gateways.DocumentExtractor = (*OpenAIExtractor)(nil)

func NewOpenAIExtractor(cfg Config) (*OpenAIExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile extraction schema: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIExtractor{client: openai.NewClientWithConfig(clientCfg), model: model, schema: schema}, nil
}

func (e *OpenAIExtractor) ExtractFromImage(ctx context.Context, contentType string, data []byte) (*domain.ExtractedInvoiceData, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	msg := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: imagePrompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURI, Detail: openai.ImageURLDetailAuto}},
		},
	}
	return e.complete(ctx, msg)
}

func (e *OpenAIExtractor) ExtractFromText(ctx context.Context, text string) (*domain.ExtractedInvoiceData, error) {
	msg := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: textPrompt + text,
	}
	return e.complete(ctx, msg)
}

func (e *OpenAIExtractor) complete(ctx context.Context, msg openai.ChatCompletionMessage) (*domain.ExtractedInvoiceData, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Messages:    []openai.ChatCompletionMessage{msg},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		logger.Error("OpenAI request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: OpenAI request failed: %v", apperrors.ErrExternalService, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("%w: No response from OpenAI", apperrors.ErrExternalService)
	}
	logger.Debug("OpenAI extraction finished", slog.String("model", resp.Model), slog.Int("total_tokens", resp.Usage.TotalTokens))

	data, err := e.parse(resp.Choices[0].Message.Content)
	if err != nil {
		logger.Warn("Unparseable extraction reply", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: Failed to parse invoice data from OpenAI response", apperrors.ErrExternalService)
	}
	return data, nil
}

// stripFences removes a surrounding markdown code fence, with or without a language tag.
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (e *OpenAIExtractor) parse(content string) (*domain.ExtractedInvoiceData, error) {
	raw := []byte(stripFences(content))

	res, err := e.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("reply is not JSON: %w", err)
	}
	if !res.Valid() {
		details := make([]string, 0, len(res.Errors()))
		for _, d := range res.Errors() {
			details = append(details, d.String())
		}
		return nil, fmt.Errorf("reply does not match schema: %s", strings.Join(details, "; "))
	}

	var data domain.ExtractedInvoiceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data.Confidence == "" {
		data.Confidence = domain.ConfidenceLow
	}
	if data.SupplierName != nil && strings.TrimSpace(*data.SupplierName) == "" {
		data.SupplierName = nil
	}
	if data.InvoiceNumber != nil && strings.TrimSpace(*data.InvoiceNumber) == "" {
		data.InvoiceNumber = nil
	}
	return &data, nil
}
