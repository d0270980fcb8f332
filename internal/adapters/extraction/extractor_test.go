package extraction

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	})
	return string(body)
}

func newTestExtractor(t *testing.T, handler http.HandlerFunc) *OpenAIExtractor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ex, err := NewOpenAIExtractor(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return ex
}

func TestExtractFromImage_SendsVisionRequest(t *testing.T) {
	var captured map[string]any
	ex := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatReply("```json\n{\"supplierName\":\"Elvia AS\",\"invoiceNumber\":\"123\",\"date\":\"2024-01-15\",\"amount\":1250.00,\"vatAmount\":250.00,\"description\":\"Nettleie\",\"confidence\":\"high\"}\n```"))
	})

	data, err := ex.ExtractFromImage(context.Background(), "image/png", []byte{1, 2, 3})

	require.NoError(t, err)
	require.NotNil(t, data.SupplierName)
	assert.Equal(t, "Elvia AS", *data.SupplierName)
	assert.True(t, data.Amount.Equal(decimal.RequireFromString("1250")))
	require.NotNil(t, data.VATAmount)
	assert.True(t, data.VATAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "2024-01-15", data.Date)
	assert.Equal(t, domain.ConfidenceHigh, data.Confidence)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.EqualValues(t, 500, captured["max_tokens"])
	messages := captured["messages"].([]any)
	parts := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	assert.True(t, strings.HasPrefix(parts[0].(map[string]any)["text"].(string), "Analyser dette fakturabildetet"))
	imageURL := parts[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	assert.Equal(t, "data:image/png;base64,AQID", imageURL)
}

func TestExtractFromText_NullsAndDefaults(t *testing.T) {
	ex := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `Fakturatekst:\nHusleie mars`)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, chatReply(`{"supplierName":null,"invoiceNumber":"","date":null,"amount":9000,"vatAmount":null,"description":"Husleie"}`))
	})

	data, err := ex.ExtractFromText(context.Background(), "Husleie mars")

	require.NoError(t, err)
	assert.Nil(t, data.SupplierName)
	assert.Nil(t, data.InvoiceNumber)
	assert.Nil(t, data.VATAmount)
	assert.Equal(t, "", data.Date)
	assert.Equal(t, domain.ConfidenceLow, data.Confidence)
}

func TestExtract_RejectsMalformedReplies(t *testing.T) {
	replies := []string{
		"Beklager, jeg kan ikke lese dette bildet.",
		`{"amount":"mye","confidence":"high"}`,
		`{"amount":100,"date":"15.01.2024"}`,
		`{"description":"mangler beløp"}`,
		"",
	}
	for _, reply := range replies {
		ex := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, chatReply(reply))
		})
		_, err := ex.ExtractFromText(context.Background(), "x")
		assert.ErrorIs(t, err, apperrors.ErrExternalService, reply)
	}
}

func TestExtract_UpstreamError(t *testing.T) {
	ex := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`)
	})

	_, err := ex.ExtractFromImage(context.Background(), "image/jpeg", []byte("x"))

	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1} "))
}

func TestNewOpenAIExtractor_RequiresKey(t *testing.T) {
	_, err := NewOpenAIExtractor(Config{})
	assert.Error(t, err)
}
