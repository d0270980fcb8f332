package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T, handler http.HandlerFunc) *ResendMailer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	m, err := NewResendMailer("re_test").WithBaseURL(srv.URL + "/")
	require.NoError(t, err)
	return m
}

func TestSend_PostsEmailWithAttachment(t *testing.T) {
	var body map[string]any
	m := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg_123"}`)
	})

	id, err := m.Send(context.Background(), gateways.OutgoingEmail{
		From:        "Acme AS <faktura@acme.no>",
		To:          "post@kunde.no",
		Subject:     "Faktura FAK-1000 fra Acme AS",
		HTML:        "<p>Hei</p>",
		Attachments: []gateways.EmailAttachment{{FileName: "faktura-FAK-1000.pdf", Content: []byte("%PDF-1.3")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
	assert.Equal(t, "Acme AS <faktura@acme.no>", body["from"])
	assert.Equal(t, []any{"post@kunde.no"}, body["to"])
	assert.Equal(t, "Faktura FAK-1000 fra Acme AS", body["subject"])
	attachments := body["attachments"].([]any)
	require.Len(t, attachments, 1)
	assert.Equal(t, "faktura-FAK-1000.pdf", attachments[0].(map[string]any)["filename"])
}

func TestSend_ProviderError(t *testing.T) {
	m := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`)
	})

	_, err := m.Send(context.Background(), gateways.OutgoingEmail{From: "bad", To: "post@kunde.no"})

	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
