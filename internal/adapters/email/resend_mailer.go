// Package email delivers transactional email through Resend.
package email

import (
	"context"
	"fmt"
	"net/url"

	"github.com/SscSPs/easyledger/internal/apperrors"
	"github.com/SscSPs/easyledger/internal/core/ports/gateways"
	"github.com/resend/resend-go/v2"
)

// ResendMailer implements gateways.Mailer.
type ResendMailer struct {
	client *resend.Client
}

var _ gateways.Mailer = (*ResendMailer)(nil)

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

// WithBaseURL points the client at another API host.
func (m *ResendMailer) WithBaseURL(raw string) (*ResendMailer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	m.client.BaseURL = u
	return m, nil
}

func (m *ResendMailer) Send(ctx context.Context, msg gateways.OutgoingEmail) (string, error) {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.FileName,
			Content:  a.Content,
		})
	}

	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: Failed to send email: %v", apperrors.ErrExternalService, err)
	}
	return sent.Id, nil
}
