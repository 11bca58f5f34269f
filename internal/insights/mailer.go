package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Email is one outgoing message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers emails.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// HTTPMailer posts emails as JSON to a Resend-style API.
type HTTPMailer struct {
	endpoint   string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewHTTPMailer creates an HTTPMailer.
func NewHTTPMailer(endpoint, apiKey, from string, timeout time.Duration) *HTTPMailer {
	return &HTTPMailer{
		endpoint:   endpoint,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send implements Mailer. Any non-2xx response is an error.
func (m *HTTPMailer) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return nil
}

// LogMailer logs emails instead of sending them.
type LogMailer struct {
	Logger *slog.Logger
}

// Send implements Mailer.
func (m LogMailer) Send(ctx context.Context, email Email) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Insight email", "to", email.To, "subject", email.Subject, "bytes", len(email.HTML))
	return nil
}
