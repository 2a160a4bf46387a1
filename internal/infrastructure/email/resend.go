// Package email delivers outbound mail through the Resend REST API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	notificationsapp "github.com/portal/backend/internal/application/notifications"
	"github.com/portal/backend/internal/domain/shared"
	infraconfig "github.com/portal/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ notificationsapp.EmailSender = (*ResendSender)(nil)

// ResendSender implements EmailSender against the Resend HTTP API.
type ResendSender struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewResendSender creates a sender from configuration
func NewResendSender(cfg *infraconfig.MailConfig, logger *zap.Logger) (*ResendSender, error) {
	if cfg == nil {
		return nil, errors.New("mail configuration is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("mail api key is required")
	}

	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &ResendSender{
		apiKey:     cfg.APIKey,
		from:       from,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send delivers a single email. Delivery failures come back as
// EXTERNAL_FAILURE so callers can distinguish them from local errors.
func (s *ResendSender) Send(ctx context.Context, to, subject, html string) error {
	if to == "" {
		return errors.New("recipient address is required")
	}

	payload, err := json.Marshal(sendRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("email delivery failed", zap.String("to", to), zap.Error(err))
		return shared.ErrExternalFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Warn("email delivery rejected",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return shared.ErrExternalFailure
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.ID != "" {
		s.logger.Debug("email delivered", zap.String("to", to), zap.String("message_id", out.ID))
	}
	return nil
}
