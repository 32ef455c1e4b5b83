package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

const sendMailPath = "/v1/messages"

// mailMessage is the JSON body accepted by the transactional mail API.
type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type httpMailNotifier struct {
	client *utils.HTTPClient
	sender string

	logger *logger.Logger
}

// NewHTTPMailNotifier constructs a [Notifier] posting messages to the mail API
// at cfg.BaseURL. The API key, when set, is sent as a bearer token.
//
// Returns an error if cfg.BaseURL cannot be parsed as a valid URL.
func NewHTTPMailNotifier(cfg config.Mail, logger *logger.Logger) (Notifier, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mail api address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &httpMailNotifier{client: client, sender: cfg.Sender, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Notify implements [Notifier]. It POSTs the message to /v1/messages.
func (n *httpMailNotifier) Notify(ctx context.Context, notification models.Notification) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(mailMessage{
			From:    n.sender,
			To:      notification.To,
			Subject: notification.Subject,
			HTML:    notification.HTML,
		}).
		Post(sendMailPath)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "httpMailNotifier.Notify").
		Str("kind", string(notification.Kind)).
		Msg("notification sent")

	return nil
}

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier constructs a [Notifier] that only logs what would be sent.
func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(ctx context.Context, notification models.Notification) error {
	n.logger.Info().
		Str("func", "logNotifier.Notify").
		Str("kind", string(notification.Kind)).
		Str("to", notification.To).
		Str("subject", notification.Subject).
		Msg("notification not sent: no mail api configured")
	return nil
}

// NewNotifier picks the HTTP mail notifier when a mail API is configured and
// the log notifier otherwise.
func NewNotifier(cfg config.Mail, logger *logger.Logger) (Notifier, error) {
	if cfg.BaseURL == "" {
		return NewLogNotifier(logger), nil
	}
	return NewHTTPMailNotifier(cfg, logger)
}
