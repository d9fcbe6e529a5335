package notification

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mecanica_xpto_os/internal/config"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// mailRequest is the JSON body accepted by the mail relay.
type mailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// HTTPMailDispatcher posts messages to an HTTP mail relay.
type HTTPMailDispatcher struct {
	client *resty.Client
	from   string
	log    *zap.Logger
}

var _ interfaces.INotificationDispatcher = (*HTTPMailDispatcher)(nil)

func NewHTTPMailDispatcher(cfg config.NotificationConfig, log *zap.Logger) *HTTPMailDispatcher {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &HTTPMailDispatcher{client: client, from: cfg.From, log: log}
}

func (d *HTTPMailDispatcher) Send(ctx context.Context, recipients []string, subject, bodyHTML string) error {
	if len(recipients) == 0 {
		return nil
	}
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(mailRequest{From: d.from, To: recipients, Subject: subject, HTML: bodyHTML}).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("mail relay: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("mail relay: status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	d.log.Info("[notification][mail] sent", zap.Strings("to", recipients), zap.String("subject", subject))
	return nil
}

// LogDispatcher only logs messages; used when no relay is configured.
type LogDispatcher struct {
	log *zap.Logger
}

var _ interfaces.INotificationDispatcher = (*LogDispatcher)(nil)

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(_ context.Context, recipients []string, subject, bodyHTML string) error {
	d.log.Info("[notification][log] message",
		zap.Strings("to", recipients),
		zap.String("subject", subject),
		zap.Int("body_len", len(bodyHTML)),
	)
	return nil
}

// StaticRecipients serves the stock alert list from configuration.
type StaticRecipients []string

var _ interfaces.IRecipientSource = StaticRecipients(nil)

func (s StaticRecipients) StockAlertRecipients(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}
