package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	"github.com/aleister1102/jsonmonitor/internal/common/httpclient"
	"github.com/aleister1102/jsonmonitor/internal/config"
	jsonlog "github.com/aleister1102/jsonmonitor/internal/logger"
	"github.com/aleister1102/jsonmonitor/internal/models"
	"github.com/aleister1102/jsonmonitor/internal/notifier/telegram"
	"github.com/rs/zerolog"
)

const maxResponseBodySize = 1 << 20

// UserAgent identifies jsonmonitor to the Bot API.
const UserAgent = "jsonmonitor/" + config.Version

var _ Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier posts messages through the Telegram Bot API sendMessage
// method. Sends are best effort: one attempt, no retries.
type TelegramNotifier struct {
	logger        zerolog.Logger
	httpClient    *http.Client
	apiBaseURL    string
	parseMode     string
	noPreview     bool
	timeout       time.Duration
	previewLength int

	mu       sync.RWMutex
	botToken string
	chatID   string

	inflight sync.WaitGroup
}

// NewTelegramNotifier creates a TelegramNotifier. A nil httpClient is built
// from cfg's timeout and proxy settings.
func NewTelegramNotifier(cfg config.NotificationConfig, httpClient *http.Client, logger zerolog.Logger) (*TelegramNotifier, error) {
	moduleLogger := jsonlog.Component(logger, "TelegramNotifier")

	if httpClient == nil {
		client, err := httpclient.NewHTTPClientBuilder(moduleLogger).
			WithTimeout(cfg.HTTPTimeout()).
			WithProxy(cfg.Proxy).
			WithUserAgent(UserAgent).
			WithCustomHeader("Accept", "application/json").
			Build()
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to create telegram http client")
		}
		httpClient = client
	}

	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = config.DefaultTelegramAPIBaseURL
	}

	tn := &TelegramNotifier{
		logger:        moduleLogger,
		httpClient:    httpClient,
		apiBaseURL:    apiBaseURL,
		parseMode:     cfg.ParseMode,
		noPreview:     cfg.DisableLinkPreview,
		timeout:       cfg.HTTPTimeout(),
		previewLength: cfg.PreviewLength,
		botToken:      cfg.BotToken,
		chatID:        cfg.ChatID,
	}

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		moduleLogger.Warn().Strs("missing", missing).Msg("Telegram credentials not configured, notifications will be skipped")
	}

	return tn, nil
}

// Notify sends message in the background and returns a handle for the result.
func (tn *TelegramNotifier) Notify(ctx context.Context, message string) <-chan models.NotificationResult {
	token, chatID := tn.credentials()

	creds := config.NotificationConfig{BotToken: token, ChatID: chatID}
	if missing := creds.MissingCredentials(); len(missing) > 0 {
		err := errorwrapper.NewCredentialError(missing...)
		tn.logger.Warn().Err(err).Msg("Skipping notification")
		return resolved(models.FailedNotification(err))
	}

	builder := telegram.NewSendMessageRequestBuilder().
		WithChatID(chatID).
		WithText(message).
		WithParseMode(tn.parseMode)
	if tn.noPreview {
		builder = builder.WithoutWebPagePreview()
	}
	payload := builder.Build()

	result := make(chan models.NotificationResult, 1)
	tn.inflight.Add(1)
	go func() {
		defer tn.inflight.Done()
		defer close(result)

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tn.timeout)
		defer cancel()

		result <- tn.send(sendCtx, token, payload)
	}()

	return result
}

// Wait blocks until every in-flight send has finished or ctx is done.
func (tn *TelegramNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		tn.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateCredentials swaps the bot token and destination for future sends.
func (tn *TelegramNotifier) UpdateCredentials(botToken, chatID string) {
	tn.mu.Lock()
	defer tn.mu.Unlock()
	tn.botToken = botToken
	tn.chatID = chatID
}

func (tn *TelegramNotifier) credentials() (string, string) {
	tn.mu.RLock()
	defer tn.mu.RUnlock()
	return tn.botToken, tn.chatID
}

func (tn *TelegramNotifier) send(ctx context.Context, token string, payload telegram.SendMessageRequest) models.NotificationResult {
	body, err := json.Marshal(payload)
	if err != nil {
		tn.logger.Error().Err(err).Msg("Failed to marshal Telegram payload")
		return models.FailedNotification(errorwrapper.WrapError(err, "failed to marshal telegram payload"))
	}

	endpoint := telegram.MethodURL(tn.apiBaseURL, token, telegram.SendMessagePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return tn.fail(errorwrapper.NewNotificationError(telegram.SendMessagePath, 0, "", redactURLError(err)))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tn.httpClient.Do(req)
	if err != nil {
		return tn.fail(errorwrapper.NewNotificationError(telegram.SendMessagePath, 0, "", redactURLError(err)))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return tn.fail(errorwrapper.NewNotificationError(telegram.SendMessagePath, resp.StatusCode, "", err))
	}

	var apiResp telegram.APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return tn.fail(errorwrapper.NewNotificationError(telegram.SendMessagePath, resp.StatusCode, "",
			fmt.Errorf("undecodable response (HTTP %d): %w", resp.StatusCode, err)))
	}

	if !apiResp.OK {
		description := apiResp.Description
		if description == "" {
			description = http.StatusText(resp.StatusCode)
		}
		rejected := errorwrapper.NewNotificationError(telegram.SendMessagePath, resp.StatusCode, description, nil)
		rejected.ErrorCode = apiResp.ErrorCode
		return tn.fail(rejected)
	}

	result := models.NotificationResult{Success: true}
	if apiResp.Result != nil {
		result.MessageID = apiResp.Result.MessageID
	}

	tn.logger.Info().
		Int64("message_id", result.MessageID).
		Str("preview", Preview(payload.Text, tn.previewLength)).
		Msg("Message sent")
	return result
}

func (tn *TelegramNotifier) fail(err *errorwrapper.NotificationError) models.NotificationResult {
	event := tn.logger.Error().Err(err)
	if err.StatusCode != 0 {
		event = event.Int("status_code", err.StatusCode)
	}
	if err.ErrorCode != 0 {
		event = event.Int("error_code", err.ErrorCode)
	}
	if err.Description != "" {
		event = event.Str("description", err.Description)
	}
	event.Msg("Failed to send Telegram message")
	return models.FailedNotification(err)
}

// redactURLError drops the request URL, which embeds the bot token, from
// transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
