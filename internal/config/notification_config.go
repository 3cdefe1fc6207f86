package config

import (
	"strings"
	"time"
)

// NotificationConfig defines configuration for the Telegram notifier
type NotificationConfig struct {
	BotToken           string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`
	ChatID             string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
	APIBaseURL         string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty" validate:"omitempty,url"`
	ParseMode          string `json:"parse_mode,omitempty" yaml:"parse_mode,omitempty" validate:"omitempty,parsemode"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	PreviewLength      int    `json:"preview_length,omitempty" yaml:"preview_length,omitempty" validate:"omitempty,min=1"`
	Proxy              string `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`

	DisableLinkPreview bool `json:"disable_link_preview,omitempty" yaml:"disable_link_preview,omitempty"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		BotToken:           "",
		ChatID:             "",
		APIBaseURL:         DefaultTelegramAPIBaseURL,
		ParseMode:          DefaultParseMode,
		HTTPTimeoutSeconds: DefaultNotificationTimeoutSecs,
		PreviewLength:      DefaultNotificationPreview,
	}
}

// HTTPTimeout returns the bounded timeout for one outbound call.
func (c NotificationConfig) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return DefaultNotificationTimeoutSecs * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// MissingCredentials lists the credential fields that are not usable.
func (c NotificationConfig) MissingCredentials() []string {
	var missing []string
	if strings.TrimSpace(c.BotToken) == "" {
		missing = append(missing, "bot_token")
	}
	chatID := strings.TrimSpace(c.ChatID)
	if chatID == "" || chatID == ChatIDPlaceholder {
		missing = append(missing, "chat_id")
	}
	return missing
}

// HasCredentials reports whether both the bot token and destination are set.
func (c NotificationConfig) HasCredentials() bool {
	return len(c.MissingCredentials()) == 0
}
