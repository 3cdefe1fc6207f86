package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/aleister1102/jsonmonitor/internal/models"
)

// TestMessage is sent by the test command to validate credentials.
const TestMessage = "✅ Test message from JSON Monitor\n\nIf you see this, everything is working!"

var (
	markdownEscaper   = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)
	markdownV2Escaper = strings.NewReplacer(
		"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`, "~", `\~`, "`", "\\`",
		">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`, "=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`,
		".", `\.`, "!", `\!`, `\`, `\\`,
	)
)

// MessageFormatter renders notification text for one parse mode.
type MessageFormatter struct {
	timestampLayout string
	parseMode       string
}

// NewMessageFormatter creates a formatter. An empty layout uses the default.
func NewMessageFormatter(timestampLayout, parseMode string) *MessageFormatter {
	if timestampLayout == "" {
		timestampLayout = config.DefaultTimestampLayout
	}
	return &MessageFormatter{
		timestampLayout: timestampLayout,
		parseMode:       parseMode,
	}
}

// FileChanged renders the alert for a detected content change.
func (f *MessageFormatter) FileChanged(event models.ChangeEvent) string {
	name := f.escape(event.DisplayName())
	timestamp := f.escape(event.DetectedAt.Local().Format(f.timestampLayout))

	return fmt.Sprintf("🔔 %s\n\n📄 File: %s\n⏰ %s", f.bold("JSON FILE UPDATED"), name, timestamp)
}

// Test renders TestMessage for the configured parse mode.
func (f *MessageFormatter) Test() string {
	return f.escape(TestMessage)
}

func (f *MessageFormatter) bold(s string) string {
	switch f.parseMode {
	case "Markdown", "MarkdownV2":
		return "*" + s + "*"
	case "HTML":
		return "<b>" + s + "</b>"
	default:
		return s
	}
}

func (f *MessageFormatter) escape(s string) string {
	switch f.parseMode {
	case "Markdown":
		return markdownEscaper.Replace(s)
	case "MarkdownV2":
		return markdownV2Escaper.Replace(s)
	case "HTML":
		return html.EscapeString(s)
	default:
		return s
	}
}

// FormatFileChangeMessage renders a change alert using legacy Markdown.
func FormatFileChangeMessage(event models.ChangeEvent, layout string) string {
	return NewMessageFormatter(layout, config.DefaultParseMode).FileChanged(event)
}

// Preview shortens text to at most n runes for log lines, marking truncation.
func Preview(text string, n int) string {
	if n <= 0 {
		n = config.DefaultNotificationPreview
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
