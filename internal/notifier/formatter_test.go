package notifier

import (
	"testing"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/models"
	"github.com/stretchr/testify/assert"
)

func changeEvent(path string) models.ChangeEvent {
	return models.ChangeEvent{
		TargetName: "file_1",
		Path:       path,
		DetectedAt: time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local),
	}
}

func TestFormatFileChangeMessage(t *testing.T) {
	msg := FormatFileChangeMessage(changeEvent("./data/a.json"), "")

	assert.Equal(t, "🔔 *JSON FILE UPDATED*\n\n📄 File: a.json\n⏰ 3/5/2024, 2:07:09 PM", msg)
}

func TestMessageFormatter_EscapesPerParseMode(t *testing.T) {
	event := changeEvent("/srv/alert_3ou_half.json")

	tests := []struct {
		parseMode string
		header    string
		name      string
	}{
		{parseMode: "Markdown", header: "*JSON FILE UPDATED*", name: `alert\_3ou\_half.json`},
		{parseMode: "MarkdownV2", header: "*JSON FILE UPDATED*", name: `alert\_3ou\_half\.json`},
		{parseMode: "HTML", header: "<b>JSON FILE UPDATED</b>", name: "alert_3ou_half.json"},
		{parseMode: "", header: "JSON FILE UPDATED", name: "alert_3ou_half.json"},
	}

	for _, tt := range tests {
		t.Run(tt.parseMode, func(t *testing.T) {
			msg := NewMessageFormatter("2006-01-02", tt.parseMode).FileChanged(event)

			assert.Contains(t, msg, tt.header)
			assert.Contains(t, msg, "📄 File: "+tt.name)
			assert.Contains(t, msg, "2024")
		})
	}
}

func TestMessageFormatter_Test(t *testing.T) {
	assert.Equal(t, TestMessage, NewMessageFormatter("", "Markdown").Test())
	assert.Contains(t, NewMessageFormatter("", "MarkdownV2").Test(), `working\!`)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 50))
	assert.Equal(t, "abc...", Preview("abcdef", 3))
	assert.Equal(t, "🔔🔔...", Preview("🔔🔔🔔", 2))
}
