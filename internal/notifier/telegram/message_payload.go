// Package telegram holds the Bot API wire types used by the notifier.
package telegram

import "strings"

// SendMessagePath is the Bot API method used for all notifications.
const SendMessagePath = "sendMessage"

// SendMessageRequest is the JSON body of a sendMessage call.
type SendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// APIResponse is the envelope every Bot API method answers with.
type APIResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description,omitempty"`
	ErrorCode   int      `json:"error_code,omitempty"`
	Result      *Message `json:"result,omitempty"`
}

// Message is the subset of the Bot API message object we read back.
type Message struct {
	MessageID int64 `json:"message_id"`
}

// MethodURL builds <base>/bot<token>/<method>.
func MethodURL(baseURL, token, method string) string {
	return strings.TrimRight(baseURL, "/") + "/bot" + token + "/" + method
}
