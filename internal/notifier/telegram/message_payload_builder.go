package telegram

// SendMessageRequestBuilder helps in constructing SendMessageRequest objects.
type SendMessageRequestBuilder struct {
	request SendMessageRequest
}

// NewSendMessageRequestBuilder creates a new builder.
func NewSendMessageRequestBuilder() *SendMessageRequestBuilder {
	return &SendMessageRequestBuilder{}
}

// WithChatID sets the destination chat.
func (b *SendMessageRequestBuilder) WithChatID(chatID string) *SendMessageRequestBuilder {
	b.request.ChatID = chatID
	return b
}

// WithText sets the message text.
func (b *SendMessageRequestBuilder) WithText(text string) *SendMessageRequestBuilder {
	b.request.Text = text
	return b
}

// WithParseMode sets the formatting mode; empty sends plain text.
func (b *SendMessageRequestBuilder) WithParseMode(mode string) *SendMessageRequestBuilder {
	b.request.ParseMode = mode
	return b
}

// WithoutWebPagePreview disables link previews.
func (b *SendMessageRequestBuilder) WithoutWebPagePreview() *SendMessageRequestBuilder {
	b.request.DisableWebPagePreview = true
	return b
}

// Build returns the constructed request.
func (b *SendMessageRequestBuilder) Build() SendMessageRequest {
	return b.request
}
