package telegram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageRequest_WireFormat(t *testing.T) {
	req := NewSendMessageRequestBuilder().
		WithChatID("-1001").
		WithText("hello").
		WithParseMode("Markdown").
		Build()

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chat_id":"-1001","text":"hello","parse_mode":"Markdown"}`, string(data))

	plain, err := json.Marshal(NewSendMessageRequestBuilder().WithChatID("1").WithText("x").Build())
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "parse_mode")
}

func TestAPIResponse_Decode(t *testing.T) {
	var ok APIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"ok":true,"result":{"message_id":77,"text":"hi"}}`), &ok))
	assert.True(t, ok.OK)
	require.NotNil(t, ok.Result)
	assert.Equal(t, int64(77), ok.Result.MessageID)

	var failed APIResponse
	require.NoError(t, json.Unmarshal([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`), &failed))
	assert.False(t, failed.OK)
	assert.Equal(t, 400, failed.ErrorCode)
	assert.Equal(t, "Bad Request: chat not found", failed.Description)
}

func TestMethodURL(t *testing.T) {
	assert.Equal(t, "https://api.telegram.org/bot123:abc/sendMessage", MethodURL("https://api.telegram.org/", "123:abc", SendMessagePath))
}
