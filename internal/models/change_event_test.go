package models

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeEvent_DisplayName(t *testing.T) {
	event := ChangeEvent{TargetName: "file_2", Path: "/srv/feeds/alert_3ou_half.json"}

	assert.Equal(t, WatchTarget{Name: "file_2", Path: "/srv/feeds/alert_3ou_half.json"}, event.Target())
	assert.Equal(t, "alert_3ou_half.json", event.DisplayName())
	assert.Equal(t, event.Target().DisplayName(), event.DisplayName())
}

func TestFingerprint_String(t *testing.T) {
	fp := Fingerprint(sha256.Sum256(nil))

	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", fp.String())
	assert.Equal(t, "e3b0c44298fc", fp.Short())
}
