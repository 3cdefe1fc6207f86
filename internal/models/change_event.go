package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Fingerprint is a deterministic digest of a file's byte content.
type Fingerprint [sha256.Size]byte

// String renders the fingerprint as lowercase hex.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, enough for log lines.
func (f Fingerprint) Short() string {
	return f.String()[:12]
}

// ChangeEvent is constructed when a target's fingerprint differs from the
// stored one. It is consumed immediately and never retained.
type ChangeEvent struct {
	TargetName     string
	Path           string
	DetectedAt     time.Time
	OldFingerprint Fingerprint
	NewFingerprint Fingerprint
}

// Target returns the watch target the event was raised for.
func (e ChangeEvent) Target() WatchTarget {
	return WatchTarget{Name: e.TargetName, Path: e.Path}
}

// DisplayName returns the base name of the changed file.
func (e ChangeEvent) DisplayName() string {
	return e.Target().DisplayName()
}

// NotificationResult reports the outcome of a single notification attempt.
type NotificationResult struct {
	Success   bool
	Err       error
	MessageID int64
}

// FailedNotification builds a failed result.
func FailedNotification(err error) NotificationResult {
	return NotificationResult{Success: false, Err: err}
}
