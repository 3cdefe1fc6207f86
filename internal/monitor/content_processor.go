package monitor

import (
	"crypto/sha256"

	"github.com/aleister1102/jsonmonitor/internal/models"
)

// ContentProcessor turns raw file content into a comparable fingerprint.
// Content is treated as opaque bytes; JSON is never parsed.
type ContentProcessor struct{}

// NewContentProcessor creates a new ContentProcessor.
func NewContentProcessor() *ContentProcessor {
	return &ContentProcessor{}
}

// Fingerprint returns the SHA-256 digest of content.
func (cp *ContentProcessor) Fingerprint(content []byte) models.Fingerprint {
	return models.Fingerprint(sha256.Sum256(content))
}
