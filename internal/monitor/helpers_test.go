package monitor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/aleister1102/jsonmonitor/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var errDeliveryFailed = errors.New("delivery failed")

// fakeNotifier records every message and resolves immediately.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	failFor  string
}

func (f *fakeNotifier) Notify(_ context.Context, message string) <-chan models.NotificationResult {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	failFor := f.failFor
	f.mu.Unlock()

	ch := make(chan models.NotificationResult, 1)
	if failFor != "" && strings.Contains(message, failFor) {
		ch <- models.FailedNotification(errDeliveryFailed)
	} else {
		ch <- models.NotificationResult{Success: true}
	}
	close(ch)
	return ch
}

func (f *fakeNotifier) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// blockingNotifier holds every send until release is closed.
type blockingNotifier struct {
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingNotifier) Notify(_ context.Context, _ string) <-chan models.NotificationResult {
	b.calls.Add(1)
	ch := make(chan models.NotificationResult, 1)
	go func() {
		defer close(ch)
		<-b.release
		ch <- models.NotificationResult{Success: true}
	}()
	return ch
}

func testConfig() config.MonitorConfig {
	cfg := config.NewDefaultMonitorConfig()
	cfg.ShutdownTimeoutSecs = 2
	return cfg
}

func writeTarget(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestService(t *testing.T, cfg config.MonitorConfig, n *fakeNotifier, targets ...models.WatchTarget) *Service {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, time.January, 2, 15, 4, 5, 0, time.Local) }
	return NewService(cfg, targets, n, zerolog.Nop(), WithClock(clock))
}

func target(dir, name, file string) models.WatchTarget {
	return models.WatchTarget{Name: name, Path: filepath.Join(dir, file)}
}

// pendingDrained reports whether every notification handle resolved within d.
func pendingDrained(svc *Service, d time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return svc.waitPending(ctx) == nil
}
