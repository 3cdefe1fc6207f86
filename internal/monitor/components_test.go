package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))
	fetcher := NewFileFetcher(1024, zerolog.Nop())

	content, err := fetcher.Fetch(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(content))

	_, err = fetcher.Fetch(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, errorwrapper.ErrNotFound)

	_, err = fetcher.Fetch(dir)
	assert.ErrorIs(t, err, errorwrapper.ErrFileAccess)
	assert.NotErrorIs(t, err, errorwrapper.ErrNotFound)

	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))
	_, err = fetcher.Fetch(path)
	assert.ErrorIs(t, err, errorwrapper.ErrFileAccess)

	content, err = NewFileFetcher(0, zerolog.Nop()).Fetch(path)
	require.NoError(t, err)
	assert.Len(t, content, 2048)
}

func TestContentProcessor_Fingerprint(t *testing.T) {
	cp := NewContentProcessor()

	assert.Equal(t, cp.Fingerprint([]byte("same")), cp.Fingerprint([]byte("same")))
	assert.NotEqual(t, cp.Fingerprint([]byte("a")), cp.Fingerprint([]byte("b")))
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		cp.Fingerprint(nil).String())
}

func TestFingerprintStore(t *testing.T) {
	store := NewFingerprintStore()
	_, ok := store.Get("file_1")
	assert.False(t, ok)

	fp := NewContentProcessor().Fingerprint([]byte("x"))
	store.Set("file_1", fp)

	got, ok := store.Get("file_1")
	assert.True(t, ok)
	assert.Equal(t, fp, got)

	store.Set("file_1", NewContentProcessor().Fingerprint([]byte("y")))
	assert.Equal(t, 1, store.Len())
}

func TestCycleTracker(t *testing.T) {
	ct := NewCycleTracker(2)
	assert.True(t, ct.ShouldContinue())

	assert.Equal(t, "cycle-1", ct.StartCycle())
	ct.AddChangedTarget("file_1")
	ct.AddChangedTarget("")
	assert.True(t, ct.HasChanges())
	assert.Equal(t, []string{"file_1"}, ct.GetChangedTargets())
	assert.True(t, ct.ShouldContinue())

	assert.Equal(t, "cycle-2", ct.StartCycle())
	assert.False(t, ct.HasChanges())
	assert.False(t, ct.ShouldContinue())

	unlimited := NewCycleTracker(0)
	for i := 0; i < 10; i++ {
		unlimited.StartCycle()
	}
	assert.True(t, unlimited.ShouldContinue())
	assert.Equal(t, 10, unlimited.CycleCount())
}
