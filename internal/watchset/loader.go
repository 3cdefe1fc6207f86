// Package watchset turns a line-oriented watch list into the set of files the
// monitor polls.
package watchset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	jsonlog "github.com/aleister1102/jsonmonitor/internal/logger"
	"github.com/aleister1102/jsonmonitor/internal/models"
	"github.com/rs/zerolog"
)

const maxLineLength = 1 << 20

// DefaultTargets is the built-in watch set used when the list cannot be read.
func DefaultTargets() []models.WatchTarget {
	return []models.WatchTarget{
		{Name: "alert_3ou", Path: "./7_alert_3ou_half/alert_3ou_half.json"},
		{Name: "alert_underdog", Path: "./8_alert_underdog_0half/alert_underdog_0half.json"},
	}
}

// ReadTargets parses the watch list at path. Blank lines and lines starting
// with '#' are skipped; every other trimmed line becomes a target named after
// its 1-based line number.
func ReadTargets(path string) ([]models.WatchTarget, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errorwrapper.NewConfigError(path, "cannot open watch list", err)
	}
	if info.IsDir() {
		return nil, errorwrapper.NewConfigError(path, "watch list is a directory", nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.NewConfigError(path, "cannot open watch list", err)
	}
	defer file.Close()

	var targets []models.WatchTarget
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, models.WatchTarget{
			Name: fmt.Sprintf("file_%d", lineNumber),
			Path: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errorwrapper.NewConfigError(path, "cannot read watch list", err)
	}

	return targets, nil
}

// Loader resolves the active watch set and never fails startup.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a watch set loader
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: jsonlog.Component(logger, "WatchSetLoader"),
	}
}

// Load reads the watch list at path, falling back to DefaultTargets when the
// list is unreadable. A readable but empty list yields an empty set.
func (l *Loader) Load(path string) []models.WatchTarget {
	targets, err := ReadTargets(path)
	if err != nil {
		l.logger.Warn().Err(err).Str("path", path).Msg("Watch list unavailable, using default watch set")
		return DefaultTargets()
	}

	if len(targets) == 0 {
		l.logger.Warn().Str("path", path).Msg("Watch list contains no files, nothing will be monitored")
		return targets
	}

	l.logger.Info().Str("path", path).Int("count", len(targets)).Msg("Loaded watch list")
	return targets
}

// Describe logs the active watch set.
func (l *Loader) Describe(targets []models.WatchTarget) {
	for _, target := range targets {
		l.logger.Info().Str("name", target.Name).Str("file", target.DisplayName()).Str("path", target.Path).Msg("Watching file")
	}
}
