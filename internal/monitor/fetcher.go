package monitor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	jsonlog "github.com/aleister1102/jsonmonitor/internal/logger"
	"github.com/rs/zerolog"
)

// FileFetcher reads watched files from the local filesystem.
type FileFetcher struct {
	maxSize int64
	logger  zerolog.Logger
}

// NewFileFetcher creates a new FileFetcher. maxSize <= 0 disables the limit.
func NewFileFetcher(maxSize int64, logger zerolog.Logger) *FileFetcher {
	return &FileFetcher{
		maxSize: maxSize,
		logger:  jsonlog.Component(logger, "FileFetcher"),
	}
}

// Fetch returns the full content of the file at path. Failures are reported
// as *errorwrapper.FileAccessError; a missing file matches ErrNotFound.
func (f *FileFetcher) Fetch(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errorwrapper.NewFileAccessError(path, errors.Is(err, fs.ErrNotExist), err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, errorwrapper.NewFileAccessError(path, false, err)
	}
	if info.IsDir() {
		return nil, errorwrapper.NewFileAccessError(path, false, errors.New("is a directory"))
	}

	var reader io.Reader = file
	if f.maxSize > 0 {
		if info.Size() > f.maxSize {
			return nil, errorwrapper.NewFileAccessError(path, false, fmt.Errorf("size %d exceeds limit of %d bytes", info.Size(), f.maxSize))
		}
		// the file may grow between stat and read
		reader = io.LimitReader(file, f.maxSize+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, errorwrapper.NewFileAccessError(path, false, err)
	}
	if f.maxSize > 0 && int64(len(content)) > f.maxSize {
		return nil, errorwrapper.NewFileAccessError(path, false, fmt.Errorf("content exceeds limit of %d bytes", f.maxSize))
	}

	f.logger.Debug().Str("path", path).Int("size", len(content)).Msg("File read")
	return content, nil
}
