package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"condactl/internal/paths"
)

// New creates a logger that writes to a timestamped file inside the global
// condactl logs directory. The returned writer is the underlying log file,
// handed out so external command output can be teed into the same run log;
// close it when logging is no longer needed.
func New() (*log.Logger, io.WriteCloser, error) {
	dir, err := paths.GlobalLogsDir()
	if err != nil {
		return nil, nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	filePath := filepath.Join(dir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	return logger, file, nil
}
