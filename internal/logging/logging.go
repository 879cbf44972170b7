// Package logging builds the process logger: console plus an append-mode
// log file so runs can be analyzed after the fact.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goatkit/zammad-export/internal/config"
)

// New returns a logger writing to stdout and, when configured, the log
// file. The returned closer releases the file handle.
func New(cfg config.LogConfig) (*log.Logger, func(), error) {
	writers := []io.Writer{os.Stdout}
	closer := func() {}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
		}
		writers = append(writers, f)
		closer = func() { f.Close() }
	}

	logger := log.New(io.MultiWriter(writers...), "", log.LstdFlags)
	return logger, closer, nil
}
