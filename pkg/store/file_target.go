package store

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const defaultBufferSize = 64 * 1024

// FileTargetConfig holds configuration for a file target
type FileTargetConfig struct {
	FilePath   string // Path to the record file
	BufferSize int    // Write buffer size (0 = 64KB)
	NoSync     bool   // Skip fsync after writes
}

// FileTarget stores a record as a plain file with no header
type FileTarget struct {
	config FileTargetConfig
}

// NewFileTarget creates a file target with default settings
func NewFileTarget(path string) *FileTarget {
	return NewFileTargetWithConfig(FileTargetConfig{FilePath: path})
}

// NewFileTargetWithConfig creates a file target from config
func NewFileTargetWithConfig(config FileTargetConfig) *FileTarget {
	if config.BufferSize <= 0 {
		config.BufferSize = defaultBufferSize
	}
	return &FileTarget{config: config}
}

// Path returns the file path
func (t *FileTarget) Path() string {
	return t.config.FilePath
}

func (t *FileTarget) String() string {
	return "file:" + t.config.FilePath
}

// ReadAll returns the file contents. A missing file is created empty.
func (t *FileTarget) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(t.config.FilePath)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, &IOError{Op: "read", Target: t.String(), Err: errors.Wrap(err, "read record file")}
	}

	if err := t.create(); err != nil {
		return nil, &IOError{Op: "read", Target: t.String(), Err: err}
	}
	Logger().Info("created record file", zap.String("path", t.config.FilePath))
	return []byte{}, nil
}

func (t *FileTarget) create() error {
	if err := os.MkdirAll(filepath.Dir(t.config.FilePath), 0750); err != nil {
		return errors.Wrap(err, "create record directory")
	}
	file, err := os.OpenFile(t.config.FilePath, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(err, "create record file")
	}
	return errors.Wrap(file.Close(), "close record file")
}

// WriteAll truncates the file and writes data through a buffered writer,
// then fsyncs unless NoSync is set
func (t *FileTarget) WriteAll(data []byte) error {
	if err := t.writeAll(data); err != nil {
		return &IOError{Op: "write", Target: t.String(), Err: err}
	}
	Logger().Debug("record file written",
		zap.String("path", t.config.FilePath),
		zap.Int("bytes", len(data)))
	return nil
}

func (t *FileTarget) writeAll(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(t.config.FilePath), 0750); err != nil {
		return errors.Wrap(err, "create record directory")
	}

	file, err := os.OpenFile(t.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "open record file")
	}

	writer := bufio.NewWriterSize(file, t.config.BufferSize)
	if _, err := writer.Write(data); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "write record file")
	}

	// Flush buffered writes
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "flush record file")
	}

	if !t.config.NoSync {
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return errors.Wrap(err, "sync record file")
		}
	}

	return errors.Wrap(file.Close(), "close record file")
}
