package document

import (
	"fmt"
	"io"

	"github.com/erraggy/oasgen/internal/options"
)

// loadConfig holds the configuration assembled from Load options.
type loadConfig struct {
	filePath   string
	reader     io.Reader
	data       []byte
	hasData    bool
	sourceName string
	logger     Logger
	upgrade    bool
}

// Option configures a call to Load.
type Option func(*loadConfig) error

// WithFilePath loads the document from a file on disk.
func WithFilePath(path string) Option {
	return func(c *loadConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		c.filePath = path
		return nil
	}
}

// WithReader loads the document from an io.Reader.
func WithReader(r io.Reader) Option {
	return func(c *loadConfig) error {
		if r == nil {
			return fmt.Errorf("reader cannot be nil")
		}
		c.reader = r
		return nil
	}
}

// WithBytes loads the document from raw bytes.
func WithBytes(data []byte) Option {
	return func(c *loadConfig) error {
		c.data = data
		c.hasData = true
		return nil
	}
}

// WithSourceName sets the source identifier used in errors and the loaded
// Document's SourcePath. Useful with WithReader and WithBytes, where no file
// path is available.
func WithSourceName(name string) Option {
	return func(c *loadConfig) error {
		c.sourceName = name
		return nil
	}
}

// WithLogger sets the structured logger used during loading and upgrading.
// If not set, logging is disabled.
func WithLogger(l Logger) Option {
	return func(c *loadConfig) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = l
		return nil
	}
}

// WithUpgrade controls whether OAS 2.0 input is upgraded to the 3.x shape.
// Default: true. Disabling it is only useful for inspecting raw 2.0 input;
// the rest of the engine expects an upgraded document.
func WithUpgrade(enabled bool) Option {
	return func(c *loadConfig) error {
		c.upgrade = enabled
		return nil
	}
}

// validate checks that the assembled configuration is usable.
func (c *loadConfig) validate() error {
	return options.ValidateSingleInputSource(
		"must specify an input source (WithFilePath, WithReader, or WithBytes)",
		"must specify exactly one input source",
		c.filePath != "", c.reader != nil, c.hasData,
	)
}
