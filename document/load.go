package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/oaserrors"
)

// Load reads, decodes, and normalizes an OpenAPI document.
//
// Exactly one input source option must be provided. YAML and JSON are both
// accepted; JSON is parsed through the YAML decoder (YAML is a superset), so
// key order is preserved either way. OAS 2.0 documents are upgraded to the
// 3.x shape unless WithUpgrade(false) is set.
func Load(opts ...Option) (*Document, error) {
	cfg := &loadConfig{upgrade: true, logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	data, sourcePath, err := cfg.readSource()
	if err != nil {
		return nil, err
	}

	doc := new(Document)
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "failed to decode document",
			Cause:   err,
		}
	}

	doc.SourcePath = sourcePath
	doc.Format = detectFormat(data)

	if doc.OpenAPI == "" && doc.Swagger == "" {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "not an OpenAPI document: missing both 'openapi' and 'swagger' fields",
		}
	}

	cfg.logger.Debug("document decoded",
		"source", sourcePath,
		"format", string(doc.Format),
		"paths", len(doc.Paths))

	if doc.IsOAS2() && cfg.upgrade {
		upgradeOAS2(doc, cfg.logger)
	}

	return doc, nil
}

// IsOAS2 reports whether the source document declared the Swagger 2.0 dialect.
func (d *Document) IsOAS2() bool {
	return d.Swagger != ""
}

// readSource reads the raw bytes from whichever input source is configured.
func (c *loadConfig) readSource() ([]byte, string, error) {
	switch {
	case c.filePath != "":
		data, err := os.ReadFile(c.filePath)
		if err != nil {
			return nil, "", &oaserrors.ParseError{
				Path:    c.filePath,
				Message: "failed to read file",
				Cause:   err,
			}
		}
		return data, c.filePath, nil

	case c.reader != nil:
		data, err := io.ReadAll(c.reader)
		if err != nil {
			return nil, "", &oaserrors.ParseError{
				Path:    c.sourceNameOr("<reader>"),
				Message: "failed to read input",
				Cause:   err,
			}
		}
		return data, c.sourceNameOr("<reader>"), nil

	default:
		return c.data, c.sourceNameOr("<bytes>"), nil
	}
}

// sourceNameOr returns the configured source name or a fallback.
func (c *loadConfig) sourceNameOr(fallback string) string {
	if c.sourceName != "" {
		return c.sourceName
	}
	return fallback
}

// detectFormat sniffs whether the input was JSON or YAML from the first
// non-whitespace byte.
func detectFormat(data []byte) SourceFormat {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// Version returns the declared dialect version string.
func (d *Document) Version() string {
	if d.OpenAPI != "" {
		return d.OpenAPI
	}
	return d.Swagger
}

// Title returns the document title, or a fallback when absent.
func (d *Document) Title() string {
	if d.Info != nil && d.Info.Title != "" {
		return d.Info.Title
	}
	return fmt.Sprintf("API (%s)", d.Version())
}
