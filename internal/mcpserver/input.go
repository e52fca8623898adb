package mcpserver

import (
	"fmt"

	"github.com/erraggy/oasgen/document"
)

// specInput represents the two ways an OAS spec can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// validate checks that exactly one input was provided and that inline
// content stays under the configured size cap.
func (s specInput) validate() error {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASGEN_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// load parses the spec from whichever input was provided.
func (s specInput) load() (*document.Document, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if s.File != "" {
		return document.Load(document.WithFilePath(s.File))
	}
	return document.Load(
		document.WithBytes([]byte(s.Content)),
		document.WithSourceName("inline"),
	)
}
