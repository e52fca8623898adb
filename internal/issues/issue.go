// Package issues provides a unified issue type for problems found during
// schema resolution and output generation.
package issues

import (
	"fmt"

	"github.com/erraggy/oasgen/internal/severity"
)

// Issue represents a single problem found while resolving or generating.
type Issue struct {
	// Path is the JSON path to the problematic field (e.g., "paths./pets.get.responses")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Plugin is the output plugin reporting the issue (empty for resolution issues)
	Plugin string
	// Operation is the operation id the issue relates to, if any
	Operation string
	// Schema is the schema definition name the issue relates to, if any
	Schema string
	// Value is the problematic value (optional)
	Value any
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Path
	switch {
	case where == "" && i.Operation != "":
		where = "operation " + i.Operation
	case where == "" && i.Schema != "":
		where = "schema " + i.Schema
	case where == "":
		where = "document"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
	if i.Plugin != "" {
		result += fmt.Sprintf(" (plugin: %s)", i.Plugin)
	}
	return result
}

// CountBySeverity tallies the issues in a slice by severity level.
func CountBySeverity(list []Issue) (info, warning, errs, critical int) {
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			info++
		case severity.SeverityWarning:
			warning++
		case severity.SeverityError:
			errs++
		case severity.SeverityCritical:
			critical++
		}
	}
	return info, warning, errs, critical
}
