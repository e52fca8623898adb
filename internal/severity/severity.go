// Package severity provides severity level constants for issues reported
// during resolution and generation.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue reported during schema
// resolution or output generation.
type Severity int

const (
	// SeverityError indicates a problem that makes part of the output invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates lossy handling or a recommendation that does
	// not prevent generation but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates constructs that cannot be generated without
	// data loss.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
