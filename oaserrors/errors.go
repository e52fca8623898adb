// Package oaserrors provides structured error types for oasgen.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: failures loading or decoding the source OpenAPI document
//   - ConfigError: invalid build configuration, including undeclared plugin
//     dependencies and dependency cycles
//   - ResolveError: schema reference resolution failures
//   - ConflictError: two output units claiming the same path or export name
//     with incompatible content
//   - PluginError: a failure inside a plugin's lifecycle, fatal for the build
//
// # Usage with errors.Is
//
//	result, err := generator.Generate(generator.WithFilePath("api.yaml"))
//	if err != nil {
//	    if errors.Is(err, oaserrors.ErrConflict) {
//	        // Two plugins produced incompatible content for one path.
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates the source document could not be loaded or decoded.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid build configuration.
	ErrConfig = errors.New("configuration error")

	// ErrDependencyCycle indicates the declared plugin dependencies form a cycle.
	ErrDependencyCycle = errors.New("plugin dependency cycle")

	// ErrUnknownDependency indicates a plugin declared a dependency that is
	// not part of the active plugin set.
	ErrUnknownDependency = errors.New("unknown plugin dependency")

	// ErrResolve indicates a schema reference could not be resolved.
	ErrResolve = errors.New("resolution error")

	// ErrConflict indicates two output units claimed the same destination
	// with incompatible content.
	ErrConflict = errors.New("output conflict")

	// ErrPlugin indicates a plugin failed during its lifecycle.
	ErrPlugin = errors.New("plugin error")
)

// ParseError represents a failure to load or decode an OpenAPI document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid build configuration. Configuration errors
// are always reported before any build step runs.
type ConfigError struct {
	// Plugin is the plugin whose configuration is invalid, if applicable
	Plugin string
	// Dependency is the undeclared or missing dependency name, if applicable
	Dependency string
	// IsCycle is true if the declared dependencies form a cycle
	IsCycle bool
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.IsCycle {
		msg = "plugin dependency cycle"
	} else if e.Dependency != "" {
		msg = "unknown plugin dependency " + fmt.Sprintf("%q", e.Dependency)
	}
	if e.Plugin != "" {
		msg += " in plugin " + fmt.Sprintf("%q", e.Plugin)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrConfig:
		return true
	case ErrDependencyCycle:
		return e.IsCycle
	case ErrUnknownDependency:
		return e.Dependency != ""
	}
	return false
}

// ResolveError represents a failure to resolve a schema reference by name.
// Most resolution failures degrade to a fallback node and are reported as
// issues rather than errors; a ResolveError is returned only when the missing
// name is required to disambiguate a union or discriminator, in which case it
// is fatal for that operation only.
type ResolveError struct {
	// Name is the schema definition name that failed to resolve
	Name string
	// Operation is the operation id the failure occurred in, if any
	Operation string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ResolveError) Error() string {
	msg := "resolution error"
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Operation != "" {
		msg += " (operation " + e.Operation + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ResolveError) Is(target error) bool {
	return target == ErrResolve
}

// ConflictError represents two output units claiming the same destination
// with incompatible content. Conflicts are fatal for the whole build: partial
// writes would corrupt the consumer's source tree.
type ConflictError struct {
	// Path is the resolved output path both units claimed
	Path string
	// Export is the conflicting export symbol name, if the conflict is at
	// the symbol level rather than the path level
	Export string
	// Plugins names the plugins that produced the conflicting units
	Plugins []string
	// Message describes the conflict
	Message string
}

// Error returns a human-readable error message.
func (e *ConflictError) Error() string {
	msg := "output conflict"
	if e.Export != "" {
		msg += " on export " + fmt.Sprintf("%q", e.Export)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if len(e.Plugins) > 0 {
		msg += " (plugins: "
		for i, p := range e.Plugins {
			if i > 0 {
				msg += ", "
			}
			msg += p
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PluginError represents a failure inside a plugin's lifecycle. Any plugin
// failure aborts the whole orchestration run; output units already produced
// by earlier, successfully completed plugins remain available for diagnostics.
type PluginError struct {
	// Plugin is the name of the failing plugin
	Plugin string
	// Phase is the lifecycle phase that failed: "setup", "build", or "complete"
	Phase string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *PluginError) Error() string {
	msg := "plugin error"
	if e.Plugin != "" {
		msg += " in " + fmt.Sprintf("%q", e.Plugin)
	}
	if e.Phase != "" {
		msg += " during " + e.Phase
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PluginError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PluginError) Is(target error) bool {
	return target == ErrPlugin
}
