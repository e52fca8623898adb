package resolver

import (
	"fmt"

	"github.com/erraggy/oasgen/document"
)

// Option configures a Resolver.
type Option func(*Resolver) error

// WithEnumAsConst enables the "represent as literal constants" mode: an
// enumeration with exactly one member degrades to a single constant node
// instead of an enum node.
func WithEnumAsConst(enabled bool) Option {
	return func(r *Resolver) error {
		r.enumAsConst = enabled
		return nil
	}
}

// WithLogger sets the structured logger used during resolution.
// If not set, logging is disabled.
func WithLogger(l document.Logger) Option {
	return func(r *Resolver) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		r.logger = l
		return nil
	}
}
