// Package options provides shared helpers for functional-option validation.
package options

import "errors"

// ValidateSingleInputSource checks that exactly one of the given input
// sources is set. It returns an error built from noSourceMsg when none is
// set, and from multiSourceMsg when more than one is.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}
	switch {
	case count == 0:
		return errors.New(noSourceMsg)
	case count > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
