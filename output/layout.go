package output

import (
	"fmt"
	"path"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/ir"
)

// PathMode selects how many physical files a plugin's output collapses into.
type PathMode int

const (
	// PathModePerItem writes one file per schema or operation, named by a
	// deterministic transform of the item's name.
	PathModePerItem PathMode = iota
	// PathModeSingle appends every unit into one fixed file.
	PathModeSingle
	// PathModeGrouped chooses a destination directory per unit via the
	// layout's grouping function, combined with the naming transform.
	PathModeGrouped
)

// String returns a string representation of the path mode.
func (m PathMode) String() string {
	switch m {
	case PathModePerItem:
		return "per-item"
	case PathModeSingle:
		return "single"
	case PathModeGrouped:
		return "grouped"
	default:
		return "unknown"
	}
}

// Layout configures where one plugin's units land under the output root.
type Layout struct {
	// SubPath is the plugin's directory under the output root.
	SubPath string
	// Mode selects the path mode.
	Mode PathMode
	// FileName is the fixed file name for single mode (extension included).
	// Defaults to "index" plus Ext.
	FileName string
	// Ext is the file extension for generated names. Defaults to ".ts".
	Ext string
	// GroupBy chooses the directory key for grouped mode. Defaults to the
	// unit's Group field.
	GroupBy func(ir.Unit) string
	// Transform derives file and directory names from item and group names.
	// Defaults to kebab-case.
	Transform func(string) string
	// IndexFile names the per-directory index file. Empty disables index
	// emission for directories owned by this layout.
	IndexFile string
}

// normalized returns the layout with defaults applied.
func (l Layout) normalized() Layout {
	if l.Ext == "" {
		l.Ext = ".ts"
	}
	if l.FileName == "" {
		l.FileName = "index" + l.Ext
	}
	if l.Transform == nil {
		l.Transform = naming.ToKebabCase
	}
	if l.GroupBy == nil {
		l.GroupBy = func(u ir.Unit) string { return u.Group }
	}
	return l
}

// relPath resolves a unit's path relative to the output root. Pure: the
// same layout and unit always yield the same path.
func (l Layout) relPath(unit ir.Unit) (string, error) {
	if l.Mode == PathModeSingle {
		return path.Join(l.SubPath, l.FileName), nil
	}

	name := unit.FileName
	if name == "" {
		if unit.Target == "" {
			return "", fmt.Errorf("unit from plugin %q has neither a target nor a file name", unit.Plugin)
		}
		name = l.Transform(unit.Target) + l.Ext
	}

	switch l.Mode {
	case PathModeGrouped:
		group := l.GroupBy(unit)
		if group == "" {
			return path.Join(l.SubPath, name), nil
		}
		return path.Join(l.SubPath, l.Transform(group), name), nil
	case PathModePerItem:
		return path.Join(l.SubPath, name), nil
	default:
		return "", fmt.Errorf("unknown path mode %d", l.Mode)
	}
}
