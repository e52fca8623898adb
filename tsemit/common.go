package tsemit

import (
	"strings"

	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/ir"
	"github.com/erraggy/oasgen/pipeline"
)

// FuncName derives a camelCase function name from an operation id.
func FuncName(operationID string) string {
	return naming.ToCamelCase(naming.SanitizeIdentifier(operationID))
}

// MockName derives the factory function name for a schema definition.
func MockName(name string) string {
	return "mock" + TypeName(name)
}

// groupKey returns the unit grouping key for an operation: its first tag.
func groupKey(op ir.OperationDescriptor) string {
	if len(op.Tags) > 0 {
		return op.Tags[0]
	}
	return ""
}

// emitHeader emits a shared preamble block targeting the same destination as
// the units that follow it. Under single path mode every copy after the
// first is byte-identical and dropped by the file manager's dedup pass, so
// the preamble appears exactly once per physical file in every mode.
func emitHeader(bc *pipeline.BuildContext, unit ir.Unit, header string) {
	if header == "" {
		return
	}
	bc.Emit(ir.Unit{
		Kind:     unit.Kind,
		Target:   unit.Target,
		Group:    unit.Group,
		FileName: unit.FileName,
		Content:  header,
		NoExport: true,
	})
}

// docComment renders a one-line JSDoc block, or "" when the text is empty.
func docComment(text string) string {
	if text == "" {
		return ""
	}
	return "/** " + strings.ReplaceAll(text, "*/", "*\\/") + " */\n"
}

// templatePath converts a path template to a TypeScript template literal
// body: "/pets/{id}" becomes "/pets/${id}" with the parameter camelCased.
func templatePath(path string) string {
	var b strings.Builder
	rest := path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString("${" + FuncName(rest[open+1:open+closing]) + "}")
		rest = rest[open+closing+1:]
	}
}

// mswPath converts a path template to msw's colon syntax:
// "/pets/{id}" becomes "/pets/:id".
func mswPath(path string) string {
	var b strings.Builder
	rest := path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString(":" + rest[open+1:open+closing])
		rest = rest[open+closing+1:]
	}
}
