// Package goemit provides the Go output plugin: struct and alias
// declarations for named schema definitions, assembled into one source file
// and formatted through golang.org/x/tools/imports so the emitted code is
// gofmt-clean with a minimal import block.
package goemit
