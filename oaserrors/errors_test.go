package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected end of stream")
	err := &ParseError{
		Path:    "api.yaml",
		Message: "invalid YAML",
		Cause:   cause,
	}

	assert.Contains(t, err.Error(), "api.yaml")
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Contains(t, err.Error(), "unexpected end of stream")
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConfig)
}

func TestConfigError_UnknownDependency(t *testing.T) {
	err := &ConfigError{
		Plugin:     "query",
		Dependency: "client",
	}

	assert.Contains(t, err.Error(), `"client"`)
	assert.Contains(t, err.Error(), `"query"`)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrUnknownDependency)
	assert.NotErrorIs(t, err, ErrDependencyCycle)
}

func TestConfigError_Cycle(t *testing.T) {
	err := &ConfigError{
		IsCycle: true,
		Message: "a -> b -> a",
	}

	assert.Contains(t, err.Error(), "cycle")
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrDependencyCycle)
	assert.NotErrorIs(t, err, ErrUnknownDependency)
}

func TestResolveError(t *testing.T) {
	err := &ResolveError{
		Name:      "Pet",
		Operation: "getPetById",
		Message:   "required to disambiguate discriminator",
	}

	assert.Contains(t, err.Error(), "Pet")
	assert.Contains(t, err.Error(), "getPetById")
	assert.ErrorIs(t, err, ErrResolve)
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{
		Path:    "models/pet.ts",
		Export:  "Pet",
		Plugins: []string{"types", "zod"},
	}

	assert.Contains(t, err.Error(), "models/pet.ts")
	assert.Contains(t, err.Error(), `"Pet"`)
	assert.Contains(t, err.Error(), "types")
	assert.Contains(t, err.Error(), "zod")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPluginError(t *testing.T) {
	cause := errors.New("boom")
	err := &PluginError{Plugin: "msw", Phase: "build", Cause: cause}

	assert.Contains(t, err.Error(), `"msw"`)
	assert.Contains(t, err.Error(), "build")
	assert.ErrorIs(t, err, ErrPlugin)
	assert.ErrorIs(t, err, cause)
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", &ConflictError{Path: "index.ts"})

	var conflictErr *ConflictError
	require.ErrorAs(t, wrapped, &conflictErr)
	assert.Equal(t, "index.ts", conflictErr.Path)
}
