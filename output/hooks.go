package output

import (
	"os/exec"
	"strings"
)

// Hook is one post-build command, run after every output file is on disk.
type Hook struct {
	// Name identifies the hook in logs and results.
	Name string
	// Command is the executable to run.
	Command string
	// Args are the command arguments. The output root is appended when
	// AppendOutputRoot is set.
	Args []string
	// AppendOutputRoot passes the output root as the final argument, the
	// common shape for formatters ("prettier --write <root>").
	AppendOutputRoot bool
}

// HookResult reports one hook's outcome. A failed hook never unwrites
// already-materialized files.
type HookResult struct {
	// Name is the hook's name, or its command when unnamed.
	Name string
	// Output is the combined stdout and stderr.
	Output string
	// Err is the execution error, if the hook failed.
	Err error
}

// runHooks executes the configured hooks in order. Every hook runs even
// when an earlier one fails.
func (m *Manager) runHooks() []HookResult {
	if len(m.hooks) == 0 {
		return nil
	}

	results := make([]HookResult, 0, len(m.hooks))
	for _, hook := range m.hooks {
		name := hook.Name
		if name == "" {
			name = hook.Command
		}
		args := hook.Args
		if hook.AppendOutputRoot {
			args = append(append([]string{}, args...), m.outputRoot)
		}

		cmd := exec.Command(hook.Command, args...)
		out, err := cmd.CombinedOutput()
		if err != nil {
			m.logger.Warn("post-build hook failed", "hook", name, "error", err)
		} else {
			m.logger.Debug("post-build hook finished", "hook", name)
		}
		results = append(results, HookResult{
			Name:   name,
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		})
	}
	return results
}
