// Package pluginhost implements Apex's external-plugin protocol (§4.12):
// a newline-terminated JSON line sent to a configured shell command's
// stdin, with the command's stdout read back as the replacement text.
package pluginhost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/google/uuid"

	"github.com/apexmd/apex/internal/logging"
	"github.com/apexmd/apex/pkg/interfaces"
)

// Phase identifies which point in the pipeline a plugin is invoked at.
type Phase string

const (
	PhasePreParse   Phase = "pre_parse"
	PhaseBlock      Phase = "block"
	PhaseInline     Phase = "inline"
	PhasePostRender Phase = "post_render"
)

// Mode controls how a non-zero plugin exit is handled.
type Mode int

const (
	// ModeAdvisory logs the failure and keeps the input unchanged.
	ModeAdvisory Mode = iota
	// ModeStrict aborts the whole conversion, returning a *PluginError.
	ModeStrict
)

// Plugin is one configured external command, registered for one or more
// phases.
type Plugin struct {
	ID      string
	Command string // passed to "sh -c", per spec.md §4.12
	Phases  []Phase
	Mode    Mode
}

// request is the one-line JSON payload sent to a plugin's stdin.
type request struct {
	Version  int    `json:"version"`
	PluginID string `json:"plugin_id"`
	Phase    string `json:"phase"`
	Text     string `json:"text"`
}

// PluginError wraps a strict-mode plugin failure with its exit code and
// captured stderr.
type PluginError struct {
	PluginID string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("pluginhost: plugin %q exited %d: %s", e.PluginID, e.ExitCode, e.Stderr)
}

func (e *PluginError) Unwrap() error { return e.Err }

// Host dispatches text through configured plugins for a given phase.
type Host struct {
	plugins []Plugin
	logger  interfaces.Logger
}

// New constructs a Host. A nil provider yields a no-op logger, matching
// internal/logging's convention for every other pipeline component.
func New(provider interfaces.LoggerProvider, plugins []Plugin) *Host {
	return &Host{plugins: plugins, logger: logging.PluginLogger(provider)}
}

// Run sends text through every plugin registered for phase, in
// registration order, each consuming the previous plugin's output as its
// own input — mirroring the preprocessor/post-processor chains' linear
// buffer-ownership discipline.
func (h *Host) Run(ctx context.Context, phase Phase, text string) (string, error) {
	out := text
	for _, p := range h.plugins {
		if !hasPhase(p.Phases, phase) {
			continue
		}
		result, err := h.invoke(ctx, p, phase, out)
		if err != nil {
			if p.Mode == ModeStrict {
				return text, err
			}
			h.logger.Warn("plugin invocation failed, keeping input unchanged",
				"plugin_id", p.ID, "phase", string(phase), "error", err)
			continue
		}
		out = result
	}
	return out, nil
}

func (h *Host) invoke(ctx context.Context, p Plugin, phase Phase, text string) (string, error) {
	correlationID := uuid.New().String()
	logger := logging.WithDocumentContext(h.logger, "", string(phase), p.ID)

	payload, err := json.Marshal(request{Version: 1, PluginID: p.ID, Phase: string(phase), Text: text})
	if err != nil {
		return text, err
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", p.Command)
	cmd.Stdin = bytes.NewReader(append(payload, '\n'))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("invoking plugin", "correlation_id", correlationID)

	runErr := cmd.Run()
	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		pluginErr := &PluginError{PluginID: p.ID, ExitCode: exitCode, Stderr: stderr.String(), Err: runErr}
		logger.Error("plugin exited non-zero", "correlation_id", correlationID, "exit_code", exitCode)
		return text, pluginErr
	}

	return stdout.String(), nil
}

func hasPhase(phases []Phase, phase Phase) bool {
	for _, p := range phases {
		if p == phase {
			return true
		}
	}
	return false
}
