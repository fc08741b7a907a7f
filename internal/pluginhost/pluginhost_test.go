package pluginhost_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexmd/apex/internal/pluginhost"
)

func TestRunPassesTextThroughShellCommand(t *testing.T) {
	host := pluginhost.New(nil, []pluginhost.Plugin{
		{ID: "upper", Command: `sed -e 's/.*"text":"\([^"]*\)".*/\1/' | tr a-z A-Z | tr -d '\n'`, Phases: []pluginhost.Phase{pluginhost.PhaseBlock}},
	})

	out, err := host.Run(context.Background(), pluginhost.PhaseBlock, "hello")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)
}

func TestRunSkipsPluginsNotRegisteredForPhase(t *testing.T) {
	host := pluginhost.New(nil, []pluginhost.Plugin{
		{ID: "upper", Command: `tr a-z A-Z`, Phases: []pluginhost.Phase{pluginhost.PhaseInline}},
	})

	out, err := host.Run(context.Background(), pluginhost.PhaseBlock, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunAdvisoryModeKeepsInputOnFailure(t *testing.T) {
	host := pluginhost.New(nil, []pluginhost.Plugin{
		{ID: "fail", Command: `exit 1`, Phases: []pluginhost.Phase{pluginhost.PhaseBlock}, Mode: pluginhost.ModeAdvisory},
	})

	out, err := host.Run(context.Background(), pluginhost.PhaseBlock, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunStrictModeReturnsPluginError(t *testing.T) {
	host := pluginhost.New(nil, []pluginhost.Plugin{
		{ID: "fail", Command: `exit 7`, Phases: []pluginhost.Phase{pluginhost.PhaseBlock}, Mode: pluginhost.ModeStrict},
	})

	_, err := host.Run(context.Background(), pluginhost.PhaseBlock, "hello")
	require.Error(t, err)

	var pluginErr *pluginhost.PluginError
	require.ErrorAs(t, err, &pluginErr)
	assert.Equal(t, 7, pluginErr.ExitCode)
	assert.Equal(t, "fail", pluginErr.PluginID)
}

func TestFromEnvironmentRegistersPreParsePlugin(t *testing.T) {
	t.Setenv(pluginhost.PreParseEnvVar, "cat")
	plugins := pluginhost.FromEnvironment(nil)
	require.Len(t, plugins, 1)
	assert.Equal(t, pluginhost.PhasePreParse, plugins[0].Phases[0])
}

func TestFromEnvironmentNoopWhenUnset(t *testing.T) {
	plugins := pluginhost.FromEnvironment([]pluginhost.Plugin{{ID: "existing"}})
	require.Len(t, plugins, 1)
}
