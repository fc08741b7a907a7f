package pluginhost

import "os"

// PreParseEnvVar is the back-compat shortcut (§6.5): when set, its value
// is registered as a single pre_parse plugin command without requiring
// the caller to populate Options.Plugins explicitly.
const PreParseEnvVar = "APEX_PRE_PARSE_PLUGIN"

// FromEnvironment appends a pre_parse plugin built from PreParseEnvVar to
// plugins, if the variable is set.
func FromEnvironment(plugins []Plugin) []Plugin {
	cmd, ok := os.LookupEnv(PreParseEnvVar)
	if !ok || cmd == "" {
		return plugins
	}
	return append(plugins, Plugin{
		ID:      "env:" + PreParseEnvVar,
		Command: cmd,
		Phases:  []Phase{PhasePreParse},
		Mode:    ModeAdvisory,
	})
}
