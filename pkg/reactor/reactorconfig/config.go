// Package reactorconfig provides optional, declarative configuration for the
// reactivity core, for hosts that would rather externalize dev-mode toggles
// and a dependency-depth ceiling into a file than call Go setters from
// main(). It is
// adapted from the teacher's SignalOptions/debug-toggle pattern
// (pkg/core/signal_factory.go's EnableDebugMode/DisableDebugMode) and from
// the wider example pack's use of YAML for declarative config.
//
// Default() reproduces the spec's hardcoded defaults (dev warnings on, no
// recursion-depth ceiling), so loading a config file is never required. The
// zero-value Config differs from it: its dev warnings are off.
package reactorconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the host-tunable knobs for the reactivity core. None of these
// affect track/trigger/effect-run correctness -- they only gate dev-mode
// warnings and optional safety ceilings a host may want on top of the core.
type Config struct {
	// DevWarnings enables the package's debug-mode logging (readonly
	// mutation refusals, setter-less computed writes). Mirrors
	// reactor.EnableDebugMode/DisableDebugMode.
	DevWarnings bool `yaml:"devWarnings"`

	// MaxDependencyDepth is an optional, host-enforced ceiling on computed
	// chain depth. The core's own re-entrancy guard (active-effect-stack
	// membership) is unconditional and does not consult this value; a host
	// may use it to fail fast on runaway dependency graphs before they hit
	// that guard. Zero means unlimited.
	MaxDependencyDepth int `yaml:"maxDependencyDepth"`
}

// Default returns the Config matching the spec's hardcoded defaults.
func Default() Config {
	return Config{DevWarnings: true, MaxDependencyDepth: 0}
}

// Load reads a YAML config file from path. A missing DevWarnings key decodes
// to false, not the Default() value -- Load is for hosts that want full
// control over the file's content, not for merging over defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reactorconfig: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("reactorconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}
