package config

// ConfigLoader is what the CLI needs from a Loader. Tests swap in a stub.
type ConfigLoader interface {
	// Load finds, parses and validates the configuration. An empty
	// explicitPath searches the default locations.
	Load(explicitPath string) (*Config, error)

	// LoadResolved is Load that also reports the path it read.
	LoadResolved(explicitPath string) (*Config, string, error)

	// Resolve returns the path Load would read, without reading it.
	Resolve(explicitPath string) (string, error)

	// Candidates lists the locations searched without an explicit path.
	Candidates() []string
}

// NewConfigLoader creates a ConfigLoader bound to the process environment.
func NewConfigLoader() ConfigLoader {
	return NewLoader(nil)
}
