package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the file searched for in the default locations
	ConfigFileName = "meta-maas.yaml"

	// snapEnv is set when running confined as a snap, where the home
	// directory lookup points inside the snap's private area.
	snapEnv = "SNAP"
	userEnv = "USER"
)

// Locator decides which configuration file to load.
type Locator struct {
	env Environment
}

// NewLocator creates a Locator reading from env. A nil env means the real
// process environment.
func NewLocator(env Environment) *Locator {
	if env == nil {
		env = OSEnvironment{}
	}
	return &Locator{env: env}
}

// Resolve returns the configuration file to use and whether one was found.
//
// An explicit path is returned unchanged when it is an existing regular
// file; otherwise nothing is found and no default location is tried.
// With no explicit path the default candidates are tried in order:
//   - $CWD/meta-maas.yaml
//   - ~/meta-maas.yaml
func (l *Locator) Resolve(explicitPath string) (string, bool) {
	if explicitPath != "" {
		if isRegularFile(explicitPath) {
			return explicitPath, true
		}
		return "", false
	}

	for _, candidate := range l.Candidates() {
		if isRegularFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Candidates returns the default locations in search order. A location
// whose directory cannot be determined is left out.
func (l *Locator) Candidates() []string {
	var candidates []string
	if cwd, err := l.env.Getwd(); err == nil && cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, ConfigFileName))
	}
	if home, ok := l.homeDir(); ok {
		candidates = append(candidates, filepath.Join(home, ConfigFileName))
	}
	return candidates
}

// homeDir returns the invoking user's home directory. Under a snap the
// directory is built from $USER, since the generic lookup would return
// the snap's own home.
func (l *Locator) homeDir() (string, bool) {
	if _, confined := l.env.LookupEnv(snapEnv); confined {
		if user, ok := l.env.LookupEnv(userEnv); ok && user != "" {
			return filepath.Join("/home", user), true
		}
	}
	home, err := l.env.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return home, true
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FindConfig resolves the configuration file using the process environment.
func FindConfig(explicitPath string) (string, bool) {
	return NewLocator(nil).Resolve(explicitPath)
}
