package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var errMultipleDocuments = errors.New("expected a single YAML document")

// Loader resolves, parses and validates meta-maas.yaml.
type Loader struct {
	locator *Locator
}

// NewLoader creates a Loader that resolves paths with locator. A nil
// locator uses the process environment.
func NewLoader(locator *Locator) *Loader {
	if locator == nil {
		locator = NewLocator(nil)
	}
	return &Loader{locator: locator}
}

// Resolve returns the path Load would read for explicitPath.
func (l *Loader) Resolve(explicitPath string) (string, error) {
	path, ok := l.locator.Resolve(explicitPath)
	if !ok {
		return "", notFound(explicitPath)
	}
	return path, nil
}

// Candidates returns the locations searched when no explicit path is given.
func (l *Loader) Candidates() []string {
	return l.locator.Candidates()
}

// Load finds the configuration file, then parses and validates it. An
// empty explicitPath searches the default locations. Any error returned is
// a *ConfigError.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	cfg, _, err := l.LoadResolved(explicitPath)
	return cfg, err
}

// LoadResolved is Load that also returns the path that was read. The path
// is empty when nothing was found.
func (l *Loader) LoadResolved(explicitPath string) (*Config, string, error) {
	path, err := l.Resolve(explicitPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFile parses and validates the configuration at path. Read, parse and
// validation failures are all returned as a KindLoadFailed *ConfigError
// carrying the original error as its cause.
func LoadFile(path string) (*Config, error) {
	root, err := parseFile(path)
	if err != nil {
		return nil, loadFailed(path, err)
	}

	if err := Validate(root); err != nil {
		return nil, loadFailed(path, err)
	}

	var cfg Config
	if err := root.Decode(&cfg); err != nil {
		return nil, loadFailed(path, fmt.Errorf("failed to decode YAML: %w", err))
	}
	return &cfg, nil
}

// Validate checks a parsed document against Schema. A nil root is an empty
// document.
func Validate(root *yaml.Node) error {
	if errs := Schema.Validate("", root); len(errs) > 0 {
		return errs
	}
	return nil
}

// parseFile reads a single YAML document and returns its root node, or nil
// for an empty document.
func parseFile(path string) (*yaml.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, errMultipleDocuments
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		return doc.Content[0], nil
	}
	return &doc, nil
}

// Load resolves and loads the configuration using the process environment.
func Load(explicitPath string) (*Config, error) {
	return NewLoader(nil).Load(explicitPath)
}
