// Package config finds, parses and validates the meta-maas.yaml
// configuration file.
package config

import "sort"

// Config represents the complete meta-maas.yaml configuration
type Config struct {
	Regions map[string]Region `yaml:"regions"`
	Users   map[string]User   `yaml:"users,omitempty"`
	Images  *Images           `yaml:"images,omitempty"`
}

// Region is a managed MAAS region endpoint
type Region struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"apikey"`
}

// User is an account to keep in sync across all regions
type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	IsAdmin  *bool  `yaml:"is_admin,omitempty"` // nil when not set in the file
}

// Admin reports whether the user is flagged as an administrator.
func (u User) Admin() bool {
	return u.IsAdmin != nil && *u.IsAdmin
}

// Images holds the image synchronization settings
type Images struct {
	Source *ImageSource           `yaml:"source,omitempty"`
	Custom map[string]CustomImage `yaml:"custom,omitempty"`
}

// ImageSource is the default boot image source
type ImageSource struct {
	URL             string               `yaml:"url"`
	KeyringFilename string               `yaml:"keyring_filename"`
	Selections      map[string]Selection `yaml:"selections"`
}

// Selection lists the releases and architectures to sync for one distribution
type Selection struct {
	Releases []string `yaml:"releases"`
	Arches   []string `yaml:"arches"`
}

// CustomImage is a locally supplied image artifact
type CustomImage struct {
	Path         string `yaml:"path"`
	Architecture string `yaml:"architecture"`
	Filetype     string `yaml:"filetype,omitempty"` // "tgz", "ddtgz" or empty
}

// Custom image file types
const (
	FiletypeTGZ   = "tgz"
	FiletypeDDTGZ = "ddtgz"
)

// RegionNames returns the region names in sorted order
func (c *Config) RegionNames() []string {
	return sortedKeys(c.Regions)
}

// UserNames returns the user names in sorted order
func (c *Config) UserNames() []string {
	return sortedKeys(c.Users)
}

// SelectionNames returns the distributions selected for sync, sorted.
// It returns nil when no image source is configured.
func (c *Config) SelectionNames() []string {
	if c.Images == nil || c.Images.Source == nil {
		return nil
	}
	return sortedKeys(c.Images.Source.Selections)
}

// CustomImageNames returns the custom image identifiers, sorted
func (c *Config) CustomImageNames() []string {
	if c.Images == nil {
		return nil
	}
	return sortedKeys(c.Images.Custom)
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
