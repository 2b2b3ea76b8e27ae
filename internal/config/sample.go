package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// APIKeyPlaceholder marks where RenderSample substitutes a region API key
const APIKeyPlaceholder = "{{APIKEY}}"

// SampleConfig is a complete meta-maas.yaml showing every section.
const SampleConfig = `regions:
  region1:
    url: http://region1:5240/MAAS
    apikey: "{{APIKEY}}"
  region2:
    url: http://region2:5240/MAAS
    apikey: "{{APIKEY}}"
users:
  admin1:
    email: admin1@localhost
    password: password
    is_admin: True
  user1:
    email: user1@localhost
    password: password
images:
  source:
    url: http://images.maas.io/ephemeral-v3/daily/
    keyring_filename: /usr/share/keyrings/ubuntu-cloudimage-keyring.gpg
    selections:
      ubuntu:
        releases:
          - precise
          - trusty
          - xenial
        arches:
          - amd64
          - i386
          - arm64
  custom:
    custom-tgz:
      architecture: amd64/generic
      path: /path/to/image/file.tgz
    custom-ddtgz:
      architecture: amd64/generic
      path: /path/to/image/file.dd.tgz
      filetype: ddtgz
`

// ErrExists is returned by WriteSample when the target exists and force is not set
var ErrExists = errors.New("config file already exists")

// RenderSample returns SampleConfig with apikey in place of every API key
// placeholder. An empty apikey leaves the placeholder in place.
func RenderSample(apikey string) string {
	if apikey == "" {
		return SampleConfig
	}
	// The placeholder sits inside double quotes.
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(apikey)
	return strings.ReplaceAll(SampleConfig, APIKeyPlaceholder, escaped)
}

// WriteSample writes the rendered sample to path. An existing file is only
// replaced when force is set; a directory is never replaced.
func WriteSample(path, apikey string, force bool) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s is a directory", path)
	case err == nil && !force:
		return fmt.Errorf("%w: %s", ErrExists, path)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".meta-maas-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.WriteString(RenderSample(apikey)); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// Holds API keys and passwords.
	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
