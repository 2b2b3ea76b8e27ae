// Package validation provides advisory checks on values that the
// configuration schema accepts as plain strings. A value failing these
// checks still loads; callers report the findings as warnings.
package validation

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/nvandessel/metamaas/internal/config"
)

// maxEmailLength is the maximum allowed length for email addresses per RFC 5321.
const maxEmailLength = 254

// emailRegexp matches basic email format: local@domain.
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?$`)

// Finding is a single advisory result
type Finding struct {
	Field   string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// ValidateRegionURL checks that a region URL is an absolute http(s) URL
// with a host.
func ValidateRegionURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL must not be empty")
	}
	if strings.ContainsAny(raw, " \t\n\r") {
		return fmt.Errorf("URL must not contain whitespace: %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https: %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %q", raw)
	}
	return nil
}

// ValidateAPIKey checks that key has the consumer:token:secret shape of a
// MAAS API key and is not the sample placeholder.
func ValidateAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}
	if key == config.APIKeyPlaceholder {
		return fmt.Errorf("API key is still the %s placeholder", config.APIKeyPlaceholder)
	}
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return fmt.Errorf("API key must have three colon-separated parts, got %d", len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("API key has an empty part")
		}
	}
	return nil
}

// ValidateEmail rejects: empty, >254 chars, leading hyphen, control chars, missing @.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email must not be empty")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("email exceeds maximum length of %d characters", maxEmailLength)
	}
	if strings.HasPrefix(email, "-") {
		return fmt.Errorf("email must not start with a hyphen: %q", email)
	}
	for _, r := range email {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("email must not contain control characters: %q", email)
		}
	}
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}

// ValidateImagePath checks that p is an absolute, already-clean path.
func ValidateImagePath(p string) error {
	if p == "" {
		return fmt.Errorf("path must not be empty")
	}
	if !path.IsAbs(p) {
		return fmt.Errorf("path must be absolute: %q", p)
	}
	if path.Clean(p) != p {
		return fmt.Errorf("path is not clean (expected %q): %q", path.Clean(p), p)
	}
	return nil
}

// Check runs every advisory check over cfg. Findings are ordered by
// section, then by name.
func Check(cfg *config.Config) []Finding {
	var findings []Finding
	add := func(field string, err error) {
		if err != nil {
			findings = append(findings, Finding{Field: field, Message: err.Error()})
		}
	}

	for _, name := range cfg.RegionNames() {
		r := cfg.Regions[name]
		add("regions."+name+".url", ValidateRegionURL(r.URL))
		add("regions."+name+".apikey", ValidateAPIKey(r.APIKey))
	}

	for _, name := range cfg.UserNames() {
		u := cfg.Users[name]
		add("users."+name+".email", ValidateEmail(u.Email))
		if u.Password == "" {
			add("users."+name+".password", fmt.Errorf("password is empty"))
		}
	}

	if cfg.Images != nil && cfg.Images.Source != nil {
		src := cfg.Images.Source
		add("images.source.url", ValidateRegionURL(src.URL))
		add("images.source.keyring_filename", ValidateImagePath(src.KeyringFilename))
	}

	for _, name := range cfg.CustomImageNames() {
		img := cfg.Images.Custom[name]
		add("images.custom."+name+".path", ValidateImagePath(img.Path))
		if img.Filetype == config.FiletypeTGZ && strings.HasSuffix(img.Path, ".dd.tgz") {
			add("images.custom."+name+".filetype", fmt.Errorf("path looks like a ddtgz image but filetype is %q", img.Filetype))
		}
	}

	return findings
}
