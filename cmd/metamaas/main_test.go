package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvandessel/metamaas/internal/config"
	"github.com/nvandessel/metamaas/internal/logging"
	"github.com/nvandessel/metamaas/internal/ui"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	configPath, verbose, nonInteractive = "", false, false
	validateStrict = false
	showReveal, showNoPager = false, false
	initAPIKey, initForce = "", false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--non-interactive"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		ui.SetOutput(os.Stdout, os.Stderr)
		ui.SetNonInteractive(false)
		logging.Setup(false, io.Discard)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSample(t *testing.T, apikey string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if err := config.WriteSample(path, apikey, false); err != nil {
		t.Fatalf("WriteSample() failed: %v", err)
	}
	return path
}

func TestConfigValidate(t *testing.T) {
	path := writeSample(t, "key")

	out, _, err := runCLI(t, "config", "validate", "--config", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}

	for _, want := range []string{"Configuration is valid", path, "Regions:       2", "Users:         2", "Selections:    1", "Custom images: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigValidateWarnings(t *testing.T) {
	path := writeSample(t, "")

	_, errOut, err := runCLI(t, "config", "validate", "-c", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(errOut, "regions.region1.apikey") {
		t.Errorf("stderr should warn about the placeholder API key:\n%s", errOut)
	}

	_, _, err = runCLI(t, "config", "validate", "-c", path, "--strict")
	if err == nil {
		t.Fatal("config validate --strict should fail on warnings")
	}
	if got := exitCode(err); got != ExitGeneralError {
		t.Errorf("exitCode() = %d, want %d", got, ExitGeneralError)
	}

	clean := writeSample(t, "consumer:token:secret")
	if _, _, err := runCLI(t, "config", "validate", "-c", clean, "--strict"); err != nil {
		t.Errorf("config validate --strict failed on a clean config: %v", err)
	}
}

func TestConfigValidateFailures(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("users: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"Missing file", filepath.Join(t.TempDir(), "missing.yaml"), ExitNotFound},
		{"Invalid file", invalid, ExitLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "config", "validate", "-c", tt.path)
			if err == nil {
				t.Fatal("config validate should fail")
			}
			if got := exitCode(err); got != tt.wantCode {
				t.Errorf("exitCode() = %d, want %d (%v)", got, tt.wantCode, err)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q should name %s", err, tt.path)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	path := writeSample(t, "very-secret")

	out, _, err := runCLI(t, "config", "show", "-c", path)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if strings.Contains(out, "very-secret") {
		t.Error("config show should mask API keys")
	}
	if !strings.Contains(out, config.RedactedValue) {
		t.Error("config show should print the redaction marker")
	}
	if !strings.Contains(out, "http://region1:5240/MAAS") {
		t.Error("config show should print region URLs")
	}

	out, _, err = runCLI(t, "config", "show", "-c", path, "--reveal")
	if err != nil {
		t.Fatalf("config show --reveal failed: %v", err)
	}
	if !strings.Contains(out, "very-secret") {
		t.Error("config show --reveal should print API keys")
	}
}

func TestConfigPath(t *testing.T) {
	path := writeSample(t, "")

	out, _, err := runCLI(t, "config", "path", "-c", path)
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), path)
	}
}

func TestConfigPathDiscovery(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	t.Setenv("HOME", t.TempDir())

	_, errOut, err := runCLI(t, "config", "path")
	if !config.IsNotFound(err) {
		t.Fatalf("config path error = %v, want not found", err)
	}
	if !strings.Contains(errOut, filepath.Join(cwd, config.ConfigFileName)) {
		t.Errorf("stderr should list the searched locations:\n%s", errOut)
	}

	if _, _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	out, _, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if got := strings.TrimSpace(out); filepath.Base(got) != config.ConfigFileName {
		t.Errorf("config path = %q, want the working directory config", got)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sample.yaml")

	out, _, err := runCLI(t, "config", "init", target, "--apikey", "abc123")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote sample config") {
		t.Errorf("unexpected output:\n%s", out)
	}

	cfg, err := config.LoadFile(target)
	if err != nil {
		t.Fatalf("written sample does not load: %v", err)
	}
	if cfg.Regions["region2"].APIKey != "abc123" {
		t.Errorf("APIKey = %s, want abc123", cfg.Regions["region2"].APIKey)
	}

	_, _, err = runCLI(t, "config", "init", target)
	if !errors.Is(err, config.ErrExists) {
		t.Fatalf("second init error = %v, want ErrExists", err)
	}

	if _, _, err := runCLI(t, "config", "init", target, "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	cfg, err = config.LoadFile(target)
	if err != nil {
		t.Fatalf("overwritten sample does not load: %v", err)
	}
	if cfg.Regions["region2"].APIKey != config.APIKeyPlaceholder {
		t.Errorf("APIKey = %s, want placeholder after forced init", cfg.Regions["region2"].APIKey)
	}
}

func TestRegions(t *testing.T) {
	path := writeSample(t, "")

	out, _, err := runCLI(t, "regions", "-c", path)
	if err != nil {
		t.Fatalf("regions failed: %v", err)
	}
	for _, want := range []string{"Regions (2)", "region1", "http://region2:5240/MAAS"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

const stubPath = "/stub/meta-maas.yaml"

type stubLoader struct {
	cfg       *config.Config
	err       error
	requested *[]string
}

func (s stubLoader) record(explicitPath string) {
	if s.requested != nil {
		*s.requested = append(*s.requested, explicitPath)
	}
}

func (s stubLoader) Load(explicitPath string) (*config.Config, error) {
	s.record(explicitPath)
	return s.cfg, s.err
}

func (s stubLoader) LoadResolved(explicitPath string) (*config.Config, string, error) {
	s.record(explicitPath)
	if s.err != nil {
		return nil, "", s.err
	}
	return s.cfg, stubPath, nil
}

func (s stubLoader) Resolve(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return stubPath, nil
}

func (s stubLoader) Candidates() []string {
	return []string{"/stub/cwd/meta-maas.yaml", "/stub/home/meta-maas.yaml"}
}

func useLoader(t *testing.T, l config.ConfigLoader) {
	t.Helper()
	saved := loader
	loader = l
	t.Cleanup(func() { loader = saved })
}

func TestRegionsEmpty(t *testing.T) {
	useLoader(t, stubLoader{cfg: &config.Config{Regions: map[string]config.Region{}}})

	_, errOut, err := runCLI(t, "regions")
	if err != nil {
		t.Fatalf("regions failed: %v", err)
	}
	if !strings.Contains(errOut, "No regions configured") {
		t.Errorf("stderr should warn about empty regions:\n%s", errOut)
	}
}

func TestLoadPassesRequestedPath(t *testing.T) {
	var requested []string
	useLoader(t, stubLoader{
		cfg:       &config.Config{Regions: map[string]config.Region{"r1": {URL: "http://r1"}}},
		requested: &requested,
	})

	out, _, err := runCLI(t, "regions")
	if err != nil {
		t.Fatalf("regions failed: %v", err)
	}
	if len(requested) != 1 || requested[0] != "" {
		t.Errorf("loader requested %q, want a single discovery load", requested)
	}
	if !strings.Contains(out, "r1") {
		t.Errorf("output missing region:\n%s", out)
	}
}

func TestConfigPathListsLoaderCandidates(t *testing.T) {
	useLoader(t, stubLoader{err: &config.ConfigError{Kind: config.KindNotFound}})

	_, errOut, err := runCLI(t, "config", "path")
	if !config.IsNotFound(err) {
		t.Fatalf("config path error = %v, want not found", err)
	}
	for _, want := range []string{"/stub/cwd/meta-maas.yaml", "/stub/home/meta-maas.yaml"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %s:\n%s", want, errOut)
		}
	}
}

func TestConfigValidateStrictLogsWarning(t *testing.T) {
	path := writeSample(t, "")

	_, errOut, err := runCLI(t, "config", "validate", "-c", path, "--strict")
	if err == nil {
		t.Fatal("config validate --strict should fail on warnings")
	}
	if !strings.Contains(errOut, "strict validation rejected config") {
		t.Errorf("stderr should log the strict rejection:\n%s", errOut)
	}
}

func TestVerboseLogsResolution(t *testing.T) {
	path := writeSample(t, "")

	_, errOut, err := runCLI(t, "-v", "config", "validate", "-c", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(errOut, "resolved config") {
		t.Errorf("verbose output should log the resolved path:\n%s", errOut)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "metamaas dev") {
		t.Errorf("unexpected version output:\n%s", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s failed: %v", shell, err)
			}
			if !strings.Contains(strings.ToLower(out), shell) {
				t.Errorf("completion %s output does not mention the shell", shell)
			}
		})
	}

	if _, _, err := runCLI(t, "completion", "powershell"); err == nil {
		t.Error("expected error for invalid shell argument, got nil")
	}
}

func TestExitCode(t *testing.T) {
	nf := &config.ConfigError{Kind: config.KindNotFound}
	lf := &config.ConfigError{Kind: config.KindLoadFailed, Cause: errors.New("bad")}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"not found", nf, ExitNotFound},
		{"load failed", lf, ExitLoadFailed},
		{"wrapped load failed", fmt.Errorf("context: %w", lf), ExitLoadFailed},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
