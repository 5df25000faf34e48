package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"langtagger/internal/config"
	"langtagger/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	ffmpeg     string
}

// setupCLITestEnv writes a local-backend config whose ffmpeg is a stub and
// whose API bind has no listener, so every pass runs in-process.
func setupCLITestEnv(t *testing.T, outputs map[string]string) *cliTestEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := testsupport.NewConfig(t, testsupport.WithFFmpegOutputs(outputs))
	cfg.API.Bind = "127.0.0.1:1"
	cfg.Logging.Format = "json"
	for _, dir := range []string{cfg.Library.MoviesDir, cfg.Library.TVDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: path, ffmpeg: cfg.FFmpeg.Binary}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
