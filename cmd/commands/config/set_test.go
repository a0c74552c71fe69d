package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"powderteam/oaiprofile/internal/config"
)

// setupTestConfig points the config package at a temp file and returns its path.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execConfig creates the config command, wires up output buffers, runs with the
// given args, and returns what was written to stdout and stderr.
func execConfig(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestSet_DefaultBench(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "set", "default-bench", "BENCH_B")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, `"bench_b"`) {
		t.Errorf("expected confirmation with bench id, got: %s", stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultBench != "bench_b" {
		t.Errorf("expected DefaultBench %q, got %q", "bench_b", cfg.DefaultBench)
	}
}

func TestSet_IllegalValue(t *testing.T) {
	path := setupTestConfig(t)

	_, stderr := execConfig(t, "set", "cn-nodetype", "m510")

	if !strings.Contains(stderr, "illegal parameter value") {
		t.Errorf("expected illegal value error, got: %s", stderr)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.CNNodeType != "" {
		t.Errorf("illegal value should not be saved, got %q", cfg.CNNodeType)
	}
}

func TestSet_LogLevel(t *testing.T) {
	setupTestConfig(t)

	if _, stderr := execConfig(t, "set", "log-level", "loud"); !strings.Contains(stderr, "invalid log level") {
		t.Errorf("expected invalid log level error, got: %s", stderr)
	}
	if _, stderr := execConfig(t, "set", "log-level", "Debug"); stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestSet_Unset(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{SDRNodeType: "d430"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "set", "sdr-nodetype", "")
	if !strings.Contains(stdout, "sdr-nodetype unset") {
		t.Errorf("expected unset confirmation, got: %s", stdout)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.SDRNodeType != "" {
		t.Errorf("expected SDRNodeType unset, got %q", cfg.SDRNodeType)
	}
}

func TestSet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "set", "bogus-key", "value")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
