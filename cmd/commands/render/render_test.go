package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"powderteam/oaiprofile/internal/config"
	"powderteam/oaiprofile/internal/database"
	"powderteam/oaiprofile/internal/history"
	"powderteam/oaiprofile/internal/portal"
	"powderteam/oaiprofile/internal/profile"
	"powderteam/oaiprofile/internal/rspec"
)

// setupEnv isolates config, history and environment for one test and
// returns the database path.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)

	dbPath := filepath.Join(dir, "oaiprofile.db")
	database.SetPath(dbPath)
	t.Cleanup(database.ResetPath)

	for _, name := range []string{"SDR_NODETYPE", "CN_NODETYPE", "BENCH_ID", "RAN_HASH", "CN_HASH", "SDR_IMAGE"} {
		t.Setenv(config.EnvPrefix+"_"+name, "")
	}
	return dbPath
}

// execRender runs "render" with args and returns stdout, stderr and the
// command error.
func execRender(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// componentIDs parses an XML document and returns the SDR units it requests.
func componentIDs(t *testing.T, doc string) (gnb, ue string) {
	t.Helper()
	parsed, err := rspec.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v\n%s", err, doc)
	}
	if err := parsed.Check(); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	for _, radio := range []string{"oai-wb-a1", "oai-wb-b1", "alex-3"} {
		if strings.Contains(doc, `component_id="`+radio+`"`) {
			gnb = radio
		}
	}
	for _, radio := range []string{"oai-wb-a2", "oai-wb-b2", "alex-4"} {
		if strings.Contains(doc, `component_id="`+radio+`"`) {
			ue = radio
		}
	}
	return gnb, ue
}

func TestRender_Defaults(t *testing.T) {
	setupEnv(t)

	stdout, _, err := execRender(t)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	gnb, ue := componentIDs(t, stdout)
	if gnb != "oai-wb-a1" || ue != "oai-wb-a2" {
		t.Errorf("radios = %s/%s, want oai-wb-a1/oai-wb-a2", gnb, ue)
	}
	for _, want := range []string{
		`type="request"`,
		profile.DefaultRANHash,
		`<hardware_type name="d740"`,
		`<hardware_type name="d430"`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestRender_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		env     string
		file    string
		flag    string
		wantGNB string
	}{
		{name: "config", config: "bench_b", wantGNB: "oai-wb-b1"},
		{name: "file over config", config: "bench_b", file: "bench_c", wantGNB: "alex-3"},
		{name: "env over file", config: "bench_b", file: "bench_c", env: "bench_a", wantGNB: "oai-wb-a1"},
		{name: "flag over env", env: "bench_a", flag: "bench_b", wantGNB: "oai-wb-b1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)

			if tt.config != "" {
				cfg := &config.Config{DefaultBench: tt.config}
				if err := cfg.Save(); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
			}
			if tt.env != "" {
				t.Setenv("OAIPROFILE_BENCH_ID", tt.env)
			}

			var args []string
			if tt.file != "" {
				path := filepath.Join(t.TempDir(), "params.yaml")
				if err := os.WriteFile(path, []byte("bench_id: "+tt.file+"\n"), 0o644); err != nil {
					t.Fatalf("failed to write params: %v", err)
				}
				args = append(args, "--params", path)
			}
			if tt.flag != "" {
				args = append(args, "--bench", tt.flag)
			}

			stdout, _, err := execRender(t, args...)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if gnb, _ := componentIDs(t, stdout); gnb != tt.wantGNB {
				t.Errorf("gNodeB radio = %q, want %q", gnb, tt.wantGNB)
			}
		})
	}
}

func TestRender_Overrides(t *testing.T) {
	setupEnv(t)

	const image = "urn:publicid:IDN+emulab.net+image+PowderTeam:U18LL-SRSLTE"
	stdout, _, err := execRender(t, "--ran-hash", "2023.w30", "--cn-hash", "develop", "--sdr-image", image)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{
		`deploy-oai.sh &#34;2023.w30&#34; nodeb`,
		`deploy-oai.sh &#34;develop&#34; cn`,
		image,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Contains(stdout, profile.DefaultRANHash) {
		t.Error("default RAN hash should be replaced by the override")
	}
}

func TestRender_OverrideTrimmed(t *testing.T) {
	setupEnv(t)

	stdout, _, err := execRender(t, "--ran-hash", "  abc123\t")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stdout, `deploy-oai.sh &#34;abc123&#34; nodeb`) {
		t.Error("expected the override with surrounding whitespace removed")
	}
	if long := NewCommand().Long; !strings.Contains(long, "trimmed of surrounding whitespace") {
		t.Error("help text should document trimming of overrides")
	}
}

func TestRender_ParamFileHashVerbatim(t *testing.T) {
	setupEnv(t)

	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("oai_ran_commit_hash: 00123456\n"), 0o644); err != nil {
		t.Fatalf("failed to write params: %v", err)
	}
	stdout, _, err := execRender(t, "--params", path)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stdout, `deploy-oai.sh &#34;00123456&#34; nodeb`) {
		t.Errorf("expected the file's hash verbatim in the nodeb deploy command")
	}
}

func TestWizardSource_ClearedAnswerRestoresDefault(t *testing.T) {
	pc := profile.NewContext()
	b, err := pc.Bind(
		portal.Values("flags", map[string]string{profile.ParamRANHash: "abc123", profile.ParamBenchID: "bench_c"}),
		wizardSource(map[string]string{profile.ParamRANHash: "", profile.ParamBenchID: "bench_c"}),
	)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	params, err := profile.ParamsFromBindings(b)
	if err != nil {
		t.Fatalf("ParamsFromBindings failed: %v", err)
	}
	if params.RANHash != profile.DefaultRANHash {
		t.Errorf("RANHash = %q, want default %q", params.RANHash, profile.DefaultRANHash)
	}
	if params.Bench.ID != "bench_c" {
		t.Errorf("bench = %q, want bench_c", params.Bench.ID)
	}
}

func TestRender_IllegalValue(t *testing.T) {
	dbPath := setupEnv(t)

	stdout, _, err := execRender(t, "--bench", "bench_z")
	if !errors.Is(err, portal.ErrIllegalValue) {
		t.Fatalf("expected ErrIllegalValue, got %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no document on failure, got %q", stdout)
	}

	repo, err := history.OpenAt(dbPath)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Outcome != history.OutcomeError {
		t.Fatalf("expected one error entry, got %+v", entries)
	}
}

func TestRender_JSONToFile(t *testing.T) {
	dbPath := setupEnv(t)
	out := filepath.Join(t.TempDir(), "out", "request.json")

	_, stderr, err := execRender(t, "--format", "json", "--out", out, "--bench", "bench_b")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stderr, out) {
		t.Errorf("expected confirmation naming %s, got %q", out, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var topo rspec.Topology
	if err := json.Unmarshal(data, &topo); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	var ids []string
	for _, n := range topo.Nodes {
		ids = append(ids, n.ClientID)
	}
	want := []string{profile.NodeCN, profile.NodeGNB, profile.NodeGNBSDR, profile.NodeUE, profile.NodeUESDR}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	repo, err := history.OpenAt(dbPath)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := entries[0]
	if got.Bench != "bench_b" || got.Format != "json" || got.Output != out || got.Digest != history.Digest(data) {
		t.Errorf("unexpected history entry: %+v", got)
	}
}

func TestRender_NoHistory(t *testing.T) {
	dbPath := setupEnv(t)

	if _, _, err := execRender(t, "--format", "yaml", "--no-history"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := os.Stat(dbPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no history database, stat err = %v", err)
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	setupEnv(t)

	_, _, err := execRender(t, "--format", "toml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
