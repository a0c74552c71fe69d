package paramfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"powderteam/oaiprofile/internal/portal"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	want := map[string]string{
		"bench_id":            "bench_b",
		"sdr_nodetype":        "d430",
		"oai_cn_commit_hash":  "v1.5.0",
		"oai_ran_commit_hash": "2023",
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "hcl",
			file: "params.hcl",
			content: `
bench_id            = "bench_b"
sdr_nodetype        = "d430"
oai_cn_commit_hash  = "v1.5.0"
oai_ran_commit_hash = 2023
`,
		},
		{
			name: "yaml",
			file: "params.yaml",
			content: `bench_id: bench_b
sdr_nodetype: d430
oai_cn_commit_hash: v1.5.0
oai_ran_commit_hash: 2023
`,
		},
		{
			name:    "json",
			file:    "params.json",
			content: `{"bench_id": "bench_b", "sdr_nodetype": "d430", "oai_cn_commit_hash": "v1.5.0", "oai_ran_commit_hash": 2023}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_NumericLiteralsKeptAsWritten(t *testing.T) {
	want := map[string]string{
		"oai_ran_commit_hash": "00123456",
		"oai_cn_commit_hash":  "2023.10",
		"sdr_compute_image":   "1234e56",
	}

	tests := []struct {
		name    string
		file    string
		content string
		want    map[string]string
	}{
		{
			name: "hcl",
			file: "params.hcl",
			content: `
oai_ran_commit_hash = 00123456
oai_cn_commit_hash  = 2023.10
sdr_compute_image   = 1234e56
`,
			want: want,
		},
		{
			name: "yaml",
			file: "params.yaml",
			content: `oai_ran_commit_hash: 00123456
oai_cn_commit_hash: 2023.10
sdr_compute_image: 1234e56
`,
			want: want,
		},
		{
			name:    "json",
			file:    "params.json",
			content: `{"oai_ran_commit_hash": 12345678901234567890, "oai_cn_commit_hash": 2023.10, "sdr_compute_image": 1234e56}`,
			want: map[string]string{
				"oai_ran_commit_hash": "12345678901234567890",
				"oai_cn_commit_hash":  "2023.10",
				"sdr_compute_image":   "1234e56",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_BoolsAndNulls(t *testing.T) {
	tests := map[string]string{
		"params.hcl":  "bench_id = true\nsdr_nodetype = null\n",
		"params.yaml": "bench_id: true\nsdr_nodetype: ~\n",
		"params.json": `{"bench_id": true, "sdr_nodetype": null}`,
	}
	want := map[string]string{"bench_id": "true"}
	for file, content := range tests {
		t.Run(file, func(t *testing.T) {
			got, err := Load(writeFile(t, file, content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_HCLRejectsExpressions(t *testing.T) {
	if _, err := Load(writeFile(t, "params.hcl", "oai_ran_commit_hash = 1 + 2\n")); err == nil {
		t.Fatal("expected error for a computed value")
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	got, err := Load(writeFile(t, "params.yaml", ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values, got %v", got)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeFile(t, "params.toml", `bench_id = "bench_a"`))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RejectsNested(t *testing.T) {
	tests := map[string]string{
		"params.hcl":  `bench_id = ["bench_a", "bench_b"]`,
		"params.yaml": "bench_id:\n  - bench_a\n",
		"params.json": `{"bench_id": {"id": "bench_a"}}`,
	}
	for file, content := range tests {
		t.Run(file, func(t *testing.T) {
			if _, err := Load(writeFile(t, file, content)); err == nil {
				t.Fatal("expected error for non-scalar value")
			}
		})
	}
}

func TestLoad_InvalidSyntax(t *testing.T) {
	tests := map[string]string{
		"params.hcl":  `bench_id = `,
		"params.yaml": "bench_id: [",
		"params.json": `{bench_id}`,
	}
	for file, content := range tests {
		t.Run(file, func(t *testing.T) {
			if _, err := Load(writeFile(t, file, content)); err == nil {
				t.Fatal("expected syntax error")
			}
		})
	}
}

func TestSource_BindsThroughPortal(t *testing.T) {
	pc := portal.NewContext()
	pc.MustDefineParameter(portal.Parameter{
		Name:    "bench_id",
		Default: "bench_a",
		LegalValues: []portal.LegalValue{
			{Value: "bench_a"},
			{Value: "bench_b"},
		},
	})

	path := writeFile(t, "params.yml", "bench_id: BENCH_B\n")
	b, err := pc.Bind(Source{Path: path})
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if got := b.Get("bench_id"); got != "bench_b" {
		t.Errorf("bench_id = %q, want bench_b", got)
	}
	if got := b.Origin("bench_id"); got != path {
		t.Errorf("origin = %q, want %q", got, path)
	}
}
