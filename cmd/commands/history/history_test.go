package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"powderteam/oaiprofile/internal/database"
	"powderteam/oaiprofile/internal/history"
)

// seed points the database at a temp file and stores entries in it.
func seed(t *testing.T, entries ...history.Entry) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oaiprofile.db")
	database.SetPath(path)
	t.Cleanup(database.ResetPath)

	repo, err := history.OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer repo.Close()
	for i := range entries {
		if err := repo.Save(&entries[i]); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
}

func execHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return outBuf.String(), err
}

func TestList_Table(t *testing.T) {
	seed(t,
		history.Entry{Bench: "bench_a", RANHash: "1268b27c91be3a568dd352f2e9a21b3963c97432", CNHash: "v1.5.0", Format: "xml", Outcome: history.OutcomeSuccess},
		history.Entry{Bench: "bench_b", Format: "json", Outcome: history.OutcomeError, Detail: "illegal parameter value"},
	)

	stdout, err := execHistory(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"BENCH", "bench_a", "1268b27c91", "v1.5.0", "illegal parameter value"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestList_Chart(t *testing.T) {
	base := time.Now().UTC().Add(-time.Hour)
	seed(t,
		history.Entry{Timestamp: base, Bench: "bench_a", Format: "xml", Outcome: history.OutcomeSuccess, DurationMs: 40},
		history.Entry{Timestamp: base.Add(time.Minute), Bench: "bench_a", Format: "xml", Outcome: history.OutcomeSuccess, DurationMs: 10},
	)

	stdout, err := execHistory(t, "list", "--chart")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"Render time", "last: 10ms", "max: 40ms", "BENCH"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestDurations_OldestFirst(t *testing.T) {
	got := durations([]history.Entry{{DurationMs: 3}, {DurationMs: 2}, {DurationMs: 1}})
	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("durations = %v, want %v", got, want)
		}
	}
}

func TestList_FilterJSON(t *testing.T) {
	seed(t,
		history.Entry{Bench: "bench_a", Outcome: history.OutcomeSuccess},
		history.Entry{Bench: "bench_b", Outcome: history.OutcomeSuccess},
	)

	stdout, err := execHistory(t, "list", "--bench", "bench_b", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var entries []history.Entry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].Bench != "bench_b" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestList_Empty(t *testing.T) {
	seed(t)

	stdout, err := execHistory(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "No renders recorded.") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	seed(t)

	if _, err := execHistory(t, "list", "--limit", "0"); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func TestPrune(t *testing.T) {
	seed(t,
		history.Entry{Bench: "bench_a", Outcome: history.OutcomeSuccess, Timestamp: time.Now().UTC().Add(-72 * time.Hour)},
		history.Entry{Bench: "bench_a", Outcome: history.OutcomeSuccess},
	)

	stdout, err := execHistory(t, "prune", "--older-than", "2d")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(stdout, "Removed 1 history") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"72h", 72 * time.Hour, false},
		{"-1d", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
