package tour

import (
	"bytes"
	"strings"
	"testing"

	"powderteam/oaiprofile/internal/tour"
)

func TestTour_PrintsMarkdown(t *testing.T) {
	var outBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetArgs([]string{"--plain"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("tour failed: %v", err)
	}

	if got := strings.TrimSpace(outBuf.String()); got != strings.TrimSpace(tour.Markdown()) {
		t.Errorf("unexpected tour output:\n%s", got)
	}
}
