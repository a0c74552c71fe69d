package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"powderteam/oaiprofile/internal/logging"
	"powderteam/oaiprofile/internal/rspec"
	"powderteam/oaiprofile/internal/tui"
)

// NewCommand returns the "validate" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check rendered request documents",
		Long: `Parse one or more XML request documents and check them: the document is
a request, client ids are unique, every link joins exactly two interfaces,
no interface is on two links, and linked addresses share a subnet.

Files are checked in parallel; results are reported in argument order.

Examples:
  oaiprofile validate request.xml
  oaiprofile validate bench-a.xml bench-b.xml -o json`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runValidate,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// Result is the outcome of checking one file.
type Result struct {
	Path    string         `json:"path"`
	Valid   bool           `json:"valid"`
	Summary *rspec.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" && output != "" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	var results []Result
	check := func(ctx context.Context) error {
		var err error
		results, err = CheckFiles(ctx, args)
		return err
	}

	var err error
	if len(args) > 1 && term.IsTerminal(int(os.Stderr.Fd())) {
		err = tui.RunWithSpinner(cmd.Context(), fmt.Sprintf("Checking %d requests...", len(args)), check)
	} else {
		err = check(cmd.Context())
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Valid {
			failed++
		}
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		printResults(cmd, results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d request(s) failed validation", failed, len(results))
	}
	return nil
}

// CheckFiles parses and checks every file in parallel. A file that fails
// to read, parse or check yields an invalid Result, not an error; the
// returned error is only set when ctx is cancelled.
func CheckFiles(ctx context.Context, paths []string) ([]Result, error) {
	log := logging.FromContext(ctx)
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path)
			log.Debug("checked request", zap.String("path", path), zap.Bool("valid", results[i].Valid))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(path string) Result {
	r := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	doc, err := rspec.Parse(data)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	summary := doc.Summary()
	r.Summary = &summary
	if err := doc.Check(); err != nil {
		r.Error = err.Error()
		return r
	}
	r.Valid = true
	return r
}

func printResults(cmd *cobra.Command, results []Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSTATUS\tNODES\tINTERFACES\tLINKS\tSERVICES")
	for _, r := range results {
		status := "ok"
		if !r.Valid {
			status = "FAIL"
		}
		if r.Summary == nil {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t-\n", r.Path, status)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n", r.Path, status,
			r.Summary.Nodes, r.Summary.Interfaces, r.Summary.Links, r.Summary.Services)
	}
	w.Flush()

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", r.Path, r.Error)
		}
	}
}
