package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"powderteam/oaiprofile/internal/history"
	"powderteam/oaiprofile/internal/logging"
	"powderteam/oaiprofile/internal/profile"
	"powderteam/oaiprofile/internal/rspec"
	"powderteam/oaiprofile/internal/tui"
)

// Output formats.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NewCommand returns the "render" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the OAI 5G request document",
		Long: `Bind the profile parameters and render the request for the OAI 5G
paired-workbench experiment.

Parameter values are layered, each layer overriding the previous one:
schema defaults, persisted config (oaiprofile config set), a --params file,
OAIPROFILE_* environment variables, command-line flags and finally the
interactive wizard (--interactive). Every value is checked against the
parameter's legal values; the first illegal value aborts the render.

Values are trimmed of surrounding whitespace, and choice values such as
--bench are lower-cased. Otherwise overrides (--ran-hash, --cn-hash,
--sdr-image) are passed through exactly as given, and an empty override
falls back to the profile default. In the wizard, clearing an override
restores the default even when an earlier layer set it.

Examples:
  # Defaults (bench_a, d740 SDR hosts, d430 CN host)
  oaiprofile render > request.xml

  # Bench B with a pinned RAN commit
  oaiprofile render --bench bench_b --ran-hash 2023.w30 --out request.xml

  # Values from a file, topology as YAML
  oaiprofile render --params params.hcl --format yaml

  # Interactive wizard
  oaiprofile render --interactive`,
		Args:         cobra.NoArgs,
		RunE:         runRender,
		SilenceUsage: true,
	}

	registerParamFlags(cmd, profile.NewContext())
	cmd.Flags().String("params", "", "Parameter file (.hcl, .yaml, .yml or .json)")
	cmd.Flags().BoolP("interactive", "i", false, "Choose parameters in an interactive wizard")
	cmd.Flags().StringP("format", "f", FormatXML, "Output format: xml, json or yaml")
	cmd.Flags().String("out", "", "Write the document to this file instead of stdout")
	cmd.Flags().Bool("no-history", false, "Do not record this render in the local history")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	start := time.Now()
	log := logging.FromContext(cmd.Context())

	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatXML && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("unsupported format %q (expected xml, json or yaml)", format)
	}
	out, _ := cmd.Flags().GetString("out")

	entry := &history.Entry{Format: format, Output: out}
	if skip, _ := cmd.Flags().GetBool("no-history"); !skip {
		defer func() { record(cmd, entry, start, err) }()
	}

	pc := profile.NewContext()
	sources, err := bindingSources(cmd)
	if err != nil {
		return err
	}
	bindings, err := pc.Bind(sources...)
	if err != nil {
		return err
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("--interactive requires a terminal")
		}
		values, err := tui.ParameterForm(pc, bindings.Map())
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Render cancelled.")
				entry = nil
				return nil
			}
			return err
		}
		bindings, err = pc.Bind(append(sources, wizardSource(values))...)
		if err != nil {
			return err
		}
	}

	for _, name := range pc.Names() {
		log.Debug("bound parameter",
			zap.String("name", name),
			zap.String("value", bindings.Get(name)),
			zap.String("origin", bindings.Origin(name)),
		)
	}

	params, err := profile.ParamsFromBindings(bindings)
	if err != nil {
		return err
	}
	entry.Bench = params.Bench.ID
	entry.SDRNodeType = params.SDRNodeType
	entry.CNNodeType = params.CNNodeType
	entry.RANHash = params.RANHash
	entry.CNHash = params.CNHash

	req, err := profile.Build(params)
	if err != nil {
		return err
	}

	doc, err := encode(req, format)
	if err != nil {
		return err
	}
	entry.Digest = history.Digest(doc)

	if out == "" {
		_, err = cmd.OutOrStdout().Write(doc)
		return err
	}
	if err := writeFile(out, doc); err != nil {
		return err
	}
	log.Info("request written", zap.String("path", out), zap.Int("bytes", len(doc)))
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s request for %s to %s\n", format, params.Bench.ID, out)
	return nil
}

func encode(req *rspec.Request, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return req.EncodeJSON()
	case FormatYAML:
		return req.EncodeYAML()
	default:
		return req.Marshal()
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// record stores the outcome of a render. History is best effort: a failure
// to record is logged, never returned.
func record(cmd *cobra.Command, entry *history.Entry, start time.Time, runErr error) {
	if entry == nil {
		return
	}
	log := logging.FromContext(cmd.Context())

	entry.Outcome = history.OutcomeSuccess
	if runErr != nil {
		entry.Outcome = history.OutcomeError
		entry.Detail = runErr.Error()
	}
	entry.DurationMs = time.Since(start).Milliseconds()

	repo, err := history.Open()
	if err != nil {
		log.Warn("history unavailable", zap.Error(err))
		return
	}
	defer repo.Close()

	if err := repo.Save(entry); err != nil {
		log.Warn("failed to record render", zap.Error(err))
	}
}
