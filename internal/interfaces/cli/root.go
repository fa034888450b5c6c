// Package cli implements the toxiscan command line interface.  The
// commands run the scoring engine in-process against the built-in curated
// tables, so no server or external store is required.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakhi-health/toxiscan/internal/application/knowledge"
	"github.com/sakhi-health/toxiscan/internal/application/resolver"
	"github.com/sakhi-health/toxiscan/internal/application/scoring"
	"github.com/sakhi-health/toxiscan/internal/domain/chemical"
	"github.com/sakhi-health/toxiscan/internal/domain/hazard"
	"github.com/sakhi-health/toxiscan/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// NewRootCommand creates the root cobra command with global flags and all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "toxiscan",
		Short:   "Chemical entity resolution and product toxicity scoring",
		Long:    "toxiscan resolves ingredient names to chemical identities and scores\nconsumer products for endocrine-disrupting chemical (EDC) exposure risk.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(
		NewScoreCommand(opts),
		NewResolveCommand(opts),
	)

	return cmd
}

// Execute runs the CLI and reports any error on stderr.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}

// newEngine wires the in-process scoring engine over the built-in curated
// registry and knowledge base.
func newEngine(opts *RootOptions) (*resolver.Resolver, *knowledge.Client, *scoring.Scorer, error) {
	logger, err := newCLILogger(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	res := resolver.New(chemical.NewBuiltinRegistry(), logger)
	kn := knowledge.NewClient(res, hazard.NewBuiltinKnowledgeBase(), logger)
	scorer := scoring.NewScorer(kn, logger)
	return res, kn, scorer, nil
}

func newCLILogger(opts *RootOptions) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.Config{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// printResult renders data as indented JSON when --output json is set,
// otherwise via the provided text renderer.
func printResult(cmd *cobra.Command, opts *RootOptions, data interface{}, text func() string) error {
	if strings.EqualFold(opts.OutputFormat, "json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	fmt.Fprint(cmd.OutOrStdout(), text())
	return nil
}
