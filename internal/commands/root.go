package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/FrenchMajesty/turbo-kit/config"
	"github.com/FrenchMajesty/turbo-kit/dispatch"
	"github.com/FrenchMajesty/turbo-kit/utils/logger"
)

// RootOptions holds the flags of the root command
type RootOptions struct {
	ConfigPath string
	Requests   int
}

// NewRootCommand creates the dispatch simulator command
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "turbo-kit",
		Short: "Simulate weighted load distribution with retries",
		Long: `Dispatches simulated requests across weighted upstreams, retrying
transient failures, and reports expected versus observed traffic.

Configuration is read from defaults, then a YAML file, then TURBOKIT_
environment variables.`,
		Example: `  # Use turbo-kit.yaml from the working directory, if present
  turbo-kit

  # Explicit file, overriding the request count
  turbo-kit --config ./sim.yaml --requests 1000

  # Configuration from stdin
  cat sim.yaml | turbo-kit --config -`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", `YAML configuration file, "-" to read from stdin (default: `+config.DefaultFile+` if present)`)
	cmd.Flags().IntVarP(&opts.Requests, "requests", "n", 0, "Number of requests to dispatch, overrides the configuration")

	return cmd
}

func runRoot(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("requests") {
		if opts.Requests < 0 {
			return fmt.Errorf("--requests must not be negative, got %d", opts.Requests)
		}
		cfg.Dispatch.Requests = opts.Requests
	}

	log, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	dispatcher, err := dispatch.FromConfig(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "turbo-kit dispatch simulator")
	fmt.Fprintln(out, "============================")
	fmt.Fprintf(out, "strategy=%s requests=%d concurrency=%d failure_rate=%.2f\n\n",
		cfg.Dispatch.Strategy, cfg.Dispatch.Requests, cfg.Dispatch.Concurrency, cfg.Dispatch.FailureRate)

	fmt.Fprintln(out, "Expected distribution:")
	for _, p := range dispatcher.Probabilities() {
		fmt.Fprintf(out, "  %-12s %6.2f%%\n", p.Item.Name, p.Percent)
	}

	logger.Info(log, "dispatch: starting run", map[string]any{
		"requests": cfg.Dispatch.Requests,
		"strategy": cfg.Dispatch.Strategy,
	})
	report := dispatcher.Run(cmd.Context(), cfg.Dispatch.Requests)

	fmt.Fprintf(out, "\nResults: %d succeeded, %d failed (%d exhausted, %d fatal, %d unrouted)\n",
		report.Succeeded, report.Failed, report.Exhausted, report.Fatal, report.Unrouted)
	fmt.Fprintln(out, "Upstreams by traffic:")
	for _, s := range report.Ranked() {
		fmt.Fprintf(out, "  %-12s hits=%-5d observed=%6.2f%% expected=%6.2f%% failed=%-4d attempts=%d\n",
			s.Name, s.Hits, s.Observed(report.Requests), s.Expected, s.Failed, s.Attempts)
	}

	return nil
}

func loadConfig(path string, stdin io.Reader) (*config.Config, error) {
	if path != "-" {
		return config.Load(path)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration from stdin: %w", err)
	}
	return config.LoadBytes(data)
}
