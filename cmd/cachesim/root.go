package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yigitbektasgursoy/cache-simulator/internal/config"
	"github.com/yigitbektasgursoy/cache-simulator/internal/errs"
	"github.com/yigitbektasgursoy/cache-simulator/internal/metrics"
	"github.com/yigitbektasgursoy/cache-simulator/internal/obslog"
	"github.com/yigitbektasgursoy/cache-simulator/internal/obsmetrics"
	"github.com/yigitbektasgursoy/cache-simulator/internal/report"
	"github.com/yigitbektasgursoy/cache-simulator/internal/sim"
)

var (
	flagCompare     bool
	flagCSVPath     string
	flagVerbose     bool
	flagMetricsAddr string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cachesim <config.yaml> [config2.yaml ...]",
		Short: "Replay memory traces against cache hierarchy configurations",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCmd,
	}

	registerFlags(cmd.Flags())

	return cmd
}

// registerFlags takes the *pflag.FlagSet explicitly, the same way a
// multi-command cobra tree shares flag registration across subcommands
// without each one reaching back into its parent *cobra.Command.
func registerFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&flagCompare, "compare", false, "run every config and print a side-by-side comparison table")
	fs.StringVar(&flagCSVPath, "csv", "", "also write the comparison as CSV to this path")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&flagMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
}

func runCmd(cmd *cobra.Command, args []string) error {
	obslog.SetVerbose(flagVerbose)

	var exporter *obsmetrics.Exporter
	if flagMetricsAddr != "" {
		exporter = obsmetrics.New()
		if err := exporter.Serve(flagMetricsAddr); err != nil {
			return err
		}
	}

	var reports []metrics.Report
	var failed bool

	for _, path := range args {
		r, err := runOne(path)
		if err != nil {
			obslog.L.WithField("path", path).WithError(err).Error("run failed")
			failed = true
			if !flagCompare {
				return err
			}
			continue
		}
		reports = append(reports, r)
		if exporter != nil {
			exporter.Publish(r)
		}
	}

	if flagCompare {
		fmt.Fprintln(cmd.OutOrStdout(), report.Table(reports))
	} else {
		for _, r := range reports {
			fmt.Fprintln(cmd.OutOrStdout(), report.Table([]metrics.Report{r}))
		}
	}

	if flagCSVPath != "" {
		csv, err := report.CSV(reports)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagCSVPath, []byte(csv), 0o644); err != nil {
			return errs.WrapConfigError(flagCSVPath, err)
		}
	}

	if failed {
		return fmt.Errorf("one or more runs failed")
	}
	return nil
}

// runOne loads, builds, and replays a single config file end to end.
func runOne(path string) (metrics.Report, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return metrics.Report{}, err
	}

	h, m, producer, err := cfg.Build()
	if err != nil {
		return metrics.Report{}, err
	}

	return sim.Run(cfg.Name, producer, h, m), nil
}

func run() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
