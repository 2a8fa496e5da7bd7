package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/cncf/automation/alumni-dashboard/pkg/alumni"
	"github.com/cncf/automation/alumni-dashboard/pkg/config"
	"github.com/cncf/automation/alumni-dashboard/pkg/dashboard"
	"github.com/cncf/automation/alumni-dashboard/pkg/distribution"
	"github.com/cncf/automation/alumni-dashboard/pkg/mcp"
)

// options holds the flags shared by every subcommand.
type options struct {
	config   string
	dataFile string
	dataURL  string
	records  int
	seed     int64

	search     string
	batch      string
	geography  string
	workStatus string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "alumni-dashboard",
		Long:          "Explore alumni statistics and a searchable directory of alumni records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			buildInfo, _ := debug.ReadBuildInfo()
			klog.FromContext(cmd.Context()).V(2).Info("starting alumni-dashboard", "buildInfo", buildInfo)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(
		&opts.config,
		"config",
		"",
		"Path to a YAML configuration file",
	)
	flags.StringVar(
		&opts.dataFile,
		"data-file",
		"",
		"Path to an alumni dataset YAML file (default: built-in dataset)",
	)
	flags.StringVar(
		&opts.dataURL,
		"data-url",
		"",
		"URL of an alumni dataset YAML file",
	)
	flags.IntVar(
		&opts.records,
		"records",
		alumni.DefaultCount,
		"Number of directory records to generate",
	)
	flags.Int64Var(
		&opts.seed,
		"seed",
		0,
		"Seed for record generation (0 seeds from the clock)",
	)

	goflags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goflags)
	flags.AddGoFlagSet(goflags)

	cmd.AddCommand(
		newRenderCommand(opts),
		newStatsCommand(opts),
		newDirectoryCommand(opts),
		newBrowseCommand(opts),
		newServeCommand(opts),
	)
	return cmd
}

func addCriteriaFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.search, "search", "", "Case-insensitive text matched against name, batch, state and big bet")
	flags.StringVar(&opts.batch, "batch", "", "Only show this batch number")
	flags.StringVar(&opts.geography, "state", "", "Only show this state")
	flags.StringVar(&opts.workStatus, "work-status", "", "Only show this work status")
}

func (o *options) criteria() alumni.Criteria {
	return alumni.Criteria{
		Search:     o.search,
		Batch:      o.batch,
		Geography:  o.geography,
		WorkStatus: o.workStatus,
	}
}

// settings reads the config file and lays explicitly set flags over it.
func (o *options) settings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.config)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-file") {
		cfg.DataFile = o.dataFile
	}
	if flags.Changed("data-url") {
		cfg.DataURL = o.dataURL
	}
	if flags.Changed("records") {
		cfg.Records = o.records
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadSnapshot reads the dataset and generates the directory.
func loadSnapshot(ctx context.Context, cfg config.Config) (*mcp.Snapshot, error) {
	log := klog.FromContext(ctx)

	ds := distribution.Default()
	if src := cfg.Source(); !src.IsZero() {
		loaded, err := distribution.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		ds = loaded
	}

	records := alumni.NewGenerator(ds, cfg.GeneratorOptions()...).Generate(cfg.Records)
	log.V(2).Info("generated directory", "records", len(records), "seed", cfg.Seed)
	return &mcp.Snapshot{Dataset: ds, Records: records}, nil
}

// controller builds the dashboard state for a one-shot command and applies
// the criteria flags.
func (o *options) controller(cmd *cobra.Command) (*dashboard.Controller, error) {
	cfg, err := o.settings(cmd)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	c := dashboard.New(snap.Dataset, snap.Records)
	c.Apply(o.criteria())
	return c, nil
}
