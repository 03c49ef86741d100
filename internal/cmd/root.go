package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"log-analyzer/internal/app"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/svcerrors"

	"github.com/spf13/cobra"
)

const (
	exitOK    = 0
	exitUsage = 2
)

const (
	codeInvalidConfig    = "CLI_1000"
	codeInitFailed       = "CLI_9000"
	codeInternalRunError = "CLI_9001"
)

// reportFlag rejects unknown report names while flags are parsed, before any file is touched.
type reportFlag struct {
	value    string
	registry *reports.Registry
}

func (f *reportFlag) String() string {
	return f.value
}

func (f *reportFlag) Set(value string) error {
	if !f.registry.Has(value) {
		return fmt.Errorf("invalid choice: %q (choose from %s)", value, strings.Join(f.registry.Names(), ", "))
	}
	f.value = value
	return nil
}

func (f *reportFlag) Type() string {
	return "string"
}

type rootOptions struct {
	report     reportFlag
	csvPath    string
	configPath string
	logLevel   string
	workers    int
}

// Execute runs the CLI with args and returns the process exit code.
//
// The rendered report goes to stdout. A missing input file is reported on stdout as
// well; usage errors, other failures and logs go to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	registry := reports.DefaultRegistry()
	command := newRootCommand(registry, stdout, stderr)
	command.SetArgs(args)
	command.SetOut(stdout)
	command.SetErr(stderr)

	err := command.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok {
		// flag and argument errors raised by cobra itself
		fmt.Fprintf(stderr, "Error: %s\n%s", err, command.UsageString())
		return exitUsage
	}

	if svcErr.IsNotFound() {
		fmt.Fprintf(stdout, "Error: %s\n", svcErr.Message)
	} else {
		fmt.Fprintf(stderr, "Error: %s\n", svcErr.Message)
	}
	return svcErr.ExitCode
}

func newRootCommand(registry *reports.Registry, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{report: reportFlag{registry: registry}}

	command := &cobra.Command{
		Use:   "log-analyzer LOG_FILE... --report NAME",
		Short: "Analyze Django request logs and generate reports",
		Long: `log-analyzer reads Django request logs, either JSON lines or the default text format,
counts the django.request events of every endpoint by severity level and prints the
selected report. Gzip and zstd compressed files are decompressed transparently.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, opts, registry, args, stdout, stderr)
			if err == nil {
				return nil
			}
			if _, ok := svcerrors.AsServiceError(err); ok {
				return err
			}
			return svcerrors.NewInternalError(codeInternalRunError, err)
		},
	}

	flags := command.Flags()
	flags.Var(&opts.report, "report", fmt.Sprintf("type of report to generate (%s)", strings.Join(registry.Names(), ", ")))
	flags.StringVar(&opts.csvPath, "csv", "", "path to output CSV file")
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error, disabled)")
	flags.IntVar(&opts.workers, "workers", 0, "number of files aggregated in parallel")
	_ = command.MarkFlagRequired("report")

	return command
}

func run(cmd *cobra.Command, opts *rootOptions, registry *reports.Registry, files []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, registry, stderr)
	if err != nil {
		return svcerrors.NewInternalError(codeInitFailed, err)
	}

	return application.Run(cmd.Context(), app.RunOptions{
		Report:  opts.report.value,
		Files:   files,
		CSVPath: opts.csvPath,
	}, stdout)
}

// loadConfig reads the configuration and applies the flags set on the command line.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*configs.Config, error) {
	cfg, err := configs.LoadConfig(opts.configPath)
	if err != nil {
		return nil, svcerrors.NewInvalidArgumentError(codeInvalidConfig, err.Error(), err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("workers") {
		cfg.Aggregation.Workers = opts.workers
	}
	if err := configs.Validate(cfg); err != nil {
		return nil, svcerrors.NewInvalidArgumentError(codeInvalidConfig, err.Error(), err)
	}
	return cfg, nil
}
