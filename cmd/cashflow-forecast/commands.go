package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/cashflow-forecast/internal/config"
	"github.com/iwvelando/cashflow-forecast/internal/forecast"
	"github.com/iwvelando/cashflow-forecast/internal/optimizer"
	"github.com/iwvelando/cashflow-forecast/internal/server"
	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/constants"
	"github.com/iwvelando/cashflow-forecast/pkg/output"
	"github.com/iwvelando/cashflow-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cashflow-forecast",
		Short:         "Project the monthly cash flow of a lending portfolio",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newProjectCmd(opts))
	cmd.AddCommand(newOptimizeCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup loads and validates the configuration, builds the logger and books
// the configured reinvestments.
func (o *rootOptions) setup() (*config.Configuration, *zap.Logger, *session.Book, error) {
	conf, err := config.LoadConfiguration(o.configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration at %s: %w", o.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, o.logLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, logger, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	book := session.NewBook(logger)
	if err := conf.LoadBook(book); err != nil {
		return nil, logger, nil, err
	}
	return conf, logger, book, nil
}

func syncLogger(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}

func newProjectCmd(root *rootOptions) *cobra.Command {
	var outputFormat string
	var summary bool

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the projected timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, book, err := root.setup()
			defer syncLogger(logger)
			if err != nil {
				return err
			}

			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			result, err := forecast.GetForecast(logger, *conf, book.Snapshot())
			if err != nil {
				return fmt.Errorf("failed to compute forecast: %w", err)
			}
			for _, note := range result.Notes {
				logger.Info(note, zap.String("op", "main"))
			}

			return writeForecast(cmd.OutOrStdout(), conf, result, format, summary || conf.Output.Summary)
		},
	}
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the projection summary after the table")
	return cmd
}

func writeForecast(w io.Writer, conf *config.Configuration, result forecast.Forecast, format string, summary bool) error {
	f := conf.Formatter()
	switch format {
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(w, result.Timeline, result.Labels, nil); err != nil {
			return err
		}
	default:
		if err := output.PrettyFormat(w, result.Timeline, result.Labels, f); err != nil {
			return err
		}
	}
	if !summary {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return output.PrettySummary(w, result.Summary, f)
}

func newOptimizeCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Size the configured reinvestment against the balance floor",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, book, err := root.setup()
			defer syncLogger(logger)
			if err != nil {
				return err
			}

			runner, err := optimizer.NewRunner(logger, conf, book.Snapshot())
			if err != nil {
				return err
			}
			result, err := runner.Run()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result.Summary)
			}

			f := conf.Formatter()
			s := result.Summary
			if _, err := fmt.Fprintf(w,
				"Categoría: %s\nMes de inicio: %d\nMonto óptimo: %s (%d operaciones)\nPiso: %s\nSaldo mínimo: %s\nMargen: %s\nIteraciones: %d\nConvergió: %t\n",
				s.Category, s.StartPeriod, s.ValueDisplay, s.Operations,
				f.Currency(s.Floor), f.Currency(s.MinimumBalance), f.Currency(s.Headroom),
				s.Iterations, s.Converged,
			); err != nil {
				return err
			}
			for _, note := range s.Notes {
				if _, err := fmt.Fprintf(w, "Nota: %s\n", note); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newServeCmd(root *rootOptions) *cobra.Command {
	var serverConfigPath string
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				serverConfig.Address = address
			}

			logger, err := initializeLogger(serverConfig.Logging, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer syncLogger(logger)

			book := session.NewBook(logger)
			if cmd.Flags().Changed("config") || fileExists(root.configPath) {
				conf, err := config.LoadConfiguration(root.configPath)
				if err != nil {
					return fmt.Errorf("failed to load configuration at %s: %w", root.configPath, err)
				}
				if err := conf.LoadBook(book); err != nil {
					return err
				}
				logger.Info("seeded reinvestments from configuration",
					zap.String("op", "main"),
					zap.String("config", root.configPath),
					zap.Int("count", book.Snapshot().Len()),
				)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.NewWebAPI(logger, serverConfig, book, version).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
