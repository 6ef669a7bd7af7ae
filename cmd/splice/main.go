package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nytra/EnumerableToolkit/logger"
	"github.com/Nytra/EnumerableToolkit/version"
)

type flags struct {
	configFile string
	envFile    string
	input      string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "splice [file]",
		Short: "Insert lines into a text stream after matching lines",
		Long: `splice reads lines from a file or stdin, inserts the lines configured by
each rule after the lines the rule matches, and writes the result to stdout.
Rules are read from config.yml; SPLICE_* environment variables override it.`,
		Example:       `  splice --config rules.yml CHANGELOG.md > CHANGELOG.out.md`,
		Version:       version.Get().String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.input = args[0]
			}
			return execute(cmd.Context(), f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate("splice {{.Version}}\n")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to config.yml (default: search ./cmd/splice, ./config, .)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to a .env file")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error, disabled)")
	return cmd
}

func execute(ctx context.Context, f *flags, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(f.configFile, f.envFile)
	if err != nil {
		return err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	logger.Init(&cfg.Logging, cfg.Name)
	log := logger.WithComponent(serviceName)
	log.Debug("starting", version.Get().Fields())

	tel, err := setupTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	in := stdin
	if f.input != "" && f.input != "-" {
		file, err := os.Open(f.input)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	return run(ctx, cfg, tel.metrics, in, stdout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "splice:", err)
		stop()
		os.Exit(1)
	}
}
