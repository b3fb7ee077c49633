package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
)

type globalFlags struct {
	configPath string
	verbose    bool
	language   string
	model      string
}

// app is filled by the root command before any subcommand runs.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	log    logger.Logger
	exec   executor.Executor
	stderr io.Writer
}

// NewRootCmd builds the recap command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{exec: executor.New(), stderr: os.Stderr})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recap",
		Short:         "Transcribe and summarize videos, recordings and meeting transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default "+config.DefaultPath+")")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&a.flags.language, "language", "l", "", "summary language: en or fr")
	pf.StringVar(&a.flags.model, "model", "", "model used to generate summaries")

	rootCmd.AddCommand(newYouTubeCmd(a))
	rootCmd.AddCommand(newFileCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newDoctorCmd(a))

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func (a *app) init() error {
	cfg, err := config.LoadOrDefault(a.flags.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.flags.language != "" {
		if !config.IsSupportedLanguage(a.flags.language) {
			return fmt.Errorf("language must be \"en\" or \"fr\", got %q", a.flags.language)
		}
		cfg.Output.Language = a.flags.language
	}

	level := cfg.Logging.Level
	if a.flags.verbose {
		level = "debug"
	}

	a.cfg = cfg
	a.log = logger.New(level)
	return nil
}
