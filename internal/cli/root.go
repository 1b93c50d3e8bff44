// Package cli wires the brainboost commands.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/vytor/brainboost/internal/catalog"
	"github.com/vytor/brainboost/internal/config"
	"github.com/vytor/brainboost/internal/logger"
	"github.com/vytor/brainboost/internal/recommend"
	"github.com/vytor/brainboost/internal/report"
)

// NewRootCmd builds the command tree. Each call returns independent flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brainboost",
		Short:         "Adaptive assessment scoring and lesson recommendation",
		Long:          "brainboost scores quiz submissions, analyses skill gaps, recommends lessons and serves learner reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("content", "", "Path to a JSON content pack (overrides CONTENT_PATH; default is the bundled pack)")
	root.PersistentFlags().String("log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		cfg.ContentPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg
}

func setupLogger(cmd *cobra.Command, cfg config.Config, colors bool) *logger.Logger {
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(colors),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	logger.SetDefault(log)
	return log
}

func loadPack(path string) (*catalog.Pack, error) {
	if path == "" {
		return catalog.DefaultPack()
	}
	return catalog.LoadPackFile(path)
}

func reportConfig(cfg config.Config) report.Config {
	rc := report.DefaultConfig()
	rc.CertificateValidityDays = cfg.CertificateValidityDays
	return rc
}

func recommender() *recommend.Engine {
	return recommend.New(recommend.DefaultConfig())
}
