// Package cli implements the querydsl command line.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ikonglong/querydsl"
	"github.com/ikonglong/querydsl/internal/config"
	"github.com/ikonglong/querydsl/internal/logging"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the loaded configuration.
type RootOptions struct {
	ConfigFile string
	Target     string
	Format     string // "text" | "json"

	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the querydsl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "querydsl",
		Short: "Render and run YAML query documents",
		Long: `querydsl renders query documents into SQL for a dialect or into MongoDB
filters, and runs them against a database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load(opts.ConfigFile)
			if err != nil {
				return err
			}
			opts.Config = cfg
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			opts.Logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./querydsl.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Target, "target", "t", "", "target backend, overrides the config")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}

// target returns the target of the flag, or of the config.
func (o *RootOptions) target() (querydsl.Target, error) {
	name := o.Target
	if name == "" && o.Config != nil {
		name = o.Config.Target
	}
	return querydsl.ParseTarget(name)
}
