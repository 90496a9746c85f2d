package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zx06/keystore/internal/config"
	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/log"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr   string
	ConfigStr   string
	BackendStr  string
	LogLevelStr string
	Resolved    config.Resolved
	Logger      *slog.Logger
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "keystore",
		Short:         "Store secrets in the OS credential store, or in an encrypted file when none is available",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI > ENV > Config
			configSet := cmd.Flags().Changed("config")
			if configSet && GlobalConfig.ConfigStr == "" {
				return errors.New(errors.CodeCfgInvalid, "config path is empty", nil)
			}

			r, xe := config.Resolve(config.Options{
				ConfigPath:     GlobalConfig.ConfigStr,
				CLIBackend:     GlobalConfig.BackendStr,
				CLIBackendSet:  cmd.Flags().Changed("backend"),
				CLIFormat:      GlobalConfig.FormatStr,
				CLIFormatSet:   cmd.Flags().Changed("format"),
				CLILogLevel:    GlobalConfig.LogLevelStr,
				CLILogLevelSet: cmd.Flags().Changed("log-level"),
				EnvBackend:     os.Getenv("KEYSTORE_BACKEND"),
				EnvFormat:      os.Getenv("KEYSTORE_FORMAT"),
				EnvLogLevel:    os.Getenv("KEYSTORE_LOG_LEVEL"),
			})
			if xe != nil {
				return xe
			}
			GlobalConfig.Resolved = r
			GlobalConfig.FormatStr = r.Format
			GlobalConfig.BackendStr = r.Backend
			GlobalConfig.LogLevelStr = r.LogLevel

			level, ok := log.ParseLevel(r.LogLevel)
			if !ok {
				return errors.New(errors.CodeCfgInvalid, "invalid log level", map[string]any{"log_level": r.LogLevel})
			}
			GlobalConfig.Logger = log.NewWithLevel(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.CodeCfgInvalid, err.Error(), nil, err)
	})

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./keystore.yaml or <config dir>/keystore/keystore.yaml")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: json|yaml|table|csv|auto")
	root.PersistentFlags().StringVarP(&GlobalConfig.BackendStr, "backend", "b", "auto", "Credential backend: auto|native|file")
	root.PersistentFlags().StringVar(&GlobalConfig.LogLevelStr, "log-level", "warn", "Log level: debug|info|warn|error")

	return root
}
