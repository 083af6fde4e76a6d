// Package cli implements the upliftr command-line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/upliftr/upliftr/internal/config"
	"github.com/upliftr/upliftr/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upliftr",
		Short: "Upliftr — marketing agency backend with a conversational booking agent",
		Long:  "Upliftr serves the agency site API: a Gemini-backed chat assistant that books client enquiries, a Google Sheets lead mirror, and the content catalog.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A local .env is convenient in development; absence is fine.
			godotenv.Load()

			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.upliftr/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLeadsCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
