package cmd

import (
	"fmt"
	"log"
	"os"

	"student-housing/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	config *utils.Config
	logger *zap.Logger
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "housing",
		Short:         "Student housing booking and payment service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			config, err = utils.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err = utils.InitLogger(config.App.LogPath, config.App.Debug)
			if err != nil {
				log.Printf("Failed to init logger: %v. Using standard log.", err)
				logger, _ = zap.NewProduction()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.AddCommand(serveCmd(), migrateCmd())
	return root
}

// Execute runs the CLI. Without a subcommand it serves HTTP.
func Execute() {
	root := rootCmd()
	if len(os.Args) == 1 {
		root.SetArgs([]string{"serve"})
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
