package cmd

import (
	"fmt"
	"os"

	"catalog-service/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "catalog-service",
	Short: "Catalog Service",
	Long: `Catalog Service is a multi-tenant store and product backend.
It serves ordered store/product hierarchies with batch reconciliation
and member authentication.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level so CLI errors come out readable
		// with ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
