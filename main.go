// main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamewarden/gamewarden/logger"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "gamewarden",
		Short: "Supervised game launcher",
		Long: "gamewarden launches games under compatibility wrappers and guarantees " +
			"every process they spawn is cleaned up when the session ends",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetLevel(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Console log level: debug, info, warn, or error")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newReapCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
