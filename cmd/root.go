package cmd

import (
	"os"

	"github.com/bitnames/authverify/internal/config"
	"github.com/bitnames/authverify/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "authverify",
	Short: "authverify CLI",
	Long:  `authverify — verify self-issued decentralized-identity auth responses`,
}

func Execute(c *config.Config) {
	cfg = c
	if err := rootCmd.Execute(); err != nil {
		logger.Error("CLI error", "error", err)
		os.Exit(1)
	}
}
