package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bitnames/authverify/internal/logger"
	"github.com/bitnames/authverify/pkg/auth"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify an auth response token",
	Long: `Verify runs the full auth response pipeline over a compact token:
structural decode, required claims, timestamp window, ES256K signature,
issuer/key address match, and username ownership against the registry.
On success the verified claim set is printed as JSON.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		verifier := auth.NewVerifier(auth.Config{
			RegistryURL: cfg.RegistryURL,
			Leeway:      time.Duration(cfg.LeewaySecs) * time.Second,
			ValidWithin: time.Duration(cfg.ValidWithinSecs) * time.Second,
		}, nil)

		claims, err := verifier.VerifyAuthResponse(context.Background(), args[0])
		if err != nil {
			logger.Error("Verification failed", "kind", auth.KindOf(err), "error", err)
			os.Exit(1)
		}

		out, err := json.MarshalIndent(claims, "", "  ")
		if err != nil {
			logger.Error("Could not render claims", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
