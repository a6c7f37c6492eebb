package cmd

import (
	"fmt"
	"os"

	"github.com/bitnames/authverify/internal/logger"
	"github.com/bitnames/authverify/pkg/auth/address"
	"github.com/bitnames/authverify/pkg/auth/did"
	"github.com/spf13/cobra"
)

var utilCmd = &cobra.Command{
	Use:     "util",
	Aliases: []string{"utils"},
	Short:   "Utility commands for authverify",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Available utility commands:")
		fmt.Println("  derive-address - Derive the chain address for a compressed public key")
		fmt.Println("  parse-did      - Parse a decentralized identifier")
	},
}

var utilDeriveAddressCmd = &cobra.Command{
	Use:   "derive-address <pubkey-hex>",
	Short: "Derive the chain address for a compressed public key",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		addr, err := address.FromPublicKey(args[0])
		if err != nil {
			logger.Error("Could not derive address", "error", err)
			os.Exit(1)
		}
		fmt.Println(addr)
	},
}

var utilParseDIDCmd = &cobra.Command{
	Use:   "parse-did <did>",
	Short: "Parse a decentralized identifier",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		d, err := did.Parse(args[0])
		if err != nil {
			logger.Error("Could not parse DID", "error", err)
			os.Exit(1)
		}
		fmt.Printf("method: %s\n", d.Method)
		fmt.Printf("id:     %s\n", d.ID)
		if addr := did.AddressFrom(args[0]); addr != "" {
			fmt.Printf("address: %s\n", addr)
		}
	},
}

func init() {
	rootCmd.AddCommand(utilCmd)
	utilCmd.AddCommand(utilDeriveAddressCmd)
	utilCmd.AddCommand(utilParseDIDCmd)
}
