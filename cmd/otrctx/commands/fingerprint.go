package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"otrctx/internal/crypto"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <pubkey-hex>",
		Short: "Print the fingerprint of a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("public key: %w", err)
			}
			if len(pub) == 0 {
				return fmt.Errorf("public key is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint: %s\n", crypto.Fingerprint(pub))
			return nil
		},
	}
}
