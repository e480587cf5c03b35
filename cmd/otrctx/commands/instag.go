package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"otrctx/internal/domain"
)

func instagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instag",
		Short: "Manage our own instance tags",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "generate <account> <protocol>",
			Short: "Create or replace the instance tag of an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				tag, err := wire.Tags.Generate(domain.AccountName(args[0]), domain.Protocol(args[1]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s %s\n", args[0], args[1], tag)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show all stored instance tags",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				recs := wire.Tags.All()
				if len(recs) == 0 {
					color.New(color.FgYellow).Fprintln(out, "no instance tags")
					return nil
				}
				for _, r := range recs {
					fmt.Fprintf(out, "%s/%s %s\n", r.Account, r.Protocol, color.CyanString(r.Tag.String()))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "forget <account> <protocol>",
			Short: "Remove the instance tag of an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return wire.Tags.Forget(domain.AccountName(args[0]), domain.Protocol(args[1]))
			},
		},
	)
	return cmd
}
