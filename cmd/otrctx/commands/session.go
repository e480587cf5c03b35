package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"otrctx/internal/crypto"
	"otrctx/internal/domain"
	"otrctx/internal/protocol/dh"
	"otrctx/internal/registry"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Exercise the conversation registry",
	}

	var account, protocol, peer string
	demo := &cobra.Command{
		Use:   "demo",
		Short: "Build a family of contexts, secure one and show instance selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout(), domain.AccountName(account), domain.Protocol(protocol), domain.Username(peer))
		},
	}
	demo.Flags().StringVar(&account, "account", "me@example.org", "our account")
	demo.Flags().StringVar(&protocol, "protocol", "xmpp", "protocol name")
	demo.Flags().StringVar(&peer, "peer", "bob@example.org", "peer username")
	cmd.AddCommand(demo)
	return cmd
}

func runDemo(out io.Writer, account domain.AccountName, protocol domain.Protocol, peer domain.Username) error {
	if _, ok := wire.Tags.Lookup(account, protocol); !ok {
		if _, err := wire.Tags.Generate(account, protocol); err != nil {
			return err
		}
	}
	r := wire.NewRegistry()
	defer r.ForgetAll()

	laptop, _, err := r.FindOrCreate(peer, account, protocol, 0x1001, nil)
	if err != nil {
		return err
	}
	phone, _, err := r.FindOrCreate(peer, account, protocol, 0x1002, nil)
	if err != nil {
		return err
	}
	laptop.RecordReceived()

	key, err := dh.GenerateKeypair()
	if err != nil {
		return err
	}
	defer key.Release()
	err = r.Establish(phone, registry.EstablishParams{
		Fingerprint:     crypto.Fingerprint(key.Pub[:]),
		SessionID:       key.Pub[:8],
		ProtocolVersion: 3,
		TheirDHPublic:   key.Pub[:],
		TheirKeyID:      1,
	})
	if err != nil {
		return err
	}
	phone.ActiveFingerprint().SetTrust("demo")

	printContexts(out, r)
	printSelection(out, r, peer, account, protocol)

	color.New(color.Bold).Fprintln(out, "\nafter the phone ends its session:")
	phone.ForceFinished()
	printContexts(out, r)
	printSelection(out, r, peer, account, protocol)
	return nil
}

func printContexts(out io.Writer, r *registry.Registry) {
	for _, c := range r.Contexts() {
		fp := "-"
		if f := c.ActiveFingerprint(); f != nil {
			fp = f.Digest().String()
			if registry.IsTrusted(f) {
				fp = color.GreenString(fp)
			}
		}
		fmt.Fprintf(out, "  %-40s %-20s %s\n", c, stateString(c.MsgState()), fp)
	}
}

func printSelection(out io.Writer, r *registry.Registry, peer domain.Username, account domain.AccountName, protocol domain.Protocol) {
	for _, sel := range []domain.InstanceTag{domain.InstanceBest, domain.InstanceRecent, domain.InstanceRecentReceived, domain.InstanceRecentSent} {
		c := r.Find(peer, account, protocol, sel)
		fmt.Fprintf(out, "  %-16s -> %s\n", sel, c)
	}
}

func stateString(s domain.MsgState) string {
	switch s {
	case domain.Encrypted:
		return color.GreenString(s.String())
	case domain.Finished:
		return color.YellowString(s.String())
	}
	return s.String()
}
