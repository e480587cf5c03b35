package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"otrctx/internal/protocol/tlv"
)

func tlvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tlv",
		Short: "Encode and decode TLV records",
	}
	cmd.AddCommand(tlvDecodeCmd(), tlvEncodeCmd())
	return cmd
}

func tlvDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "List the records in a TLV buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("tlv buffer: %w", err)
			}
			recs := tlv.Parse(b)
			out := cmd.OutOrStdout()
			for _, r := range recs {
				fmt.Fprintf(out, "type=%d (%s) len=%d data=%x\n", r.Type, r.Type, r.Len(), r.Data)
			}
			if n := tlv.SerialLen(recs); n < len(b) {
				fmt.Fprintf(out, "ignored %d trailing bytes\n", len(b)-n)
			}
			return nil
		},
	}
}

func tlvEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <type>:<hex>...",
		Short: "Serialize records into a TLV buffer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs := make([]tlv.TLV, 0, len(args))
			for _, a := range args {
				r, err := parseRecord(a)
				if err != nil {
					return err
				}
				recs = append(recs, r)
			}
			b, err := tlv.Serialize(recs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
			return nil
		},
	}
}

func parseRecord(s string) (tlv.TLV, error) {
	typ, data, ok := strings.Cut(s, ":")
	if !ok {
		return tlv.TLV{}, fmt.Errorf("record %q: want <type>:<hex>", s)
	}
	t, err := strconv.ParseUint(typ, 0, 16)
	if err != nil {
		return tlv.TLV{}, fmt.Errorf("record %q: type: %w", s, err)
	}
	payload, err := hex.DecodeString(data)
	if err != nil {
		return tlv.TLV{}, fmt.Errorf("record %q: data: %w", s, err)
	}
	return tlv.New(tlv.Type(t), payload)
}
