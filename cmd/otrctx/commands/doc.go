// Package commands defines the otrctx CLI and wires dependencies for subcommands.
//
// Commands
//
//   - instag generate|list|forget  Manage our own instance tags
//   - tlv decode|encode            Inspect and build TLV buffers
//   - fingerprint                  Print the fingerprint of a public key
//   - session demo                 Walk a context family through a secure session
//
// # Implementation
//
// The root command loads the config, applies flag overrides and builds the
// logger and instance-tag store before any subcommand runs.
package commands
