// Package app wires application dependencies for the CLI.
//
// LoadConfig reads the YAML config file and environment overrides. NewWire
// builds the logger and the file-backed instance-tag store from Config and
// hands out registries that use them.
package app
