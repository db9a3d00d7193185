// Package app wires application dependencies for the CLI.
//
// It resolves configuration from flags, environment and defaults into an
// explicit Config, and builds the logger and keyring commands share. Relay
// connections are not opened here; commands dial the pool themselves so a
// listing never pays for a failed submission path and vice versa.
package app
