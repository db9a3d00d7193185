// Package commands defines the mostro CLI and wires dependencies for subcommands.
//
// Commands
//
//   - listorders  Fetch and display Mostro's pending orders
//   - neworder    Encrypt, sign and publish a new order
//   - cancel      Publish a cancellation for an existing order
//
// # Implementation
//
// The root command resolves configuration (flags over environment over
// defaults) and builds a shared app context before any subcommand runs.
// Each subcommand dials its own relay pool and closes it on exit; any
// returned error makes the process exit non-zero.
package commands
