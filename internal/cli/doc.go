// Package cli builds the Cobra command tree of a script. The root command is
// named after the script and carries the global flags; every entry of the
// merged "commands" configuration becomes a subcommand.
package cli
