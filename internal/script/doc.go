// Package script holds the context of one script invocation: which script
// is running, the project it is installed in, the configuration merged from
// every installed package and the helpers commands work with.
//
// A Script is created once at process start and handed to every command.
// Its derived values and helpers are created on first use and then reused.
package script
