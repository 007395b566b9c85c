// Package shell runs command lines the way a user would type them, echoing
// each one to the console, and provides the scoped directory change used by
// every operation that must run inside a package directory.
//
// Command lines are parsed and interpreted in-process by mvdan.cc/sh, so no
// system shell is required. Any non-zero exit status is returned as an
// *ExitError.
package shell
