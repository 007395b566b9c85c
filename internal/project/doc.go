// Package project models a Composer project directory: its lockfile, the
// packages installed under vendor/ and the repository checks that guard
// operations rewriting vendor/.
//
// Every derived value (lockfile, package list, manifests, local configs,
// namespaces) is computed on first access and cached for the lifetime of
// the Project. Nothing is re-read from disk afterwards.
package project
