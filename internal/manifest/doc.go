// Package manifest models the files a Composer-style project keeps on disk:
// the project lockfile (composer.lock), each installed package's manifest
// (composer.json) and the optional per-package script configuration
// (osmscripts.json), which is validated against an embedded JSON Schema.
package manifest
