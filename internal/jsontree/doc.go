// Package jsontree is a small order-preserving JSON document model used for
// package manifests, lockfiles and script configuration. It reads files
// strictly or leniently and folds documents together with Merge, the
// recursive structural merge that produces a script's merged configuration.
package jsontree
