// Package files renders package templates and writes generated files.
//
// Templates live in the package that defines a command, under
// templates/<script>/<name>.tmpl, and are Go text/template files with the
// strcase helpers (lower, upper, studly, camel, snake, kebab) available. A
// project can override any template by placing a file with the same name
// under .osmscripts/<package>/templates/<script>/.
package files
