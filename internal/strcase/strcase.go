// Package strcase converts identifiers between the casing conventions used
// when generating package names, namespaces and file names.
package strcase

import (
	"regexp"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lower = cases.Lower(language.Und)
	upper = cases.Upper(language.Und)
	title = cases.Title(language.Und, cases.NoLower)

	wordBoundary = regexp.MustCompile(`(.)(\p{Lu})`)
	separators   = strings.NewReplacer("-", " ", "_", " ")
)

// Lower lowercases s.
func Lower(s string) string { return lower.String(s) }

// Upper uppercases s.
func Upper(s string) string { return upper.String(s) }

// Studly converts "create-package" and "create_package" to "CreatePackage".
// Letters after the first of each word keep their case.
func Studly(s string) string {
	return strings.ReplaceAll(title.String(separators.Replace(s)), " ", "")
}

// Camel converts "create-package" to "createPackage".
func Camel(s string) string {
	studly := Studly(s)
	r, size := utf8.DecodeRuneInString(studly)
	if r == utf8.RuneError {
		return studly
	}
	return string(unicode.ToLower(r)) + studly[size:]
}

// Snake converts "CreatePackage" to "create_package" using delimiter.
func Snake(s, delimiter string) string {
	return Lower(wordBoundary.ReplaceAllString(s, "${1}"+delimiter+"${2}"))
}

// Kebab converts "CreatePackage" to "create-package".
func Kebab(s string) string { return Snake(s, "-") }

// FuncMap exposes the conversions to text/template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"lower":  Lower,
		"upper":  Upper,
		"studly": Studly,
		"camel":  Camel,
		"snake":  func(s string) string { return Snake(s, "_") },
		"kebab":  Kebab,
	}
}
