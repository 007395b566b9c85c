package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/jsontree"
	"github.com/osmscripts/core/internal/project"
	"github.com/osmscripts/core/internal/script"
	"github.com/spf13/afero"
)

const builtins = `{
	"commands": {
		"var": "OsmScripts\\Core\\Commands\\Var_",
		"show-config": "OsmScripts\\Core\\Commands\\ShowConfig",
		"create-package": "OsmScripts\\Core\\Commands\\CreatePackage"
	},
	"variables": {"package": "Package the commands work on", "theme": "Color theme"}
}`

func TestVar(t *testing.T) {
	s, fs, cwd := newScript(t, builtins)

	out, err := run(t, s, "var", "package=acme/blog", "theme=dark", "missing")
	if err != nil {
		t.Fatalf("var error: %v", err)
	}
	want := "package=acme/blog\ntheme=dark\nmissing=\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	saved, err := afero.ReadFile(fs, filepath.Join(cwd, ".osmscripts", "osm.json"))
	if err != nil {
		t.Fatalf("variables not saved: %v", err)
	}
	doc := jsontree.MustParse(string(saved))
	if doc.Get("package").Str() != "acme/blog" {
		t.Errorf("saved store = %s", saved)
	}

	if out, _ = run(t, s, "var", "theme="); out != "theme=\n" {
		t.Errorf("clear output = %q, want %q", out, "theme=\n")
	}
	if out, _ = run(t, s, "var"); out != "package=acme/blog\n" {
		t.Errorf("list output = %q, want %q", out, "package=acme/blog\n")
	}
}

func TestVar_EmptyNameChangesNothing(t *testing.T) {
	s, fs, cwd := newScript(t, builtins)

	_, err := run(t, s, "var", "package=acme/blog", "=dark")
	if !errors.Is(err, ErrEmptyVariableName) {
		t.Fatalf("error = %v, want ErrEmptyVariableName", err)
	}
	if ok, _ := afero.Exists(fs, filepath.Join(cwd, ".osmscripts", "osm.json")); ok {
		t.Error("variables were saved despite the invalid argument")
	}

	store, err := s.Variables()
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := store.Get("package"); ok {
		t.Errorf("package = %q, want unset", v)
	}
}

func TestVar_HelpListsKnownVariables(t *testing.T) {
	s, _, _ := newScript(t, builtins)

	out, err := run(t, s, "var", "--help")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"Known variables:", "* package - Package the commands work on", "* theme - Color theme"} {
		if !strings.Contains(out, line) {
			t.Errorf("help %q missing %q", out, line)
		}
	}
}

func TestShowConfig(t *testing.T) {
	s, _, _ := newScript(t, `{"commands": {"show-config": "OsmScripts\\Core\\Commands\\ShowConfig"}, "name": "Tools", "depth": 2, "tags": ["1", "b"]}`)

	out, err := run(t, s, "show-config")
	if err != nil {
		t.Fatalf("show-config error: %v", err)
	}
	doc, err := jsontree.Parse([]byte(out))
	if err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc.Get("commands").Get("show-config").Get("package").Str() != "acme/tools" {
		t.Errorf("output = %s", out)
	}

	out, err = run(t, s, "show-config", "--yaml")
	if err != nil {
		t.Fatalf("show-config --yaml error: %v", err)
	}
	want := `commands:
    show-config:
        package: acme/tools
        class: OsmScripts\Core\Commands\ShowConfig
name: Tools
depth: 2
tags:
    - "1"
    - b
`
	if out != want {
		t.Errorf("yaml output =\n%s\nwant\n%s", out, want)
	}
}

func TestCreatePackage_NoUpdate(t *testing.T) {
	s, fs, cwd := newScript(t, builtins)

	if _, err := run(t, s, "create-package", "acme/blog-posts", "--no-update"); err != nil {
		t.Fatalf("create-package error: %v", err)
	}

	data, err := afero.ReadFile(fs, filepath.Join(cwd, "vendor", "acme", "blog-posts", "composer.json"))
	if err != nil {
		t.Fatalf("composer.json not written: %v", err)
	}
	doc := jsontree.MustParse(string(data))
	if got := doc.Get("name").Str(); got != "acme/blog-posts" {
		t.Errorf("name = %q, want %q", got, "acme/blog-posts")
	}
	if got := doc.Get("require").Get("acme/tools").Str(); got != "^2.3" {
		t.Errorf("require acme/tools = %q, want %q", got, "^2.3")
	}
	if got := doc.Get("autoload").Get("psr-4").Get(`Acme\BlogPosts\`).Str(); got != "src/" {
		t.Errorf("psr-4 mapping = %q, want %q in %s", got, "src/", data)
	}

	store, err := s.Variables()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := store.Get("package"); v != "acme/blog-posts" {
		t.Errorf("package variable = %q, want %q", v, "acme/blog-posts")
	}
}

func TestCreatePackage_Template(t *testing.T) {
	s, fs, cwd := newScript(t, builtins)
	write(t, fs, filepath.Join(root, "vendor/acme/tools/templates/osm/composer.json.tmpl"),
		`{"name": "{{ .Package }}", "description": "{{ upper .Package }}", "require": {"{{ .BasePackage }}": "{{ .VersionConstraint }}"}}`)

	if _, err := run(t, s, "create-package", "acme/blog", "--no-update", "--namespace", `Blog`); err != nil {
		t.Fatalf("create-package error: %v", err)
	}

	data, err := afero.ReadFile(fs, filepath.Join(cwd, "vendor", "acme", "blog", "composer.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name": "acme/blog", "description": "ACME/BLOG", "require": {"acme/tools": "^2.3"}}`
	if string(data) != want {
		t.Errorf("composer.json = %s, want %s", data, want)
	}
}

func TestCreatePackage_BaseNamespace(t *testing.T) {
	s, fs, cwd := newScript(t, builtins)
	write(t, fs, filepath.Join(cwd, "vendor/acme/tools/composer.json"),
		`{"name": "acme/tools", "autoload": {"psr-4": {"Acme\\Tools\\": "src/"}}}`)
	write(t, fs, filepath.Join(root, "vendor/acme/tools/templates/osm/composer.json.tmpl"),
		`{{ .Namespace }} extends {{ .BaseNamespace }}`)

	if _, err := run(t, s, "create-package", "acme/blog", "--no-update"); err != nil {
		t.Fatalf("create-package error: %v", err)
	}

	data, err := afero.ReadFile(fs, filepath.Join(cwd, "vendor", "acme", "blog", "composer.json"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `Acme\Blog\ extends Acme\Tools`; string(data) != want {
		t.Errorf("composer.json = %q, want %q", data, want)
	}
}

func TestUpdate(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	fs := afero.NewMemMapFs()
	write(t, fs, filepath.Join(cwd, "composer.lock"), `{"packages": [{"name": "acme/tools", "version": "v2.3.1"}]}`)
	write(t, fs, filepath.Join(cwd, "vendor/acme/tools/composer.json"), `{"name": "acme/tools"}`)
	write(t, fs, filepath.Join(cwd, "vendor/acme/tools/osmscripts.json"),
		`{"commands": {"update": "OsmScripts\\Core\\Commands\\Update"}}`)

	var stdout bytes.Buffer
	s, err := script.New(script.Options{
		Name:     "osm",
		Root:     cwd,
		Composer: "echo",
		Fs:       fs,
		Logger:   console.Discard(),
		Stdout:   &stdout,
		Stderr:   &stdout,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, s, "update"); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if got := stdout.String(); got != "update\n" {
		t.Errorf("package manager output = %q, want %q", got, "update\n")
	}
}

func TestUpdate_OutsideScriptProject(t *testing.T) {
	s, _, _ := newScript(t, `{"commands": {"update": "OsmScripts\\Core\\Commands\\Update"}}`)

	_, err := run(t, s, "update")
	if !errors.Is(err, project.ErrNotCurrent) {
		t.Errorf("update error = %v, want ErrNotCurrent", err)
	}
}
