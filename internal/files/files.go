package files

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/charmbracelet/log"
	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/manifest"
	"github.com/osmscripts/core/internal/strcase"
	"github.com/spf13/afero"
)

// ErrTemplateNotFound is returned when neither the package nor the project
// provides the requested template.
var ErrTemplateNotFound = errors.New("template not found")

// OverrideDir is the project directory holding template overrides and
// script variables.
const OverrideDir = ".osmscripts"

// TemplateExt is appended to template names.
const TemplateExt = ".tmpl"

// Files renders templates of one script and saves files.
type Files struct {
	Fs     afero.Fs
	Logger *log.Logger

	// Root is the project the script is installed in.
	Root string
	// Script is the running script name.
	Script string
}

// New returns a Files working on fs.
func New(fs afero.Fs, logger *log.Logger, root, script string) *Files {
	return &Files{Fs: fs, Logger: logger, Root: root, Script: script}
}

// TemplatePath resolves the file a template is loaded from.
func (f *Files) TemplatePath(pkg, name string) (string, error) {
	file := filepath.Join(filepath.FromSlash(pkg), "templates", f.Script, name+TemplateExt)

	override := filepath.Join(f.Root, OverrideDir, file)
	if ok, _ := afero.Exists(f.Fs, override); ok {
		return override, nil
	}

	vendored := filepath.Join(f.Root, manifest.VendorDir, file)
	if ok, _ := afero.Exists(f.Fs, vendored); ok {
		return vendored, nil
	}

	return "", fmt.Errorf("template '%s' %w", vendored, ErrTemplateNotFound)
}

// Render executes template name of package pkg with data.
func (f *Files) Render(pkg, name string, data any) (string, error) {
	path, err := f.TemplatePath(pkg, name)
	if err != nil {
		return "", err
	}

	source, err := afero.ReadFile(f.Fs, path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(strcase.FuncMap()).Parse(string(source))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", path, err)
	}
	return buf.String(), nil
}

// Save writes contents to path, creating parent directories, and reports
// whether the file was created or updated.
func (f *Files) Save(path string, contents []byte) error {
	action := "created"
	if ok, _ := afero.Exists(f.Fs, path); ok {
		action = "updated"
	}

	if err := f.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(f.Fs, path, contents, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	console.FileWritten(f.logger(), path, action)
	return nil
}

func (f *Files) logger() *log.Logger {
	if f.Logger == nil {
		return console.Discard()
	}
	return f.Logger
}
