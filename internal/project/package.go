package project

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/osmscripts/core/internal/jsontree"
	"github.com/osmscripts/core/internal/manifest"
)

// Package is one installed dependency of a Project.
type Package struct {
	name    string
	project *Project
	lock    manifest.LockPackage

	manifest  lazy[*manifest.Composer]
	config    lazy[*jsontree.Node]
	namespace lazy[string]
}

// Name returns the package name, e.g. "acme/blog".
func (p *Package) Name() string { return p.name }

// Path returns the package directory relative to the project root.
func (p *Package) Path() string { return path.Join(manifest.VendorDir, p.name) }

// Dir returns the absolute package directory.
func (p *Package) Dir() string { return filepath.Join(p.project.path, filepath.FromSlash(p.Path())) }

// Lock returns the lockfile entry the package was created from.
func (p *Package) Lock() manifest.LockPackage { return p.lock }

// Manifest returns the package's composer.json. The file is required.
func (p *Package) Manifest() (*manifest.Composer, error) {
	return p.manifest.get(func() (*manifest.Composer, error) {
		file := filepath.Join(p.Dir(), manifest.ComposerFile)
		doc, err := jsontree.ReadStrict(p.project.fs, file)
		if err != nil {
			return nil, err
		}
		c, err := manifest.ParseComposer(doc)
		if err != nil {
			return nil, fmt.Errorf("parsing '%s': %w", file, err)
		}
		return c, nil
	})
}

// Config returns the package's osmscripts.json. A missing or unparsable file
// yields an empty object; a parsable file that breaks the schema is an error.
func (p *Package) Config() (*jsontree.Node, error) {
	return p.config.get(func() (*jsontree.Node, error) {
		file := filepath.Join(p.Dir(), manifest.LocalConfigFile)
		doc, ok := jsontree.ReadLenient(p.project.fs, file)
		if !ok {
			return jsontree.NewObject(), nil
		}
		if err := manifest.ValidateLocalConfig(file, doc); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

// Namespace returns the root PHP namespace of the package: the PSR-4 prefix
// mapped to src/, without the trailing backslash.
func (p *Package) Namespace() (string, error) {
	return p.namespace.get(func() (string, error) {
		c, err := p.Manifest()
		if err != nil {
			return "", err
		}
		for _, mapping := range c.Autoload.PSR4 {
			for _, dir := range mapping.Paths {
				if dir == manifest.SourceDir {
					return strings.TrimRight(mapping.Namespace, `\`), nil
				}
			}
		}
		return "", fmt.Errorf("package '%s' is expected to map a namespace to '%s' in 'autoload.psr-4' of its '%s': %w",
			p.name, manifest.SourceDir, manifest.ComposerFile, ErrMissingNamespaceMapping)
	})
}
