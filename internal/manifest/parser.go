package manifest

import (
	"fmt"

	"github.com/osmscripts/core/internal/jsontree"
)

// ParseLock extracts installed packages from a lockfile document. A missing
// packages list yields an empty lock.
func ParseLock(doc *jsontree.Node) (*Lock, error) {
	if !doc.IsObject() {
		return nil, fmt.Errorf("lockfile root must be an object, got %s: %w", doc.Kind(), jsontree.ErrInvalidFormat)
	}

	lock := &Lock{}
	packages := doc.Get("packages")
	if packages == nil || packages.Kind() == jsontree.Null {
		return lock, nil
	}
	if !packages.IsArray() {
		return nil, fmt.Errorf("lockfile 'packages' must be an array: %w", jsontree.ErrInvalidFormat)
	}

	for i, entry := range packages.Items() {
		name := entry.Get("name").Str()
		if name == "" {
			return nil, fmt.Errorf("lockfile package #%d has no name: %w", i, jsontree.ErrInvalidFormat)
		}
		lock.Packages = append(lock.Packages, LockPackage{
			Name:    name,
			Version: entry.Get("version").Str(),
		})
	}

	return lock, nil
}

// ParseComposer extracts the fields of a package manifest used by scripts.
func ParseComposer(doc *jsontree.Node) (*Composer, error) {
	if !doc.IsObject() {
		return nil, fmt.Errorf("manifest root must be an object, got %s: %w", doc.Kind(), jsontree.ErrInvalidFormat)
	}

	c := &Composer{Name: doc.Get("name").Str()}

	psr4 := doc.Get("autoload").Get("psr-4")
	for _, ns := range psr4.Keys() {
		value := psr4.Get(ns)
		mapping := NamespaceMapping{Namespace: ns}
		switch value.Kind() {
		case jsontree.String:
			mapping.Paths = []string{value.Str()}
		case jsontree.Array:
			for _, p := range value.Items() {
				mapping.Paths = append(mapping.Paths, p.Str())
			}
		}
		c.Autoload.PSR4 = append(c.Autoload.PSR4, mapping)
	}

	return c, nil
}
