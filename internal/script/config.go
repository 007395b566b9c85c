package script

import (
	"fmt"

	"github.com/osmscripts/core/internal/jsontree"
	"github.com/osmscripts/core/internal/project"
)

// Config returns the configuration merged from the osmscripts.json of every
// package installed in the script project, in lockfile order.
//
// For each package, its "commands" and the "commands" of the block keyed by
// the script name are tagged with the package and joined, package-wide
// first. The other keys of the script block overlay the package-wide keys.
// The result always has a "commands" object mapping command names to
// {"package", "class"}.
func (s *Script) Config() (*jsontree.Node, error) {
	if !s.aggregated {
		s.config, s.configErr = s.aggregate()
		s.aggregated = true
	}
	return s.config, s.configErr
}

func (s *Script) aggregate() (*jsontree.Node, error) {
	packages, err := s.Project().Packages()
	if err != nil {
		return nil, fmt.Errorf("loading script configuration: %w", err)
	}

	result := jsontree.MustParse(`{"commands": {}}`)
	for _, pkg := range packages {
		config, err := packageConfig(pkg, s.name)
		if err != nil {
			return nil, fmt.Errorf("loading script configuration: %w", err)
		}
		result = jsontree.Merge(result, config)
	}
	return result, nil
}

// packageConfig returns the part of pkg's local configuration that applies
// to the named script.
func packageConfig(pkg *project.Package, name string) (*jsontree.Node, error) {
	if _, err := pkg.Manifest(); err != nil {
		return nil, err
	}
	local, err := pkg.Config()
	if err != nil {
		return nil, err
	}

	commands := jsontree.NewObject()
	addCommands(commands, local.Get("commands"), pkg.Name())

	config := local.Clone()
	config.Delete("commands")

	if specific := local.Get(name); specific.IsObject() {
		config.Delete(name)
		addCommands(commands, specific.Get("commands"), pkg.Name())

		overlay := specific.Clone()
		overlay.Delete("commands")
		config = jsontree.Merge(config, overlay)
	}

	config.Set("commands", commands)
	return config, nil
}

// addCommands tags every class in declared with pkg and stores it in dst.
// A name already in dst is overwritten in place.
func addCommands(dst, declared *jsontree.Node, pkg string) {
	for _, name := range declared.Keys() {
		entry := jsontree.NewObject()
		entry.Set("package", jsontree.NewString(pkg))
		entry.Set("class", jsontree.NewString(declared.Get(name).Str()))
		dst.Set(name, entry)
	}
}

// Commands returns the merged command registrations in declaration order.
func (s *Script) Commands() ([]Command, error) {
	config, err := s.Config()
	if err != nil {
		return nil, err
	}

	commands := config.Get("commands")
	result := make([]Command, 0, commands.Len())
	for _, name := range commands.Keys() {
		entry := commands.Get(name)
		result = append(result, Command{
			Name:    name,
			Package: entry.Get("package").Str(),
			Class:   entry.Get("class").Str(),
		})
	}
	return result, nil
}
