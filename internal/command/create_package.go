package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/osmscripts/core/internal/files"
	"github.com/osmscripts/core/internal/git"
	"github.com/osmscripts/core/internal/jsontree"
	"github.com/osmscripts/core/internal/manifest"
	"github.com/osmscripts/core/internal/project"
	"github.com/osmscripts/core/internal/strcase"
	"github.com/spf13/cobra"
)

// CreatePackage creates a new package under vendor/, puts it under git,
// pushes it and requires it in the working directory project. The new
// package depends on the package that defined the command.
type CreatePackage struct {
	pkg       string
	namespace string
	repoURL   string
	noUpdate  bool

	basePackage string
	project     *project.Project
}

func (c *CreatePackage) Configure(cmd *cobra.Command, env *Env) {
	cmd.Use = env.Name + " <package>"
	cmd.Short = "Creates a new package and adds it to the project"
	cmd.Args = cobra.ExactArgs(1)
	cmd.Flags().StringVar(&c.namespace, "namespace", "",
		`Root namespace of PHP classes in this package, use '\' delimiter. If omitted, inferred from package name`)
	cmd.Flags().StringVar(&c.repoURL, "repo_url", "",
		"URL of EMPTY server Git repo for newly created package. If omitted, GitHub repo with package's name is assumed")
	cmd.Flags().BoolVar(&c.noUpdate, "no-update", false,
		"Skip creation and push of Git repo and Composer update")
}

func (c *CreatePackage) Run(ctx context.Context, env *Env, args []string) error {
	c.pkg = args[0]
	c.basePackage = env.DefinedIn

	p, err := env.Script.CwdProject()
	if err != nil {
		return err
	}
	c.project = p

	if !c.noUpdate {
		if err := git.EnsureInstalled(); err != nil {
			return err
		}
		// The final require rewrites vendor/, so every vendor repository
		// must be committed and in sync first.
		if err := p.VerifyNoUncommittedChanges(ctx); err != nil {
			return err
		}
	}

	if err := c.writeComposerJSON(env); err != nil {
		return err
	}

	if !c.noUpdate {
		sh := env.Script.Shell()
		g := env.Script.Git()
		err := sh.Cd(c.dir(), func() error {
			if err := g.Init(ctx); err != nil {
				return err
			}
			if err := g.SetOrigin(ctx, c.repo()); err != nil {
				return err
			}
			return g.Push(ctx)
		}, false)
		if err != nil {
			return err
		}

		if err := p.Require(ctx, c.pkg+":dev-master@dev", c.repo()); err != nil {
			return err
		}
	}

	store, err := env.Script.Variables()
	if err != nil {
		return err
	}
	store.Set("package", c.pkg)
	return store.Save()
}

// rootNamespace returns the root namespace, with a trailing backslash.
func (c *CreatePackage) rootNamespace() string {
	ns := c.namespace
	if ns == "" {
		ns = InferNamespace(c.pkg)
	}
	if !strings.HasSuffix(ns, `\`) {
		ns += `\`
	}
	return ns
}

func (c *CreatePackage) repo() string {
	if c.repoURL != "" {
		return c.repoURL
	}
	return "git@github.com:" + c.pkg + ".git"
}

func (c *CreatePackage) dir() string {
	return filepath.Join(c.project.Path(), manifest.VendorDir, filepath.FromSlash(c.pkg))
}

func (c *CreatePackage) base() (*project.Package, error) {
	base, err := c.project.Package(c.basePackage)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("base package '%s' is not installed in %s", c.basePackage, c.project.Path())
	}
	return base, nil
}

// writeComposerJSON writes the package manifest. The "composer.json"
// template of the defining package is used when it exists.
//
// The new package requires the base package with a constraint derived from
// its installed version. BaseNamespace is empty unless the installed base
// package maps a namespace to src/.
func (c *CreatePackage) writeComposerJSON(env *Env) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	constraint, err := InferVersionConstraint(base.Lock().Version)
	if err != nil {
		return fmt.Errorf("inferring version constraint on base package '%s': %w", c.basePackage, err)
	}

	data := map[string]string{
		"Package":           c.pkg,
		"Namespace":         c.rootNamespace(),
		"BasePackage":       c.basePackage,
		"BaseNamespace":     "",
		"VersionConstraint": constraint,
	}
	if ns, err := base.Namespace(); err == nil {
		data["BaseNamespace"] = ns
	}

	contents, err := env.Render(manifest.ComposerFile, data)
	if errors.Is(err, files.ErrTemplateNotFound) {
		contents = string(c.defaultComposerJSON(constraint))
	} else if err != nil {
		return err
	}

	return env.Script.Files().Save(filepath.Join(c.dir(), manifest.ComposerFile), []byte(contents))
}

func (c *CreatePackage) defaultComposerJSON(constraint string) []byte {
	doc := jsontree.NewObject()
	doc.Set("name", jsontree.NewString(c.pkg))
	require := jsontree.NewObject()
	require.Set(c.basePackage, jsontree.NewString(constraint))
	doc.Set("require", require)
	psr4 := jsontree.NewObject()
	psr4.Set(c.rootNamespace(), jsontree.NewString(manifest.SourceDir))
	autoload := jsontree.NewObject()
	autoload.Set("psr-4", psr4)
	doc.Set("autoload", autoload)
	return doc.Pretty()
}

// InferNamespace derives a namespace from a package name:
// "acme/blog-posts" becomes `Acme\BlogPosts\`.
func InferNamespace(pkg string) string {
	segments := strings.Split(pkg, "/")
	for i, segment := range segments {
		segments[i] = strcase.Studly(strings.ReplaceAll(segment, ":", " "))
	}
	return strings.Join(segments, `\`) + `\`
}

// InferVersionConstraint derives a dependency constraint from an installed
// version. Branch versions are kept as they are; tagged versions become a
// caret constraint on major.minor.
func InferVersionConstraint(version string) (string, error) {
	if strings.HasPrefix(version, "dev-") || strings.HasSuffix(version, ".x-dev") {
		return version, nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("can't infer a version constraint from version '%s': %w", version, err)
	}
	return fmt.Sprintf("^%d.%d", v.Major(), v.Minor()), nil
}
