//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osmscripts/core/internal/cli"
	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/script"
)

// testEnv holds the directories of one sandboxed script installation.
type testEnv struct {
	Root    string // project the script is installed in
	WorkDir string // project the script is run from
	Log     *bytes.Buffer
}

// setupTestEnv creates a script project with the builtin commands registered
// by acme/tools and an empty working project, and changes into the latter.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Root:    t.TempDir(),
		WorkDir: t.TempDir(),
		Log:     &bytes.Buffer{},
	}
	t.Setenv("HOME", t.TempDir())

	lock := `{"packages": [{"name": "acme/tools", "version": "v1.4.0"}]}`
	writeFile(t, filepath.Join(env.Root, "composer.lock"), lock)
	writeFile(t, filepath.Join(env.Root, "vendor/acme/tools/composer.json"),
		`{"name": "acme/tools", "autoload": {"psr-4": {"Acme\\Tools\\": "src/"}}}`)
	writeFile(t, filepath.Join(env.Root, "vendor/acme/tools/osmscripts.json"), `{
    "commands": {
        "var": "OsmScripts\\Core\\Commands\\Var_",
        "show-config": "OsmScripts\\Core\\Commands\\ShowConfig"
    },
    "osm": {
        "name": "Osm Tools",
        "commands": {
            "create-package": "OsmScripts\\Core\\Commands\\CreatePackage"
        }
    },
    "variables": {
        "package": "Package the commands work on"
    }
}`)
	writeFile(t, filepath.Join(env.WorkDir, "composer.lock"), lock)

	t.Chdir(env.WorkDir)
	return env
}

// run executes the osm script with args and returns its standard output.
func (env *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	s, err := script.New(script.Options{Name: "osm", Root: env.Root, Logger: console.New(env.Log)})
	if err != nil {
		t.Fatalf("script.New: %v", err)
	}

	var out bytes.Buffer
	root, err := cli.NewRootCommand(s, &out, "test")
	if err != nil {
		return "", err
	}
	root.SetArgs(args)
	root.SetErr(&out)
	err = root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q:\n%s", path, substr, data)
	}
}
