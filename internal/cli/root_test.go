package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osmscripts/core/internal/command"
	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/script"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// recorder remembers the working directory it ran in.
type recorder struct{ dirs *[]string }

func (r recorder) Configure(cmd *cobra.Command, _ *command.Env) {
	cmd.Short = "Records its working directory"
}
func (r recorder) Run(context.Context, *command.Env, []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	*r.dirs = append(*r.dirs, cwd)
	return nil
}

const recorderClass = `Acme\Tools\Record`

var ran []string

func init() {
	command.Register(recorderClass, func() command.Command { return recorder{dirs: &ran} })
}

// newScript installs a script at root with one package whose
// osmscripts.json is config.
func newScript(t *testing.T, root, config string) (*script.Script, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"composer.lock":                     `{"packages": [{"name": "acme/tools"}]}`,
		"vendor/acme/tools/composer.json":   `{"name": "acme/tools"}`,
		"vendor/acme/tools/osmscripts.json": config,
	}
	for path, contents := range files {
		if err := afero.WriteFile(fs, filepath.Join(root, path), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var log bytes.Buffer
	s, err := script.New(script.Options{Name: "osm", Root: root, Fs: fs, Logger: console.New(&log)})
	if err != nil {
		t.Fatal(err)
	}
	return s, &log
}

func execute(t *testing.T, s *script.Script, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root, err := NewRootCommand(s, &out, "1.2.3")
	if err != nil {
		t.Fatalf("NewRootCommand error: %v", err)
	}
	root.SetArgs(args)
	root.SetErr(&out)
	err = root.Execute()
	return out.String(), err
}

func realDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func cwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return realDir(t, dir)
}

func TestInvalidWorkDir(t *testing.T) {
	t.Chdir(t.TempDir())
	ran = nil
	s, _ := newScript(t, "/work/app", `{"commands": {"record": "Acme\\Tools\\Record"}}`)

	missing := filepath.Join(t.TempDir(), "nonexistent")
	_, err := execute(t, s, "--work-dir="+missing, "record")
	if !errors.Is(err, ErrInvalidWorkDir) {
		t.Fatalf("error = %v, want ErrInvalidWorkDir", err)
	}
	if len(ran) != 0 {
		t.Errorf("command ran in %v despite invalid work dir", ran)
	}
}

func TestWorkDirIsFile(t *testing.T) {
	t.Chdir(t.TempDir())
	ran = nil
	s, _ := newScript(t, "/work/app", `{"commands": {"record": "Acme\\Tools\\Record"}}`)

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, s, "--work-dir", file, "record"); !errors.Is(err, ErrInvalidWorkDir) {
		t.Fatalf("error = %v, want ErrInvalidWorkDir", err)
	}
}

func TestWorkDir(t *testing.T) {
	t.Chdir(t.TempDir())
	ran = nil
	s, log := newScript(t, "/work/app", `{"commands": {"record": "Acme\\Tools\\Record"}}`)

	target := t.TempDir()
	if _, err := execute(t, s, "--work-dir", target, "record"); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if len(ran) != 1 || realDir(t, ran[0]) != realDir(t, target) {
		t.Errorf("ran in %v, want %s", ran, target)
	}
	if !strings.Contains(log.String(), "cd "+target) {
		t.Errorf("log %q does not show the directory change", log.String())
	}
}

func TestGlobalFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	ran = nil
	root := t.TempDir()
	s, _ := newScript(t, root, `{"global": "upon_request", "commands": {"record": "Acme\\Tools\\Record"}}`)

	start := cwd(t)
	if _, err := execute(t, s, "record"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, s, "-g", "record"); err != nil {
		t.Fatal(err)
	}

	if len(ran) != 2 {
		t.Fatalf("ran %d times, want 2", len(ran))
	}
	if realDir(t, ran[0]) != start {
		t.Errorf("without -g ran in %s, want %s", ran[0], start)
	}
	if realDir(t, ran[1]) != realDir(t, root) {
		t.Errorf("with -g ran in %s, want %s", ran[1], root)
	}
}

func TestGlobalFlagOnlyUponRequest(t *testing.T) {
	t.Chdir(t.TempDir())
	s, _ := newScript(t, "/work/app", `{"commands": {"record": "Acme\\Tools\\Record"}}`)

	if _, err := execute(t, s, "--global", "record"); err == nil {
		t.Fatal("expected unknown flag error when global mode is never")
	}
}

func TestGlobalAlways(t *testing.T) {
	t.Chdir(t.TempDir())
	ran = nil
	root := t.TempDir()
	s, _ := newScript(t, root, `{"global": "always", "commands": {"record": "Acme\\Tools\\Record"}}`)

	if _, err := execute(t, s, "record"); err != nil {
		t.Fatal(err)
	}
	if len(ran) != 1 || realDir(t, ran[0]) != realDir(t, root) {
		t.Errorf("ran in %v, want %s", ran, root)
	}
}

func TestUnknownCommandClass(t *testing.T) {
	s, _ := newScript(t, "/work/app", `{"commands": {"build": "Acme\\Tools\\Missing"}}`)

	_, err := NewRootCommand(s, &bytes.Buffer{}, "dev")
	if !errors.Is(err, command.ErrUnknownCommandClass) {
		t.Fatalf("error = %v, want ErrUnknownCommandClass", err)
	}
}

func TestRootDescribesScript(t *testing.T) {
	s, _ := newScript(t, "/work/app", `{"name": "Acme Tools", "commands": {"record": "Acme\\Tools\\Record"}}`)

	root, err := NewRootCommand(s, &bytes.Buffer{}, "dev")
	if err != nil {
		t.Fatal(err)
	}
	if root.Use != "osm" {
		t.Errorf("Use = %q, want %q", root.Use, "osm")
	}
	if root.Short != "Acme Tools" {
		t.Errorf("Short = %q, want %q", root.Short, "Acme Tools")
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	got := strings.Join(names, ",")
	if got != "record,settings" {
		t.Errorf("commands = %q, want %q", got, "record,settings")
	}
}

func TestVersionFlag(t *testing.T) {
	s, _ := newScript(t, "/work/app", `{}`)

	out, err := execute(t, s, "-V")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("output %q does not contain the version", out)
	}
}
