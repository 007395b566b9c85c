package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/osmscripts/core/internal/console"
	"github.com/osmscripts/core/internal/manifest"
	"github.com/osmscripts/core/internal/script"
)

// ErrInvalidWorkDir is returned when --work-dir is not a directory.
var ErrInvalidWorkDir = errors.New("not a valid directory")

// changeWorkDir applies --work-dir, --global and the "always" global mode,
// in that order of precedence.
func changeWorkDir(s *script.Script, f *flags) error {
	var dir string
	switch {
	case f.workDir != "":
		info, err := os.Stat(f.workDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("'%s' is %w", f.workDir, ErrInvalidWorkDir)
		}
		dir = f.workDir
	case f.global, s.Global() == manifest.GlobalAlways:
		dir = s.Root()
	default:
		return nil
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("changing directory to %s: %w", dir, err)
	}
	console.Command(s.Logger(), "cd "+dir, false)
	return nil
}
