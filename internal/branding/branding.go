// Package branding provides the identity values of the CLI: its description,
// the user settings directory and the environment variable prefix.
//
// The values are embedded from branding.yaml, so a fork can rename the tool
// without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			Description: "Command-line scripts assembled from installed Composer packages",
			HomeDir:     ".osmscripts",
			EnvPrefix:   "OSMSCRIPTS",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".osmscripts").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "OSMSCRIPTS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("root") → "OSMSCRIPTS_ROOT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
