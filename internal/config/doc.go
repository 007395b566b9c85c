// Package config manages user-level settings stored at ~/.osmscripts/config.yaml
// and OSMSCRIPTS_* environment variables: the package manager binary and
// overrides for the script name, root directory and global mode.
package config
