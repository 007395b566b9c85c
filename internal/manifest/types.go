package manifest

// Lock is the parsed project lockfile. Development packages are not
// consulted by scripts and are left out.
type Lock struct {
	// Packages lists installed packages in lockfile order.
	Packages []LockPackage
}

// LockPackage is one installed package entry of the lockfile.
type LockPackage struct {
	Name    string
	Version string
}

// Composer is the parsed manifest of a single package.
type Composer struct {
	Name     string
	Autoload Autoload
}

// Autoload is the autoload section of a package manifest.
type Autoload struct {
	// PSR4 keeps namespace mappings in manifest order.
	PSR4 []NamespaceMapping
}

// NamespaceMapping maps a namespace prefix to one or more source directories.
type NamespaceMapping struct {
	Namespace string
	Paths     []string
}

// Well-known file and directory names of a project.
const (
	LockFile        = "composer.lock"
	ComposerFile    = "composer.json"
	LocalConfigFile = "osmscripts.json"
	VendorDir       = "vendor"
	SourceDir       = "src/"
)

// Global modes a script configuration may declare.
const (
	GlobalNever       = "never"
	GlobalUponRequest = "upon_request"
	GlobalAlways      = "always"
)
