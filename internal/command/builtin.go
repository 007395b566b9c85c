package command

// Class names of the commands this module provides.
const (
	VarClass           = `OsmScripts\Core\Commands\Var_`
	ShowConfigClass    = `OsmScripts\Core\Commands\ShowConfig`
	CreatePackageClass = `OsmScripts\Core\Commands\CreatePackage`
	UpdateClass        = `OsmScripts\Core\Commands\Update`
)

func init() {
	Register(VarClass, func() Command { return &Var{} })
	Register(ShowConfigClass, func() Command { return &ShowConfig{} })
	Register(CreatePackageClass, func() Command { return &CreatePackage{} })
	Register(UpdateClass, func() Command { return &Update{} })
}
