package host

import "mdhost/core"

// Factory builds an emulation core instance.
type Factory func() core.Core

var registered Factory

// RegisterCore installs the core factory the command line frontend
// uses. Core adapter packages call this from init().
func RegisterCore(f Factory) {
	registered = f
}

// RegisteredCore returns the installed factory, nil if no core is
// linked into the build.
func RegisteredCore() Factory {
	return registered
}
