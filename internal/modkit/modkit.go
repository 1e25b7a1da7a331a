// Package modkit wires API modules: shared Deps, build options and the
// routing Base every module embeds
package modkit

import "villagevisits/internal/modkit/module"

// Module is what the api mounts, see module.Module
type Module = module.Module
