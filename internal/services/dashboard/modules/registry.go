// Package modules lists the feature modules the dashboard composes.
package modules

import (
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/modules/endpoints"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/modules/nav"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/modules/profile"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/modules/public"
)

// Module is the dashboard feature contract.
type Module = module.Module

// Dependencies is the shared collaborator set modules mount against.
type Dependencies = module.Dependencies

// DefaultModules returns the stable dashboard modules.
func DefaultModules() []Module {
	return []Module{
		public.New(),
		nav.New(),
		profile.New(),
		endpoints.New(endpoints.Products),
		endpoints.New(endpoints.Hello),
	}
}
