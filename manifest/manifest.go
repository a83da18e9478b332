// Package manifest lists the systems and services the sandbox instantiates
package manifest

import (
	"fmt"

	"github.com/lixenwraith/sentry/engine"
	"github.com/lixenwraith/sentry/registry"
	"github.com/lixenwraith/sentry/system"
	"go.uber.org/zap"
)

// Deps carries what system factories need
type Deps struct {
	World   *engine.World
	Weapons system.WeaponSource
	Logger  *zap.Logger
	Turret  system.TurretConfig
	Router  *engine.EventRouter
}

// RegisterSystems registers all system factories with the registry
func RegisterSystems() {
	registry.RegisterSystem("turret", func(d any) any {
		deps := d.(*Deps)
		return system.NewTurretSystem(deps.World, deps.Weapons, deps.logger().Named("turret"), deps.Turret)
	})
	registry.RegisterSystem("dispatch", func(d any) any {
		deps := d.(*Deps)
		return system.NewDispatchSystem(deps.Router, deps.logger().Named("dispatch"))
	})
}

// ActiveSystems returns the ordered list of systems to instantiate
func ActiveSystems() []string {
	return []string{
		"turret",
		"dispatch",
	}
}

// BuildSystems instantiates the active systems and adds them to the world
func BuildSystems(deps *Deps) ([]engine.System, error) {
	if deps.World == nil {
		return nil, fmt.Errorf("build systems: nil world")
	}
	if deps.Router == nil {
		deps.Router = engine.NewEventRouter(deps.World.Events())
	}

	var out []engine.System
	for _, name := range ActiveSystems() {
		factory, ok := registry.GetSystem(name)
		if !ok {
			return nil, fmt.Errorf("system %q not registered", name)
		}
		sys, ok := factory(deps).(engine.System)
		if !ok {
			return nil, fmt.Errorf("factory %q did not return a system", name)
		}
		deps.World.AddSystem(sys)
		out = append(out, sys)
	}
	return out, nil
}

func (d *Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
