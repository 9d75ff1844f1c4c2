package systems

import (
	"math"

	"statushud/pkg/shared/components"
	"statushud/pkg/shared/ecs"
)

// Drift rates per second.
const (
	calorieBurn    = 0.5
	hydrationBurn  = 0.8
	bleedRecovery  = 1.0
	radiationDecay = 0.5
	dryingRate     = 0.05
	oxygenLoss     = 0.1
	oxygenRecovery = 0.5
	heatExchange   = 1.0
	shelterComfort = 0.25
)

// MetabolismSystem is a small stand-in for the host's physiology: values
// drift every step so that HUD conditions come and go.
type MetabolismSystem struct {
	World              *ecs.World
	AmbientTemperature float64
}

func NewMetabolismSystem(world *ecs.World, ambient float64) *MetabolismSystem {
	return &MetabolismSystem{
		World:              world,
		AmbientTemperature: ambient,
	}
}

func (s *MetabolismSystem) Update(dt float64) {
	for _, id := range ecs.Query[components.MetabolismComponent](s.World) {
		ecs.Update[components.MetabolismComponent](s.World, id, func(m *components.MetabolismComponent) {
			s.step(m, dt)
		})
		s.updateComfort(id)
	}
}

func (s *MetabolismSystem) step(m *components.MetabolismComponent, dt float64) {
	m.Calories = math.Max(0, m.Calories-calorieBurn*dt)
	m.Hydration = math.Max(0, m.Hydration-hydrationBurn*dt)
	m.Bleeding = math.Max(0, m.Bleeding-bleedRecovery*dt)
	m.Radiation = math.Max(0, m.Radiation-radiationDecay*dt)

	if m.Swimming {
		m.Wetness = 1
		m.Oxygen = math.Max(0, m.Oxygen-oxygenLoss*dt)
	} else {
		m.Wetness = math.Max(0, m.Wetness-dryingRate*dt)
		m.Oxygen = math.Min(1, m.Oxygen+oxygenRecovery*dt)
	}

	// Wet players feel colder.
	target := s.AmbientTemperature - 10*m.Wetness
	switch {
	case m.Temperature < target:
		m.Temperature = math.Min(target, m.Temperature+heatExchange*dt)
	case m.Temperature > target:
		m.Temperature = math.Max(target, m.Temperature-heatExchange*dt)
	}
}

// updateComfort grants shelter comfort inside any cupboard radius.
func (s *MetabolismSystem) updateComfort(id ecs.Entity) {
	pos, ok := ecs.GetComponent[components.TransformComponent](s.World, id)
	if !ok {
		return
	}
	comfort := 0.0
	if _, _, found := FindPrivilege(s.World, pos.X, pos.Y); found {
		comfort = shelterComfort
	}
	s.World.AddComponent(id, components.ComfortComponent{Value: comfort})
}

// FindPrivilege returns the first cupboard (lowest ID) covering (x, y).
func FindPrivilege(w *ecs.World, x, y float64) (ecs.Entity, components.PrivilegeComponent, bool) {
	for _, id := range ecs.Query[components.PrivilegeComponent](w) {
		priv, _ := ecs.GetComponent[components.PrivilegeComponent](w, id)
		at, ok := ecs.GetComponent[components.TransformComponent](w, id)
		if !ok {
			continue
		}
		if priv.Covers(*at, x, y) {
			return id, *priv, true
		}
	}
	return 0, components.PrivilegeComponent{}, false
}
