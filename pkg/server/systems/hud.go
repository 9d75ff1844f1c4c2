package systems

import (
	"statushud/pkg/hud"
	"statushud/pkg/shared/components"
	"statushud/pkg/shared/ecs"
)

// PlayerUser exposes one player entity to the HUD as a read-only snapshot.
type PlayerUser struct {
	World  *ecs.World
	Entity ecs.Entity
	UserID string
}

func (u *PlayerUser) ID() string { return u.UserID }

// Vitals reports false once the entity is gone or lost its metabolism.
func (u *PlayerUser) Vitals() (hud.Vitals, bool) {
	if !u.World.Alive(u.Entity) {
		return hud.Vitals{}, false
	}
	m, ok := ecs.GetComponent[components.MetabolismComponent](u.World, u.Entity)
	if !ok {
		return hud.Vitals{}, false
	}
	v := hud.Vitals{
		Bleeding:    m.Bleeding,
		Temperature: m.Temperature,
		Calories:    m.Calories,
		Hydration:   m.Hydration,
		Radiation:   m.Radiation,
		Wetness:     m.Wetness,
		Oxygen:      m.Oxygen,
	}
	if c, ok := ecs.GetComponent[components.ComfortComponent](u.World, u.Entity); ok {
		v.Comfort = c.Value
	}
	if pos, ok := ecs.GetComponent[components.TransformComponent](u.World, u.Entity); ok {
		if _, priv, found := FindPrivilege(u.World, pos.X, pos.Y); found {
			v.Privilege = &hud.Privilege{Authorized: priv.IsAuthed(u.UserID)}
		}
	}
	return v, true
}

type subscription struct {
	id       int
	listener hud.Listener
}

// HUDSystem is the host side of the HUD: it delivers the per-user tick,
// disconnects and shutdown to subscribed listeners. Like the rest of the
// systems it runs under the server mutex.
type HUDSystem struct {
	World  *ecs.World
	subs   []subscription
	nextID int
}

func NewHUDSystem(world *ecs.World) *HUDSystem {
	return &HUDSystem{World: world}
}

// Subscribe implements hud.Host.
func (s *HUDSystem) Subscribe(l hud.Listener) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, listener: l})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// ActiveUsers implements hud.Host.
func (s *HUDSystem) ActiveUsers() []string {
	players := ecs.Query[components.PlayerComponent](s.World)
	users := make([]string, 0, len(players))
	for _, id := range players {
		p, _ := ecs.GetComponent[components.PlayerComponent](s.World, id)
		users = append(users, p.UserID)
	}
	return users
}

// User wraps a player entity.
func (s *HUDSystem) User(id ecs.Entity) *PlayerUser {
	p, ok := ecs.GetComponent[components.PlayerComponent](s.World, id)
	if !ok {
		return &PlayerUser{World: s.World, Entity: id}
	}
	return &PlayerUser{World: s.World, Entity: id, UserID: p.UserID}
}

// Update ticks every listener once per player.
func (s *HUDSystem) Update(dt float64) {
	if len(s.subs) == 0 {
		return
	}
	for _, id := range ecs.Query[components.PlayerComponent](s.World) {
		u := s.User(id)
		for _, sub := range s.listeners() {
			sub.OnTick(u, dt)
		}
	}
}

// Disconnect notifies listeners that user left.
func (s *HUDSystem) Disconnect(user string) {
	for _, l := range s.listeners() {
		l.OnDisconnect(user)
	}
}

// Shutdown notifies listeners that the host is stopping.
func (s *HUDSystem) Shutdown() {
	for _, l := range s.listeners() {
		l.OnShutdown()
	}
}

// listeners snapshots the subscriptions; listeners may cancel while notified.
func (s *HUDSystem) listeners() []hud.Listener {
	out := make([]hud.Listener, len(s.subs))
	for i, sub := range s.subs {
		out[i] = sub.listener
	}
	return out
}
