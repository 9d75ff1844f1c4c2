package systems

import (
	"testing"

	"statushud/pkg/hud"
	"statushud/pkg/shared/components"
	"statushud/pkg/shared/ecs"
)

func spawnPlayer(w *ecs.World, user string, x, y float64) ecs.Entity {
	id := w.NewEntity()
	w.AddComponent(id, components.PlayerComponent{UserID: user})
	w.AddComponent(id, components.TransformComponent{X: x, Y: y})
	w.AddComponent(id, components.DefaultMetabolism())
	return id
}

func spawnCupboard(w *ecs.World, x, y, r float64, authed ...string) ecs.Entity {
	id := w.NewEntity()
	auth := make(map[string]bool)
	for _, a := range authed {
		auth[a] = true
	}
	w.AddComponent(id, components.TransformComponent{X: x, Y: y})
	w.AddComponent(id, components.PrivilegeComponent{Radius: r, Authorized: auth})
	return id
}

func TestMetabolismSwimmingDrainsOxygen(t *testing.T) {
	w := ecs.NewWorld()
	id := spawnPlayer(w, "alice", 0, 0)
	ecs.Update[components.MetabolismComponent](w, id, func(m *components.MetabolismComponent) { m.Swimming = true })

	s := NewMetabolismSystem(w, 18)
	s.Update(1)

	m, _ := ecs.GetComponent[components.MetabolismComponent](w, id)
	if m.Wetness != 1 {
		t.Fatalf("expected swimmer to be soaked, got %v", m.Wetness)
	}
	if m.Oxygen >= 1 {
		t.Fatalf("expected oxygen to drop, got %v", m.Oxygen)
	}
	if m.Calories >= 500 || m.Hydration >= 250 {
		t.Fatalf("expected calories and hydration to burn, got %+v", m)
	}

	ecs.Update[components.MetabolismComponent](w, id, func(m *components.MetabolismComponent) { m.Swimming = false })
	for i := 0; i < 10; i++ {
		s.Update(1)
	}
	m, _ = ecs.GetComponent[components.MetabolismComponent](w, id)
	if m.Oxygen != 1 {
		t.Fatalf("expected oxygen to recover fully, got %v", m.Oxygen)
	}
}

func TestMetabolismGrantsShelterComfort(t *testing.T) {
	w := ecs.NewWorld()
	inside := spawnPlayer(w, "alice", 10, 10)
	outside := spawnPlayer(w, "bob", 1000, 1000)
	spawnCupboard(w, 0, 0, 50)

	NewMetabolismSystem(w, 18).Update(0.1)

	if c, _ := ecs.GetComponent[components.ComfortComponent](w, inside); c.Value <= 0 {
		t.Fatalf("expected comfort inside the cupboard radius")
	}
	if c, _ := ecs.GetComponent[components.ComfortComponent](w, outside); c.Value != 0 {
		t.Fatalf("expected no comfort outside, got %v", c.Value)
	}
}

func TestPlayerUserVitals(t *testing.T) {
	w := ecs.NewWorld()
	alice := spawnPlayer(w, "alice", 10, 10)
	bob := spawnPlayer(w, "bob", 10, 10)
	spawnCupboard(w, 0, 0, 50, "alice")
	s := NewHUDSystem(w)

	v, ok := s.User(alice).Vitals()
	if !ok || v.Privilege == nil || !v.Privilege.Authorized {
		t.Fatalf("expected alice to be authorized, got %+v", v.Privilege)
	}
	v, _ = s.User(bob).Vitals()
	if v.Privilege == nil || v.Privilege.Authorized {
		t.Fatalf("expected bob covered but not authorized, got %+v", v.Privilege)
	}

	u := s.User(bob)
	w.RemoveEntity(bob)
	if _, ok := u.Vitals(); ok {
		t.Fatalf("expected removed player to be invalid")
	}
}

type recordingListener struct {
	ticks       map[string]int
	disconnects []string
	shutdowns   int
}

func (l *recordingListener) OnTick(u hud.User, dt float64) { l.ticks[u.ID()]++ }
func (l *recordingListener) OnDisconnect(user string)      { l.disconnects = append(l.disconnects, user) }
func (l *recordingListener) OnShutdown()                   { l.shutdowns++ }

func TestHUDSystemDeliversHostEvents(t *testing.T) {
	w := ecs.NewWorld()
	spawnPlayer(w, "alice", 0, 0)
	spawnPlayer(w, "bob", 0, 0)
	s := NewHUDSystem(w)
	l := &recordingListener{ticks: make(map[string]int)}
	cancel := s.Subscribe(l)

	s.Update(0.033)
	s.Update(0.033)
	if l.ticks["alice"] != 2 || l.ticks["bob"] != 2 {
		t.Fatalf("expected two ticks per player, got %v", l.ticks)
	}
	if users := s.ActiveUsers(); len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Fatalf("unexpected active users %v", users)
	}

	s.Disconnect("bob")
	s.Shutdown()
	if len(l.disconnects) != 1 || l.shutdowns != 1 {
		t.Fatalf("expected one disconnect and one shutdown, got %v %d", l.disconnects, l.shutdowns)
	}

	cancel()
	s.Update(0.033)
	if l.ticks["alice"] != 2 {
		t.Fatalf("expected no ticks after cancel, got %d", l.ticks["alice"])
	}
}
