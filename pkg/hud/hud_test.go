package hud

import (
	"fmt"
	"strings"
	"sync"
)

type testUser struct {
	id     string
	vitals Vitals
	valid  bool
}

func (u *testUser) ID() string { return u.id }

func (u *testUser) Vitals() (Vitals, bool) { return u.vitals, u.valid }

// normalVitals trips none of the built-in checks.
func normalVitals() Vitals {
	return Vitals{
		Temperature: 20,
		Calories:    500,
		Hydration:   250,
		Oxygen:      1,
	}
}

func newTestUser(id string) *testUser {
	return &testUser{id: id, vitals: normalVitals(), valid: true}
}

type drawOp struct {
	kind     string // "destroy" or "draw"
	user     string
	name     string
	elements []Element
}

func (op drawOp) String() string {
	if op.kind == "destroy" {
		return fmt.Sprintf("destroy(%s,%s)", op.user, op.name)
	}
	names := make([]string, len(op.elements))
	for i, e := range op.elements {
		names[i] = e.Name
	}
	return fmt.Sprintf("draw(%s,[%s])", op.user, strings.Join(names, " "))
}

type recordingDrawer struct {
	mu      sync.Mutex
	ops     []drawOp
	err     error // returned by both calls
	drawErr error // returned by Draw only
}

func (d *recordingDrawer) Destroy(user, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, drawOp{kind: "destroy", user: user, name: name})
	return d.err
}

func (d *recordingDrawer) Draw(user string, elements []Element) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]Element, len(elements))
	for i, e := range elements {
		cp[i] = e.Clone()
	}
	d.ops = append(d.ops, drawOp{kind: "draw", user: user, elements: cp})
	if d.drawErr != nil {
		return d.drawErr
	}
	return d.err
}

func (d *recordingDrawer) fail(err, drawErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err, d.drawErr = err, drawErr
}

func (d *recordingDrawer) take() []drawOp {
	d.mu.Lock()
	defer d.mu.Unlock()
	ops := d.ops
	d.ops = nil
	return ops
}

type testHost struct {
	listeners []Listener
	users     []string
	cancelled int
}

func (h *testHost) Subscribe(l Listener) func() {
	h.listeners = append(h.listeners, l)
	return func() {
		h.cancelled++
		h.listeners = nil
	}
}

func (h *testHost) ActiveUsers() []string { return h.users }

type mapIcons map[string]string

func (m mapIcons) ResolveIcon(name string) (string, bool) {
	h, ok := m[name]
	return h, ok
}

func always(User) bool { return true }

func findElement(elements []Element, name string) (Element, bool) {
	for _, e := range elements {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}
