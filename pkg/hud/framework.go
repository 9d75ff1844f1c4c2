// Package hud maintains a per-user status panel built from built-in
// condition checks and statuses contributed at runtime by other components.
//
// On every tick the controller evaluates the user, decides whether the panel
// needs a full rebuild and either lays it out again or patches the values
// of dynamic statuses in place.
package hud

import (
	"log"
	"sync"
)

// Listener receives the host notifications the controller needs.
type Listener interface {
	OnTick(u User, dt float64)
	OnDisconnect(user string)
	OnShutdown()
}

// Host is the game host the controller attaches to.
type Host interface {
	Subscribe(l Listener) (cancel func())
	ActiveUsers() []string
}

type renderState struct {
	dynamics []DynamicElement
}

// Options configures a Controller.
type Options struct {
	Layout     Layout
	Thresholds Thresholds
	Mode       ChangeMode
	Icons      IconResolver
}

func DefaultOptions() Options {
	return Options{
		Layout:     DefaultLayout(),
		Thresholds: DefaultThresholds(),
		Mode:       ChangeByCount,
	}
}

// Controller owns the registry and all per-user render state.
type Controller struct {
	Registry *Registry

	mu         sync.Mutex
	drawer     Drawer
	thresholds Thresholds
	engine     *LayoutEngine
	detector   *ChangeDetector
	refresher  *Refresher
	users      map[string]*renderState

	host   Host
	cancel func()
}

func NewController(drawer Drawer, opts Options) *Controller {
	return &Controller{
		Registry:   NewRegistry(),
		drawer:     drawer,
		thresholds: opts.Thresholds,
		engine:     NewLayoutEngine(opts.Layout, opts.Icons),
		detector:   NewChangeDetector(opts.Mode),
		refresher:  &Refresher{Drawer: drawer},
		users:      make(map[string]*renderState),
	}
}

// RegisterStatus contributes a status with a fixed value.
func (c *Controller) RegisterStatus(leftText, rightText, color, icon string, when Condition) {
	c.Registry.RegisterStatus(leftText, rightText, color, icon, when)
}

// RegisterDynamicStatus contributes a status whose value is computed per tick.
func (c *Controller) RegisterDynamicStatus(leftText, color, icon string, when Condition, value ValueSource) {
	c.Registry.RegisterDynamicStatus(leftText, color, icon, when, value)
}

// Configure swaps thresholds, layout, icons and change mode. Panels are
// rebuilt on the next tick of each user.
func (c *Controller) Configure(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.thresholds = opts.Thresholds
	c.engine = NewLayoutEngine(opts.Layout, opts.Icons)
	c.detector = NewChangeDetector(opts.Mode)
}

// Active reports whether the controller is attached to a host.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.host != nil
}

// Load attaches the controller to host. Calling Load twice is a no-op.
func (c *Controller) Load(host Host) {
	c.mu.Lock()
	if c.host != nil {
		c.mu.Unlock()
		return
	}
	c.host = host
	c.mu.Unlock()

	cancel := host.Subscribe(c)

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	log.Printf("HUD: loaded with %d registered statuses", c.Registry.Len())
}

// Unload detaches from the host and removes every connected user's panel.
func (c *Controller) Unload() {
	c.mu.Lock()
	host, cancel := c.host, c.cancel
	c.host, c.cancel = nil, nil
	c.users = make(map[string]*renderState)
	c.detector.Reset()
	c.mu.Unlock()

	if host == nil {
		return
	}
	if cancel != nil {
		cancel()
	}
	for _, user := range host.ActiveUsers() {
		if err := c.drawer.Destroy(user, RootName); err != nil {
			log.Printf("HUD: destroy panel for %s: %v", user, err)
		}
	}
	log.Printf("HUD: unloaded")
}

// OnShutdown implements Listener.
func (c *Controller) OnShutdown() {
	c.Unload()
}

// OnDisconnect drops everything cached for user.
func (c *Controller) OnDisconnect(user string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forget(user)
}

// OnTick evaluates u and rebuilds or patches its panel. Ticks for an
// invalid user or with no elapsed time are skipped.
//
// Conditions and value sources run without the controller lock held, so
// they may call back into the controller.
func (c *Controller) OnTick(u User, dt float64) {
	if u == nil || dt == 0 {
		return
	}
	vitals, ok := u.Vitals()
	if !ok {
		return
	}
	id := u.ID()

	c.mu.Lock()
	if c.host == nil {
		c.mu.Unlock()
		return
	}
	thresholds := c.thresholds
	var cached []*CustomStatus
	if st, ok := c.users[id]; ok {
		for _, de := range st.dynamics {
			cached = append(cached, de.Status)
		}
	}
	c.mu.Unlock()

	tokens := Evaluate(vitals, thresholds)
	customs := c.Registry.ActiveFor(u)
	values := computeValues(u, customs, cached)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.host == nil {
		return
	}

	if c.detector.Changed(id, tokens, customs) {
		c.rebuild(u, tokens, customs, values)
		return
	}
	if st, ok := c.users[id]; ok && len(st.dynamics) > 0 {
		if !c.refresher.refresh(u, st.dynamics, values) {
			c.forget(id)
		}
	}
}

// rebuild replaces the whole panel. The old tree is destroyed before the
// new one is drawn. If the drawer fails, nothing is cached for the user so
// the next tick rebuilds again.
func (c *Controller) rebuild(u User, tokens []Token, customs []*CustomStatus, values valueSet) {
	id := u.ID()
	frame := c.engine.build(tokens, customs, values)

	if err := c.drawer.Destroy(id, RootName); err != nil {
		log.Printf("HUD: destroy panel for %s: %v", id, err)
		c.forget(id)
		return
	}
	if !frame.Empty() {
		if err := c.drawer.Draw(id, frame.Elements); err != nil {
			log.Printf("HUD: draw panel for %s: %v", id, err)
			c.forget(id)
			return
		}
	}
	c.state(id).dynamics = frame.Dynamic
}

// forget drops the render state of user. Callers hold c.mu.
func (c *Controller) forget(user string) {
	delete(c.users, user)
	c.detector.Forget(user)
}

func (c *Controller) state(user string) *renderState {
	st, ok := c.users[user]
	if !ok {
		st = &renderState{}
		c.users[user] = st
	}
	return st
}

// LastCount returns the combined count last rendered for user.
func (c *Controller) LastCount(user string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detector.LastCount(user)
}

// DynamicCount returns how many dynamic values are cached for user.
func (c *Controller) DynamicCount(user string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.users[user]; ok {
		return len(st.dynamics)
	}
	return 0
}
