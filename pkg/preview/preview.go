package preview

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"statushud/pkg/client/scene"
	"statushud/pkg/hud"
	"statushud/pkg/shared/config"
)

// Recorder is a hud.Drawer that keeps one scene per user in memory.
type Recorder struct {
	mu       sync.Mutex
	trees    map[string]*scene.Tree
	Draws    int
	Destroys int
}

func NewRecorder() *Recorder {
	return &Recorder{trees: make(map[string]*scene.Tree)}
}

func (r *Recorder) Destroy(user, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Destroys++
	r.treeLocked(user).Destroy(name)
	return nil
}

func (r *Recorder) Draw(user string, elements []hud.Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Draws++
	r.treeLocked(user).Draw(elements)
	return nil
}

// Tree returns the scene drawn for user.
func (r *Recorder) Tree(user string) *scene.Tree {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.treeLocked(user)
}

func (r *Recorder) treeLocked(user string) *scene.Tree {
	t, ok := r.trees[user]
	if !ok {
		t = scene.NewTree(config.ScreenWidth, config.ScreenHeight)
		r.trees[user] = t
	}
	return t
}

// Step is one tick of a script.
type Step struct {
	Label  string
	Vitals hud.Vitals
	Dt     float64
}

type scriptUser struct {
	id     string
	vitals hud.Vitals
}

func (u *scriptUser) ID() string                 { return u.id }
func (u *scriptUser) Vitals() (hud.Vitals, bool) { return u.vitals, true }

// scriptHost delivers ticks for a single user.
type scriptHost struct {
	user      string
	listeners []hud.Listener
}

func (h *scriptHost) Subscribe(l hud.Listener) func() {
	h.listeners = append(h.listeners, l)
	return func() { h.listeners = nil }
}

func (h *scriptHost) ActiveUsers() []string { return []string{h.user} }

// Options configures a preview run.
type Options struct {
	User     string
	HUD      hud.Options
	Register func(c *hud.Controller)
}

// Run plays steps and writes the display after each of them to w.
func Run(w io.Writer, steps []Step, opts Options) error {
	if opts.User == "" {
		opts.User = "preview"
	}
	rec := NewRecorder()
	c := hud.NewController(rec, opts.HUD)
	if opts.Register != nil {
		opts.Register(c)
	}
	host := &scriptHost{user: opts.User}
	c.Load(host)
	defer c.Unload()

	u := &scriptUser{id: opts.User}
	for i, step := range steps {
		u.vitals = step.Vitals
		draws, destroys := rec.Draws, rec.Destroys
		for _, l := range host.listeners {
			l.OnTick(u, step.Dt)
		}

		tokens := hud.Evaluate(step.Vitals, opts.HUD.Thresholds)
		names := make([]string, len(tokens))
		for j, t := range tokens {
			names[j] = string(t)
		}
		_, err := fmt.Fprintf(w, "%d. %s\n   built-in: [%s]  draws +%d  destroys +%d\n%s\n\n",
			i+1, step.Label, strings.Join(names, ", "),
			rec.Draws-draws, rec.Destroys-destroys,
			Render(rec.Tree(opts.User).Nodes()))
		if err != nil {
			return fmt.Errorf("write step %d: %w", i+1, err)
		}
	}
	return nil
}

// DemoScript walks a player through the demo statuses and a few built-in
// conditions.
func DemoScript() []Step {
	const dt = 0.033
	base := hud.Vitals{Temperature: 20, Calories: 500, Hydration: 250, Oxygen: 1}
	with := func(fn func(v *hud.Vitals)) hud.Vitals {
		v := base
		fn(&v)
		return v
	}
	authed := &hud.Privilege{Authorized: true}

	return []Step{
		{Label: "spawn in the open", Vitals: base, Dt: dt},
		{Label: "ignored zero-delta tick", Vitals: with(func(v *hud.Vitals) { v.Privilege = authed }), Dt: 0},
		{Label: "authorized at a cupboard", Vitals: with(func(v *hud.Vitals) { v.Privilege = authed; v.Comfort = 0.25 }), Dt: dt},
		{Label: "getting thirsty", Vitals: with(func(v *hud.Vitals) { v.Privilege = authed; v.Comfort = 0.25; v.Hydration = 100 }), Dt: dt},
		{Label: "thirstier, same statuses", Vitals: with(func(v *hud.Vitals) { v.Privilege = authed; v.Comfort = 0.25; v.Hydration = 80 }), Dt: dt},
		{Label: "swimming out of range", Vitals: with(func(v *hud.Vitals) { v.Hydration = 80; v.Wetness = 1; v.Oxygen = 0.5 }), Dt: dt},
		{Label: "back on land, rehydrated", Vitals: base, Dt: dt},
	}
}
