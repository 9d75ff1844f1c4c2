package hud

import (
	"log"
	"sync"
)

const DefaultStatusColor = "0.9 0.9 0.9 1"

// Condition decides whether a custom status is shown for a user.
type Condition interface {
	Active(u User) bool
}

// ConditionFunc adapts a plain function to Condition.
type ConditionFunc func(u User) bool

func (f ConditionFunc) Active(u User) bool { return f(u) }

// ValueSource computes the live value of a dynamic status.
type ValueSource interface {
	Value(u User) string
}

// ValueFunc adapts a plain function to ValueSource.
type ValueFunc func(u User) string

func (f ValueFunc) Value(u User) string { return f(u) }

// IconResolver maps a logical icon name to an image handle.
type IconResolver interface {
	ResolveIcon(name string) (handle string, ok bool)
}

// CustomStatus is a display row contributed by another component.
type CustomStatus struct {
	Seq       uint64
	LeftText  string
	RightText string
	Color     string
	Icon      string
	When      Condition
	Dynamic   ValueSource
}

// IsDynamic reports whether the value is recomputed every tick.
func (c *CustomStatus) IsDynamic() bool {
	return c.Dynamic != nil
}

// Value returns the text shown on the right side of the row.
// RightText is ignored for dynamic statuses.
func (c *CustomStatus) Value(u User) string {
	if c.IsDynamic() {
		return c.Dynamic.Value(u)
	}
	return c.RightText
}

// Registry holds every contributed status for the life of the process.
// Registration may happen from any goroutine.
type Registry struct {
	mu       sync.RWMutex
	statuses []*CustomStatus
	nextSeq  uint64
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a copy of s. Duplicates are allowed and nothing is
// validated; a nil status is ignored. The caller's struct is not modified.
func (r *Registry) Register(s *CustomStatus) {
	if s == nil {
		return
	}
	cp := *s
	if cp.Color == "" {
		cp.Color = DefaultStatusColor
	}
	if cp.When == nil {
		cp.When = ConditionFunc(func(User) bool { return true })
	}
	r.mu.Lock()
	r.nextSeq++
	cp.Seq = r.nextSeq
	r.statuses = append(r.statuses, &cp)
	r.mu.Unlock()
}

// RegisterStatus contributes a status with a fixed value.
func (r *Registry) RegisterStatus(leftText, rightText, color, icon string, when Condition) {
	r.Register(&CustomStatus{
		LeftText:  leftText,
		RightText: rightText,
		Color:     color,
		Icon:      icon,
		When:      when,
	})
}

// RegisterDynamicStatus contributes a status whose value comes from value.
func (r *Registry) RegisterDynamicStatus(leftText, color, icon string, when Condition, value ValueSource) {
	r.Register(&CustomStatus{
		LeftText: leftText,
		Color:    color,
		Icon:     icon,
		When:     when,
		Dynamic:  value,
	})
}

// Len returns the number of registered statuses.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.statuses)
}

// ActiveFor returns the statuses whose condition holds for u, in
// registration order. A condition that panics counts as inactive.
func (r *Registry) ActiveFor(u User) []*CustomStatus {
	r.mu.RLock()
	all := make([]*CustomStatus, len(r.statuses))
	copy(all, r.statuses)
	r.mu.RUnlock()

	active := make([]*CustomStatus, 0, len(all))
	for _, s := range all {
		if isActive(s, u) {
			active = append(active, s)
		}
	}
	return active
}

func isActive(s *CustomStatus, u User) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("HUD: condition of status %q (#%d) failed for %s: %v", s.LeftText, s.Seq, u.ID(), rec)
			ok = false
		}
	}()
	return s.When.Active(u)
}

// safeValue computes the row value, reporting false when a dynamic
// source panics.
func safeValue(s *CustomStatus, u User) (text string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("HUD: value of status %q (#%d) failed for %s: %v", s.LeftText, s.Seq, u.ID(), rec)
			text, ok = "", false
		}
	}()
	return s.Value(u), true
}

// valueSet holds the row values computed for one tick. A status whose
// value source failed has no entry.
type valueSet map[*CustomStatus]string

// computeValues evaluates the value of every status in lists once.
func computeValues(u User, lists ...[]*CustomStatus) valueSet {
	values := make(valueSet)
	seen := make(map[*CustomStatus]bool)
	for _, list := range lists {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			if text, ok := safeValue(s, u); ok {
				values[s] = text
			}
		}
	}
	return values
}

// IconHandleFor resolves the icon of s. A missing resolver or an unknown
// name yields an empty handle.
func IconHandleFor(s *CustomStatus, icons IconResolver) string {
	if icons == nil || s.Icon == "" {
		return ""
	}
	handle, ok := icons.ResolveIcon(s.Icon)
	if !ok {
		return ""
	}
	return handle
}
