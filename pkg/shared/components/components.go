package components

// TransformComponent holds a position on the ground plane.
type TransformComponent struct {
	X, Y float64
}

// PlayerComponent marks an entity driven by a connected user.
type PlayerComponent struct {
	UserID string
}

// MetabolismComponent holds the physiological values the HUD reads.
type MetabolismComponent struct {
	Bleeding    float64
	Temperature float64
	Calories    float64
	Hydration   float64
	Radiation   float64
	Wetness     float64
	Oxygen      float64 // 0..1
	Swimming    bool
}

// ComfortComponent is the comfort granted by nearby furniture or fire.
type ComfortComponent struct {
	Value float64
}

// PrivilegeComponent is a tool cupboard: it grants building privilege
// inside Radius to the users on the auth list.
type PrivilegeComponent struct {
	Radius     float64
	Authorized map[string]bool
}

// IsAuthed reports whether user is on the auth list.
func (p PrivilegeComponent) IsAuthed(user string) bool {
	return p.Authorized[user]
}

// Covers reports whether (x, y) lies within the cupboard radius around c.
func (p PrivilegeComponent) Covers(c TransformComponent, x, y float64) bool {
	dx, dy := x-c.X, y-c.Y
	return dx*dx+dy*dy <= p.Radius*p.Radius
}

// DefaultMetabolism is the state of a freshly spawned player.
func DefaultMetabolism() MetabolismComponent {
	return MetabolismComponent{
		Temperature: 20,
		Calories:    500,
		Hydration:   250,
		Oxygen:      1,
	}
}
