package server

import (
	"fmt"

	"statushud/pkg/hud"
)

const fullHydration = 250.0

// RegisterDemoStatuses contributes the statuses a plugin author would:
// one static and one dynamic.
func RegisterDemoStatuses(c *hud.Controller) {
	c.RegisterStatus("Safe Zone", "Protected", "0.2 0.6 0.2 0.9", "safezone",
		hud.ConditionFunc(func(u hud.User) bool {
			v, ok := u.Vitals()
			return ok && v.Privilege != nil && v.Privilege.Authorized
		}))

	c.RegisterDynamicStatus("Hydration", "0.2 0.4 0.8 0.9", "hydration",
		hud.ConditionFunc(func(u hud.User) bool {
			v, ok := u.Vitals()
			return ok && v.Hydration < fullHydration/2
		}),
		hud.ValueFunc(func(u hud.User) string {
			v, _ := u.Vitals()
			return fmt.Sprintf("%.0f%%", 100*v.Hydration/fullHydration)
		}))
}
