package config

const (
	// Reference canvas the HUD layout is expressed in.
	ScreenWidth  = 1280
	ScreenHeight = 720

	// Client actions
	ActionSwim      = "Swim"
	ActionEat       = "Eat"
	ActionDrink     = "Drink"
	ActionBleed     = "Bleed"
	ActionAuthorize = "Authorize"

	// Network
	ServerPortTCP = ":8080"
	ServerPortWS  = ":8081"

	DefaultTickMs = 33 // ~30 TPS
)

// Actions lists the client actions in toolbar order.
var Actions = []string{ActionSwim, ActionEat, ActionDrink, ActionBleed, ActionAuthorize}
