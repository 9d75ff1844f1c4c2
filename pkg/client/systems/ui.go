package systems

import (
	"strings"

	"statushud/pkg/shared/config"
	"statushud/pkg/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// UISystem owns the login form and the action toolbar.
type UISystem struct {
	Manager *ui.Manager

	LoginManager *ui.Manager
	Username     *ui.TextInput
	ErrorLabel   *ui.Label

	onLogin  func(username string)
	onAction func(action string)
}

func NewUISystem(keys map[string]ebiten.Key) *UISystem {
	s := &UISystem{
		Manager:      ui.NewManager(),
		LoginManager: ui.NewManager(),
	}

	cx := float64(config.ScreenWidth)/2 - 100
	cy := float64(config.ScreenHeight)/2 - 40
	s.Username = ui.NewTextInput(cx, cy, 200, 30, "Username")
	s.Username.Focused = true
	s.ErrorLabel = ui.NewLabel(cx, cy+80, "")
	s.LoginManager.AddElement(ui.NewLabel(cx, cy-24, "Status HUD demo"))
	s.LoginManager.AddElement(s.Username)
	s.LoginManager.AddElement(ui.NewButton(cx, cy+40, 200, 30, "Connect", s.submit))
	s.LoginManager.AddElement(s.ErrorLabel)

	x := 10.0
	y := float64(config.ScreenHeight) - 40
	for _, action := range config.Actions {
		action := action
		b := ui.NewButton(x, y, 120, 30, action, func() {
			if s.onAction != nil {
				s.onAction(action)
			}
		})
		if k, ok := keys[action]; ok {
			b.Hint = k.String()
		}
		s.Manager.AddElement(b)
		x += 130
	}
	return s
}

func (s *UISystem) RegisterLoginCallback(fn func(username string)) {
	s.onLogin = fn
}

func (s *UISystem) RegisterActionCallback(fn func(action string)) {
	s.onAction = fn
}

// ShowError puts a message under the login form.
func (s *UISystem) ShowError(msg string) {
	s.ErrorLabel.Text = msg
}

func (s *UISystem) submit() {
	name := strings.TrimSpace(s.Username.Text)
	if name == "" {
		s.ShowError("Enter a username")
		return
	}
	if s.onLogin != nil {
		s.onLogin(name)
	}
}

// UpdateLogin runs the login form.
func (s *UISystem) UpdateLogin() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.submit()
		return nil
	}
	return s.LoginManager.Update()
}

// Update runs the toolbar.
func (s *UISystem) Update() error {
	return s.Manager.Update()
}

func (s *UISystem) DrawLogin(screen *ebiten.Image) {
	s.LoginManager.Draw(screen)
}

func (s *UISystem) Draw(screen *ebiten.Image) {
	s.Manager.Draw(screen)
}
