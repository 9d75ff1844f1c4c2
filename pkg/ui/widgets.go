package ui

import (
	"image/color"

	"statushud/pkg/client/assets"
	"statushud/pkg/client/scene"
	"statushud/pkg/hud"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font metrics.
const (
	CharWidth  = 6
	LineHeight = 16
)

// TextWidth is the width of s in the debug font.
func TextWidth(s string) int {
	return len([]rune(s)) * CharWidth
}

// Label Widget
type Label struct {
	BaseElement
	Text string
}

func NewLabel(x, y float64, text string) *Label {
	return &Label{
		BaseElement: BaseElement{X: x, Y: y, Visible: true, Color: color.White},
		Text:        text,
	}
}

func (l *Label) Update() (bool, error) {
	return false, nil
}

func (l *Label) Draw(screen *ebiten.Image) {
	if !l.Visible {
		return
	}
	ebitenutil.DebugPrintAt(screen, l.Text, int(l.X), int(l.Y))
}

func (l *Label) HandleInput(x, y int) bool {
	return false
}

// TextInput Widget
type TextInput struct {
	BaseElement
	Text        string
	Placeholder string
	Focused     bool
	Counter     int
	MaxLen      int
}

func NewTextInput(x, y, w, h float64, placeholder string) *TextInput {
	return &TextInput{
		BaseElement: BaseElement{X: x, Y: y, Width: w, Height: h, Visible: true},
		Placeholder: placeholder,
		MaxLen:      24,
	}
}

func (t *TextInput) Update() (bool, error) {
	if !t.Visible {
		return false, nil
	}

	t.Counter++

	if t.Focused {
		text := ebiten.AppendInputChars([]rune(t.Text))
		if t.MaxLen > 0 && len(text) > t.MaxLen {
			text = text[:t.MaxLen]
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(text) > 0 {
			text = text[:len(text)-1]
		}
		t.Text = string(text)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		t.Focused = t.contains(mx, my)
		return t.Focused, nil
	}
	return false, nil
}

func (t *TextInput) Draw(screen *ebiten.Image) {
	if !t.Visible {
		return
	}

	c := color.RGBA{30, 30, 30, 255}
	if t.Focused {
		c = color.RGBA{50, 50, 50, 255}
	}
	vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(t.Width), float32(t.Height), c, false)
	vector.StrokeRect(screen, float32(t.X), float32(t.Y), float32(t.Width), float32(t.Height), 1, color.White, false)

	display := t.Text
	if display == "" && !t.Focused {
		display = t.Placeholder
	}
	if t.Focused && (t.Counter/30)%2 == 0 {
		display += "|"
	}
	ebitenutil.DebugPrintAt(screen, display, int(t.X+5), int(t.Y+t.Height/2-LineHeight/2))
}

func (t *TextInput) HandleInput(x, y int) bool {
	return t.contains(x, y)
}

// Panel fills a scene rectangle with a flat color. Fully transparent panels
// draw nothing.
type Panel struct {
	BaseElement
}

func (p *Panel) Update() (bool, error)     { return false, nil }
func (p *Panel) HandleInput(x, y int) bool { return false }

func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.Visible || p.Color == nil {
		return
	}
	if _, _, _, a := p.Color.RGBA(); a == 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.Color, false)
}

// Icon draws an image handle scaled into its rectangle, multiplied by Color.
type Icon struct {
	BaseElement
	Handle string
}

func (i *Icon) Update() (bool, error)     { return false, nil }
func (i *Icon) HandleInput(x, y int) bool { return false }

func (i *Icon) Draw(screen *ebiten.Image) {
	if !i.Visible {
		return
	}
	img := assets.GetImage(i.Handle)
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(i.Width/float64(w), i.Height/float64(h))
	opts.GeoM.Translate(i.X, i.Y)
	if i.Color != nil {
		opts.ColorScale.ScaleWithColor(i.Color)
	}
	screen.DrawImage(img, opts)
}

// Text draws one line aligned inside its rectangle.
type Text struct {
	BaseElement
	Text  string
	Align hud.Align
}

func (t *Text) Update() (bool, error)     { return false, nil }
func (t *Text) HandleInput(x, y int) bool { return false }

func (t *Text) Draw(screen *ebiten.Image) {
	if !t.Visible || t.Text == "" {
		return
	}
	x, y := TextOrigin(scene.Rect{X: t.X, Y: t.Y, W: t.Width, H: t.Height}, t.Align, t.Text)
	ebitenutil.DebugPrintAt(screen, t.Text, x, y)
}

// TextOrigin is where the debug font starts drawing text aligned in r.
func TextOrigin(r scene.Rect, align hud.Align, text string) (int, int) {
	w := float64(TextWidth(text))
	x := r.X
	switch align {
	case hud.AlignMiddleCenter:
		x = r.X + (r.W-w)/2
	case hud.AlignMiddleRight:
		x = r.X + r.W - w
	}
	y := r.Y + (r.H-LineHeight)/2
	return int(x), int(y)
}

// FromScene turns resolved scene nodes into widgets, parents first. An
// element with both an image and text yields both widgets.
func FromScene(nodes []scene.Node) []Element {
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		base := BaseElement{X: n.Rect.X, Y: n.Rect.Y, Width: n.Rect.W, Height: n.Rect.H, Visible: true}
		if img := n.Element.Image; img != nil {
			b := base
			b.Color = parseColor(img.Color, color.White)
			if img.Png != "" {
				out = append(out, &Icon{BaseElement: b, Handle: img.Png})
			} else {
				out = append(out, &Panel{BaseElement: b})
			}
		}
		if txt := n.Element.Text; txt != nil {
			b := base
			b.Color = parseColor(txt.Color, color.White)
			out = append(out, &Text{BaseElement: b, Text: txt.Text, Align: txt.Align})
		}
	}
	return out
}

func parseColor(s string, fallback color.Color) color.Color {
	if s == "" {
		return fallback
	}
	c, err := hud.ParseColor(s)
	if err != nil {
		return fallback
	}
	// Scene colors are straight alpha.
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
