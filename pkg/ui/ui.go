package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Element is the base interface for all UI widgets
type Element interface {
	Update() (bool, error)
	Draw(screen *ebiten.Image)
	HandleInput(x, y int) bool // Returns true if input was consumed
	SetPosition(x, y float64)
	GetPosition() (float64, float64)
	GetSize() (float64, float64)
	IsVisible() bool
	SetVisible(visible bool)
}

// BaseElement holds common properties
type BaseElement struct {
	X, Y          float64
	Width, Height float64
	Visible       bool
	Color         color.Color
}

func (b *BaseElement) SetPosition(x, y float64) {
	b.X = x
	b.Y = y
}

func (b *BaseElement) GetPosition() (float64, float64) {
	return b.X, b.Y
}

func (b *BaseElement) GetSize() (float64, float64) {
	return b.Width, b.Height
}

func (b *BaseElement) IsVisible() bool {
	return b.Visible
}

func (b *BaseElement) SetVisible(visible bool) {
	b.Visible = visible
}

func (b *BaseElement) contains(x, y int) bool {
	return float64(x) >= b.X && float64(x) <= b.X+b.Width && float64(y) >= b.Y && float64(y) <= b.Y+b.Height
}

// Button Widget
type Button struct {
	BaseElement
	Text      string
	Hint      string // key shown next to the text
	OnClick   func()
	IsHovered bool
}

func NewButton(x, y, w, h float64, text string, onClick func()) *Button {
	return &Button{
		BaseElement: BaseElement{X: x, Y: y, Width: w, Height: h, Visible: true},
		Text:        text,
		OnClick:     onClick,
	}
}

func (b *Button) Update() (bool, error) {
	if !b.Visible {
		return false, nil
	}

	mx, my := ebiten.CursorPosition()
	b.IsHovered = b.contains(mx, my)

	if b.IsHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if b.OnClick != nil {
			b.OnClick()
			return true, nil // Consumed
		}
	}
	return false, nil
}

func (b *Button) Draw(screen *ebiten.Image) {
	if !b.Visible {
		return
	}

	bgColor := color.RGBA{40, 40, 40, 220}
	if b.IsHovered {
		bgColor = color.RGBA{80, 80, 80, 220}
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), bgColor, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, color.RGBA{100, 100, 100, 255}, false)

	label := b.Text
	if b.Hint != "" {
		label = "[" + b.Hint + "] " + label
	}
	textX := int(b.X) + (int(b.Width)-TextWidth(label))/2
	if textX < int(b.X)+5 {
		textX = int(b.X) + 5
	}
	ebitenutil.DebugPrintAt(screen, label, textX, int(b.Y+b.Height/2-LineHeight/2))
}

func (b *Button) HandleInput(x, y int) bool {
	if !b.Visible {
		return false
	}
	return b.contains(x, y)
}

// Manager handles the UI stack
type Manager struct {
	Elements []Element
}

func NewManager() *Manager {
	return &Manager{
		Elements: make([]Element, 0),
	}
}

func (m *Manager) AddElement(e Element) {
	m.Elements = append(m.Elements, e)
}

// SetElements replaces the whole stack.
func (m *Manager) SetElements(elements []Element) {
	m.Elements = elements
}

func (m *Manager) Update() error {
	// Top-most elements (added last) handle input first.
	for i := len(m.Elements) - 1; i >= 0; i-- {
		consumed, err := m.Elements[i].Update()
		if err != nil {
			return err
		}
		if consumed {
			break
		}
	}
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	for _, e := range m.Elements {
		e.Draw(screen)
	}
}
