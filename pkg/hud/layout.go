package hud

import (
	"fmt"
	"strings"
)

const (
	RootName   = "status"
	HudLayer   = "Hud"
	rowTexture = "assets/scenes/test/waterlevelterrain/watertexture.png"
)

// Layout holds the geometry of the status panel in reference pixels.
type Layout struct {
	X, Y         float64
	Width        float64
	EntryHeight  float64
	EntryGap     float64
	MaxSlots     int
	FontSize     int
	LabelInset   float64
	ValuePadding float64
	IconInset    float64
	IconSize     float64
	PanelColor   string
	IconTint     string
	TextColor    string
}

func DefaultLayout() Layout {
	return Layout{
		X:            1072,
		Y:            100,
		Width:        192,
		EntryHeight:  26,
		EntryGap:     2,
		MaxSlots:     12,
		FontSize:     13,
		LabelInset:   26,
		ValuePadding: 8,
		IconInset:    5,
		IconSize:     14,
		PanelColor:   "1 0 0 0",
		IconTint:     "0 0 0 0.8",
		TextColor:    "0.78 0.78 0.78 1",
	}
}

// Stride is the vertical distance between two rows.
func (l Layout) Stride() float64 {
	return l.EntryHeight + l.EntryGap
}

// StartOffset is the space reserved for built-in conditions.
func (l Layout) StartOffset(builtinCount int) float64 {
	return l.Stride() * float64(builtinCount)
}

// PanelHeight shrinks as built-in conditions reserve room. Never negative.
func (l Layout) PanelHeight(builtinCount int) float64 {
	h := l.Stride()*float64(l.MaxSlots) - l.StartOffset(builtinCount)
	if h < 0 {
		return 0
	}
	return h
}

// DynamicElement is a rendered value that is refreshed without a rebuild.
type DynamicElement struct {
	Element Element
	Status  *CustomStatus
}

// Frame is the output of one layout pass.
type Frame struct {
	Elements []Element
	Dynamic  []DynamicElement
}

// Empty reports whether nothing should be on screen.
func (f Frame) Empty() bool {
	return len(f.Elements) == 0
}

// LayoutEngine turns active statuses into a scene graph.
type LayoutEngine struct {
	Layout Layout
	Icons  IconResolver
}

func NewLayoutEngine(layout Layout, icons IconResolver) *LayoutEngine {
	return &LayoutEngine{Layout: layout, Icons: icons}
}

// Build lays out the panel for u. Built-in tokens only reserve space at the
// bottom of the stack; one row is drawn per custom status. When both lists
// are empty the frame is empty.
func (e *LayoutEngine) Build(u User, tokens []Token, customs []*CustomStatus) Frame {
	return e.build(tokens, customs, computeValues(u, customs))
}

// build lays out the panel from values computed beforehand. A status
// missing from values renders an empty value.
func (e *LayoutEngine) build(tokens []Token, customs []*CustomStatus, values valueSet) Frame {
	if len(tokens) == 0 && len(customs) == 0 {
		return Frame{}
	}
	l := e.Layout
	start := l.StartOffset(len(tokens))
	y := l.Y + start

	elements := make([]Element, 0, 1+4*len(customs))
	elements = append(elements, Element{
		Name:   RootName,
		Parent: HudLayer,
		Image:  &ImageComponent{Color: l.PanelColor},
		Rect: RectTransform{
			OffsetMin: Vec2{X: l.X, Y: y},
			OffsetMax: Vec2{X: l.X + l.Width, Y: y + l.PanelHeight(len(tokens))},
		},
	})

	var dynamics []DynamicElement
	idx := len(tokens) + 1
	for i, c := range customs {
		id := fmt.Sprintf("%s.%d", RootName, idx+i)
		ey := float64(i) * l.Stride()

		elements = append(elements,
			Element{
				Name:   id,
				Parent: RootName,
				Image:  &ImageComponent{Color: c.Color, Material: rowTexture},
				Rect: RectTransform{
					AnchorMax: Vec2{X: 1},
					OffsetMin: Vec2{Y: ey},
					OffsetMax: Vec2{Y: ey + l.EntryHeight},
				},
			},
			Element{
				Name:   id + ".icon",
				Parent: id,
				Image:  &ImageComponent{Color: l.IconTint, Png: IconHandleFor(c, e.Icons)},
				Rect: RectTransform{
					AnchorMin: Vec2{Y: 0.5},
					AnchorMax: Vec2{Y: 0.5},
					OffsetMin: Vec2{X: l.IconInset, Y: -l.IconSize / 2},
					OffsetMax: Vec2{X: l.IconInset + l.IconSize, Y: l.IconSize / 2},
				},
			},
			Element{
				Name:   id + ".label",
				Parent: id,
				Text: &TextComponent{
					Text:     strings.ToUpper(c.LeftText),
					FontSize: l.FontSize,
					Color:    l.TextColor,
					Align:    AlignMiddleLeft,
				},
				Rect: RectTransform{
					AnchorMax: Vec2{X: 1, Y: 1},
					OffsetMin: Vec2{X: l.LabelInset},
				},
			},
		)

		value := values[c]
		valueEl := Element{
			Name:   id + ".value",
			Parent: id,
			Text: &TextComponent{
				Text:     value,
				FontSize: l.FontSize,
				Color:    l.TextColor,
				Align:    AlignMiddleRight,
			},
			Rect: RectTransform{
				AnchorMax: Vec2{X: 1, Y: 1},
				OffsetMax: Vec2{X: -l.ValuePadding},
			},
		}
		elements = append(elements, valueEl)
		if c.IsDynamic() {
			dynamics = append(dynamics, DynamicElement{Element: valueEl.Clone(), Status: c})
		}
	}

	return Frame{Elements: elements, Dynamic: dynamics}
}
