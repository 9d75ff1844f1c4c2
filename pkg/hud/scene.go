package hud

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Align is the text anchor inside an element's rectangle.
type Align int

const (
	AlignMiddleLeft Align = iota
	AlignMiddleCenter
	AlignMiddleRight
)

// Vec2 is a pair of anchors (fractions of the parent) or pixel offsets.
type Vec2 struct {
	X, Y float64
}

// RectTransform places an element inside its parent. Anchors are fractions
// of the parent rectangle measured from its bottom-left corner; offsets are
// pixels added to the anchored corners.
type RectTransform struct {
	AnchorMin Vec2
	AnchorMax Vec2
	OffsetMin Vec2
	OffsetMax Vec2
}

// ImageComponent fills the element with a flat color or an image.
type ImageComponent struct {
	Color    string
	Material string
	Png      string // image handle, empty when no icon resolved
}

// TextComponent renders a single line of text.
type TextComponent struct {
	Text     string
	FontSize int
	Color    string
	Align    Align
}

// Element is one node of the scene graph sent to the drawing collaborator.
type Element struct {
	Name   string
	Parent string
	Rect   RectTransform
	Image  *ImageComponent
	Text   *TextComponent
}

// Clone returns a deep copy of e.
func (e Element) Clone() Element {
	out := e
	if e.Image != nil {
		img := *e.Image
		out.Image = &img
	}
	if e.Text != nil {
		txt := *e.Text
		out.Text = &txt
	}
	return out
}

// ParseColor reads an "r g b a" string with float channels in [0,1].
func ParseColor(s string) (color.RGBA, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return color.RGBA{}, fmt.Errorf("color %q: want 4 channels, got %d", s, len(fields))
	}
	var ch [4]uint8
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
