package ui

import (
	"image/color"
	"testing"

	"statushud/pkg/client/scene"
	"statushud/pkg/hud"
)

func TestTextOrigin(t *testing.T) {
	r := scene.Rect{X: 100, Y: 50, W: 120, H: 26}
	cases := []struct {
		align hud.Align
		wantX int
	}{
		{hud.AlignMiddleLeft, 100},
		{hud.AlignMiddleCenter, 100 + (120-18)/2},
		{hud.AlignMiddleRight, 100 + 120 - 18},
	}
	for _, c := range cases {
		x, y := TextOrigin(r, c.align, "abc")
		if x != c.wantX || y != 55 {
			t.Fatalf("align %d: expected (%d,55), got (%d,%d)", c.align, c.wantX, x, y)
		}
	}
}

func TestFromSceneBuildsWidgets(t *testing.T) {
	nodes := []scene.Node{
		{Element: hud.Element{Name: "status", Image: &hud.ImageComponent{Color: "1 0 0 0"}}, Rect: scene.Rect{W: 10, H: 10}},
		{Element: hud.Element{Name: "status.1.icon", Image: &hud.ImageComponent{Color: "0 0 0 0.8", Png: "icon-x"}}},
		{Element: hud.Element{Name: "status.1.label", Text: &hud.TextComponent{Text: "HI", Color: "bogus", Align: hud.AlignMiddleLeft}}},
	}
	widgets := FromScene(nodes)
	if len(widgets) != 3 {
		t.Fatalf("expected 3 widgets, got %d", len(widgets))
	}
	panel, ok := widgets[0].(*Panel)
	if !ok {
		t.Fatalf("expected panel, got %T", widgets[0])
	}
	if _, _, _, a := panel.Color.RGBA(); a != 0 {
		t.Fatalf("expected transparent panel")
	}
	icon, ok := widgets[1].(*Icon)
	if !ok || icon.Handle != "icon-x" {
		t.Fatalf("expected icon widget, got %+v", widgets[1])
	}
	if icon.Color != (color.NRGBA{A: 204}) {
		t.Fatalf("unexpected icon tint %+v", icon.Color)
	}
	text, ok := widgets[2].(*Text)
	if !ok || text.Text != "HI" || text.Color != color.White {
		t.Fatalf("expected text with fallback color, got %+v", widgets[2])
	}
}
