// Package preview plays a scripted sequence of ticks against the HUD and
// prints what each user would see, without a game client.
package preview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"statushud/pkg/client/scene"
	"statushud/pkg/hud"
)

const rowWidth = 32

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	iconStyle  = lipgloss.NewStyle().Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
)

// Render draws the status panel found in nodes as a terminal box, rows in
// on-screen order (top first).
func Render(nodes []scene.Node) string {
	byName := make(map[string]scene.Node, len(nodes))
	var rows []scene.Node
	for _, n := range nodes {
		byName[n.Element.Name] = n
		if n.Element.Parent == hud.RootName && n.Element.Image != nil {
			rows = append(rows, n)
		}
	}
	root, ok := byName[hud.RootName]
	if !ok {
		return emptyStyle.Render("(no status panel)")
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rect.Y < rows[j].Rect.Y })

	lines := []string{titleStyle.Render(fmt.Sprintf("%s @ %.0f,%.0f %.0fx%.0f", hud.RootName, root.Rect.X, root.Rect.Y, root.Rect.W, root.Rect.H))}
	for _, row := range rows {
		lines = append(lines, renderRow(row, byName))
	}
	if len(rows) == 0 {
		lines = append(lines, emptyStyle.Render("(built-in conditions only)"))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderRow(row scene.Node, byName map[string]scene.Node) string {
	name := row.Element.Name
	label := textOf(byName[name+".label"])
	value := textOf(byName[name+".value"])

	icon := " "
	if n, ok := byName[name+".icon"]; ok && n.Element.Image != nil && n.Element.Image.Png != "" {
		icon = "◆"
	}

	gap := rowWidth - lipgloss.Width(label) - lipgloss.Width(value) - 2
	if gap < 1 {
		gap = 1
	}
	text := iconStyle.Render(icon) + " " + label + strings.Repeat(" ", gap) + value

	style := lipgloss.NewStyle()
	if hex, ok := hexColor(row.Element.Image.Color); ok {
		style = style.Background(lipgloss.Color(hex))
	}
	return style.Render(text)
}

func textOf(n scene.Node) string {
	if n.Element.Text == nil {
		return ""
	}
	return n.Element.Text.Text
}

// hexColor converts an "r g b a" scene color, ignoring alpha.
func hexColor(s string) (string, bool) {
	c, err := hud.ParseColor(s)
	if err != nil || c.A == 0 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), true
}
