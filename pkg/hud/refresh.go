package hud

import "log"

// Drawer is the UI collaborator that owns what the player actually sees.
type Drawer interface {
	// Destroy removes the named element and everything parented to it.
	Destroy(user, name string) error
	// Draw adds elements, in order, to the user's screen.
	Draw(user string, elements []Element) error
}

// Refresher patches dynamic values without touching the rest of the tree.
type Refresher struct {
	Drawer Drawer
}

// RefreshAll recomputes every cached dynamic value of u and redraws only
// the value elements. Position and styling are kept as they were built.
// It reports false when the drawer failed on any element.
func (r *Refresher) RefreshAll(u User, dynamics []DynamicElement) bool {
	statuses := make([]*CustomStatus, len(dynamics))
	for i, de := range dynamics {
		statuses[i] = de.Status
	}
	return r.refresh(u, dynamics, computeValues(u, statuses))
}

// refresh redraws dynamics from values computed beforehand. Elements whose
// value is missing keep their previous text and are not touched.
func (r *Refresher) refresh(u User, dynamics []DynamicElement, values valueSet) bool {
	ok := true
	for i := range dynamics {
		de := &dynamics[i]
		text, found := values[de.Status]
		if !found {
			continue
		}
		de.Element.Text.Text = text
		if err := r.Drawer.Destroy(u.ID(), de.Element.Name); err != nil {
			log.Printf("HUD: destroy %s for %s: %v", de.Element.Name, u.ID(), err)
			ok = false
			continue
		}
		if err := r.Drawer.Draw(u.ID(), []Element{de.Element.Clone()}); err != nil {
			log.Printf("HUD: draw %s for %s: %v", de.Element.Name, u.ID(), err)
			ok = false
		}
	}
	return ok
}
