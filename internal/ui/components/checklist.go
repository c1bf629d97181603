package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focoleve/internal/ui/theme"
)

// ChecklistItem is one row of a Checklist.
type ChecklistItem struct {
	Label   string // upper line, e.g. the subject
	Detail  string // lower line, e.g. the topic
	Checked bool
}

// Checklist is a vertical list with a cursor. It does not change Checked
// itself; the owner toggles items and calls SetItems.
type Checklist struct {
	Items    []ChecklistItem
	Selected int
	Empty    string // shown when there are no items
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(items []ChecklistItem, empty string) Checklist {
	return Checklist{Items: items, Empty: empty}
}

// SetItems replaces the items, keeping the cursor in range.
func (c *Checklist) SetItems(items []ChecklistItem) {
	c.Items = items
	if c.Selected >= len(items) {
		c.Selected = max(0, len(items)-1)
	}
}

// Update handles cursor movement.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "home", "g":
		c.Selected = 0
	case "end", "G":
		c.Selected = max(0, len(c.Items)-1)
	}
	return c, nil
}

// View renders the list.
func (c Checklist) View() string {
	if len(c.Items) == 0 {
		return theme.Hint.Render(c.Empty)
	}

	var b strings.Builder
	for i, item := range c.Items {
		cursor := "  "
		if i == c.Selected {
			cursor = theme.Cursor.Render("▸ ")
		}

		box, label, detail := "[ ]", theme.SubjectPending, theme.TopicPending
		if item.Checked {
			box, label, detail = theme.SubjectDone.Render("[✓]"), theme.SubjectDone, theme.TopicDone
		}

		b.WriteString(cursor + box + " " + label.Render(strings.ToUpper(item.Label)) + "\n")
		b.WriteString("      " + detail.Render(item.Detail))
		if i < len(c.Items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
