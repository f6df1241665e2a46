package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

var sectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Secondary)

// ChecklistItem is one selectable label.
type ChecklistItem struct {
	Label   string
	Checked bool
	Note    string
}

// ChecklistSection groups items under a heading.
type ChecklistSection struct {
	Title string
	Items []ChecklistItem
}

// Checklist is a sectioned list of checkboxes with a single cursor running
// across every section.
type Checklist struct {
	sections []ChecklistSection
	cursor   int
}

// NewChecklist creates a checklist with the cursor on the first item.
func NewChecklist(sections ...ChecklistSection) Checklist {
	return Checklist{sections: sections}
}

// SetSections replaces the items, keeping the cursor in range.
func (c *Checklist) SetSections(sections []ChecklistSection) {
	c.sections = sections
	c.cursor = min(c.cursor, max(c.Len()-1, 0))
}

// Sections returns the current sections.
func (c Checklist) Sections() []ChecklistSection {
	return c.sections
}

// Len returns the number of items across all sections.
func (c Checklist) Len() int {
	n := 0
	for _, s := range c.sections {
		n += len(s.Items)
	}
	return n
}

// MoveUp moves the cursor to the previous item.
func (c *Checklist) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor to the next item.
func (c *Checklist) MoveDown() {
	if c.cursor < c.Len()-1 {
		c.cursor++
	}
}

// NextSection moves the cursor to the first item of the next non-empty section, wrapping.
func (c *Checklist) NextSection() {
	current, _, ok := c.Current()
	if !ok {
		return
	}
	for step := 1; step <= len(c.sections); step++ {
		next := (current + step) % len(c.sections)
		if len(c.sections[next].Items) > 0 {
			c.cursor = c.offset(next)
			return
		}
	}
}

func (c Checklist) offset(section int) int {
	n := 0
	for i := range section {
		n += len(c.sections[i].Items)
	}
	return n
}

// Current returns the section and item indexes under the cursor.
func (c Checklist) Current() (section, item int, ok bool) {
	pos := c.cursor
	for i, s := range c.sections {
		if pos < len(s.Items) {
			return i, pos, true
		}
		pos -= len(s.Items)
	}
	return 0, 0, false
}

// CurrentItem returns the item under the cursor.
func (c Checklist) CurrentItem() (ChecklistItem, bool) {
	s, i, ok := c.Current()
	if !ok {
		return ChecklistItem{}, false
	}
	return c.sections[s].Items[i], true
}

// View renders every section with the cursor marker.
func (c Checklist) View(width int) string {
	var b strings.Builder
	pos := 0

	for si, s := range c.sections {
		if si > 0 {
			b.WriteString("\n")
		}
		checked := 0
		for _, it := range s.Items {
			if it.Checked {
				checked++
			}
		}
		b.WriteString(sectionTitleStyle.Render(s.Title))
		b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("  %d/%d selected", checked, len(s.Items))))
		b.WriteString("\n")

		if len(s.Items) == 0 {
			b.WriteString(styles.HelpStyle.Render("  no labels in dataset"))
			b.WriteString("\n")
		}

		for ii, it := range s.Items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}

			label := styles.LabelTextStyle(it.Label, ii).Render(it.Label)
			line := box + " " + label
			if it.Note != "" {
				line += " " + styles.HelpStyle.Render(it.Note)
			}

			if pos == c.cursor {
				line = styles.SelectedListItemStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(lipgloss.NewStyle().MaxWidth(max(width, 1)).Render(line))
			b.WriteString("\n")
			pos++
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
