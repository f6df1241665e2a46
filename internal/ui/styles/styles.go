// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the bikeshare theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("36")  // Teal
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Season colors
	Spring = lipgloss.Color("114") // Light green
	Summer = lipgloss.Color("214") // Amber
	Fall   = lipgloss.Color("166") // Rust
	Winter = lipgloss.Color("75")  // Ice blue

	// Weather colors
	Clear     = lipgloss.Color("220") // Yellow
	Mist      = lipgloss.Color("250") // Light gray
	LightRain = lipgloss.Color("39")  // Blue
	HeavyRain = lipgloss.Color("57")  // Indigo

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// Palette is used for series without a dedicated color, in order.
var Palette = []lipgloss.Color{
	lipgloss.Color("205"),
	lipgloss.Color("42"),
	lipgloss.Color("39"),
	lipgloss.Color("208"),
	lipgloss.Color("141"),
	lipgloss.Color("229"),
}

var labelColors = map[string]lipgloss.Color{
	"Spring":     Spring,
	"Summer":     Summer,
	"Fall":       Fall,
	"Winter":     Winter,
	"Clear":      Clear,
	"Mist":       Mist,
	"Light Rain": LightRain,
	"Heavy Rain": HeavyRain,
}

// LabelColor returns the color of a season or weather label.
// Unknown labels take the palette color at index i.
func LabelColor(label string, i int) lipgloss.Color {
	if c, ok := labelColors[label]; ok {
		return c
	}
	return Palette[i%len(Palette)]
}

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// FocusedStyle is used for focused input elements.
var FocusedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// BlurredStyle is used for unfocused input elements.
var BlurredStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// ListItemStyle styles list items.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedListItemStyle styles the list item under the cursor.
var SelectedListItemStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Foreground(TextPrimary)

// LabelStyle styles row labels in key/value listings.
var LabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// ValueStyle styles values in key/value listings.
var ValueStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// PeakStyle highlights the highest group of a view.
var PeakStyle = lipgloss.NewStyle().
	Foreground(Success).
	Bold(true)

// LowStyle highlights the lowest group of a view.
var LowStyle = lipgloss.NewStyle().
	Foreground(Warning)

// EmptyStyle renders the message shown when a filter matches nothing.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(Warning).
	Italic(true)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// LabelTextStyle renders a label in its own color.
func LabelTextStyle(label string, i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LabelColor(label, i))
}
