package model

import "strings"

// Mode selects which taxonomy of the career site is crawled.
// Themes and industries are scraped the same way; the mode only decides
// which anchor region of the root page is read and where results are written.
type Mode string

const (
	// ModeTheme crawls the "browse by themes" region.
	ModeTheme Mode = "theme"

	// ModeIndustry crawls the "browse by industries" region.
	ModeIndustry Mode = "industry"
)

// Anchor region markers on the root page. The container element carries
// one of these values in its name attribute.
const (
	themeAnchorName    = "browseByThemes"
	industryAnchorName = "BROWSE_BY_INDUSTRIES"
)

// Modes returns all valid modes in a stable order.
func Modes() []Mode {
	return []Mode{ModeTheme, ModeIndustry}
}

// ParseMode converts a user supplied string into a Mode.
// Only the exact values "theme" and "industry" are accepted.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate reports whether m is one of the recognized modes.
func (m Mode) Validate() error {
	switch m {
	case ModeTheme, ModeIndustry:
		return nil
	default:
		return &ValidationError{
			Field:  "mode",
			Value:  string(m),
			Reason: "must be one of " + joinModes(),
		}
	}
}

// AnchorName returns the name attribute of the container that holds the
// category cards for this mode. It returns an empty string for an invalid mode.
func (m Mode) AnchorName() string {
	switch m {
	case ModeTheme:
		return themeAnchorName
	case ModeIndustry:
		return industryAnchorName
	default:
		return ""
	}
}

// OutputName returns the plural name used for export files and directories
// ("themes" or "industries").
func (m Mode) OutputName() string {
	switch m {
	case ModeTheme:
		return "themes"
	case ModeIndustry:
		return "industries"
	default:
		return ""
	}
}

// String returns the mode as given on the command line.
func (m Mode) String() string {
	return string(m)
}

func joinModes() string {
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
