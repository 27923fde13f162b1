package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Theme carries the dark-mode choice. The terminal already owns the real
// background color; the flag only picks which accent styles stay readable.
type Theme struct {
	Dark bool
}

// PlatformPrefersDark inspects COLORFGBG, the closest thing a terminal has
// to a platform color-scheme preference. Absent or unparsable means dark,
// which is the common terminal default.
func PlatformPrefersDark() bool {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return true
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return true
	}
	// 0-6 and 8 are dark backgrounds in the xterm palette.
	return bg <= 6 || bg == 8
}

func (t Theme) title() pterm.Style {
	if t.Dark {
		return *pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	}
	return *pterm.NewStyle(pterm.FgBlue, pterm.Bold)
}

func (t Theme) accent() pterm.Style {
	if t.Dark {
		return *pterm.NewStyle(pterm.FgLightYellow)
	}
	return *pterm.NewStyle(pterm.FgYellow)
}

func (t Theme) dim() pterm.Style {
	if t.Dark {
		return *pterm.NewStyle(pterm.FgGray)
	}
	return *pterm.NewStyle(pterm.FgDefault)
}
