package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour scheme of the live view and exported drawings.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	// Bodies is the per-body palette, reused cyclically.
	Bodies []string
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
		Bodies:  []string{"#ff00ff", "#00ffff", "#ffff00", "#00ff00", "#ff8800"},
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Bodies:  []string{"#00ff00", "#88ff88", "#00cc00", "#ccffcc"},
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Warning: lipgloss.Color("#ffc048"),
		Bodies:  []string{"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068"},
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeSunset}
)

// GetTheme returns a theme by name, or the first theme when name is unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) BodyColor(i int) string {
	return t.Bodies[i%len(t.Bodies)]
}

// heatStops runs from cold to hot.
var heatStops = [][3]int{
	{0x00, 0x00, 0x80},
	{0x00, 0x80, 0xff},
	{0x00, 0xff, 0x80},
	{0xff, 0xff, 0x00},
	{0xff, 0x80, 0x00},
	{0xff, 0x00, 0x00},
}

// HeatColor maps frac in [0, 1] to a hex colour on the cold-to-hot ramp.
// Values outside the range are clamped.
func HeatColor(frac float64) string {
	if math.IsNaN(frac) {
		frac = 0
	}
	frac = math.Max(0, math.Min(1, frac))
	pos := frac * float64(len(heatStops)-1)
	k := int(pos)
	if k >= len(heatStops)-1 {
		k = len(heatStops) - 2
	}
	f := pos - float64(k)
	a, b := heatStops[k], heatStops[k+1]
	mix := func(i int) int { return int(math.Round(float64(a[i]) + f*float64(b[i]-a[i]))) }
	return hexColor(mix(0), mix(1), mix(2))
}
