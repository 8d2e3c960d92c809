package viz

import "testing"

func TestHeatColor(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{0, "#000080"},
		{1, "#ff0000"},
		{0.5, "#80ff40"},
		{-3, "#000080"},
		{7, "#ff0000"},
	}
	for _, tt := range tests {
		if got := HeatColor(tt.frac); got != tt.want {
			t.Errorf("HeatColor(%v) = %s, want %s", tt.frac, got, tt.want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("retro").Name; got != "retro" {
		t.Errorf("GetTheme(retro) = %s", got)
	}
	if got := GetTheme("nope").Name; got != Themes[0].Name {
		t.Errorf("unknown theme = %s, want %s", got, Themes[0].Name)
	}
	if n := len(ThemeNames()); n != len(Themes) {
		t.Errorf("ThemeNames has %d entries, want %d", n, len(Themes))
	}
}

func TestBodyColorCycles(t *testing.T) {
	th := ThemeRetroGreen
	if th.BodyColor(len(th.Bodies)) != th.BodyColor(0) {
		t.Error("palette does not wrap")
	}
}
