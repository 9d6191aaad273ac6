package label

import colorful "github.com/lucasb-eyer/go-colorful"

// Style is the render descriptor for one label: a background fill and a
// foreground chosen for contrast against it. The table is enumerated
// once from the palette instead of building style names from strings.
type Style struct {
	Name       string
	Background string
	Foreground string
}

var backgrounds = map[string]string{
	"indigo": "#6366f1",
	"gray":   "#6b7280",
	"green":  "#22c55e",
	"blue":   "#3b82f6",
	"red":    "#ef4444",
	"purple": "#a855f7",
	"yellow": "#eab308",
	"pink":   "#ec4899",
	"teal":   "#14b8a6",
}

// neutral is used for labels outside the palette.
var neutral = Style{Name: "unknown", Background: "#475569", Foreground: "#ffffff"}

var styles = buildStyles()

func buildStyles() map[string]Style {
	out := make(map[string]Style, len(Palette))
	for _, name := range Palette {
		bg := backgrounds[name]
		out[name] = Style{Name: name, Background: bg, Foreground: contrastFor(bg)}
	}
	return out
}

// contrastFor picks black or white text by background luminance.
func contrastFor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	if _, _, l := c.Hsl(); l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// StyleFor returns the descriptor for a label name, falling back to the
// neutral style for labels outside the palette.
func StyleFor(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	return neutral
}
