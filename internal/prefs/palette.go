package prefs

const DefaultTheme = "Elegant Midnight"

// Palette maps CSS custom properties to colors.
type Palette map[string]string

// PaletteVars is the order palette variables are listed and rendered in.
var PaletteVars = []string{"--primary", "--secondary", "--accent", "--background", "--text"}

var palettes = map[string]Palette{
	"Minimalist Neutral": {
		"--primary":    "#2E2E2E",
		"--secondary":  "#B0B0B0",
		"--accent":     "#FF6B6B",
		"--background": "#FFFFFF",
		"--text":       "#1A1A1A",
	},
	"Elegant Midnight": {
		"--primary":    "#0D1B2A",
		"--secondary":  "#1B263B",
		"--accent":     "#E0A458",
		"--background": "#F4F4F4",
		"--text":       "#0D1B2A",
	},
	"Soft Pastel": {
		"--primary":    "#A3D2CA",
		"--secondary":  "#F7D9D9",
		"--accent":     "#FFB085",
		"--background": "#FFFFFF",
		"--text":       "#444444",
	},
	"Modern Tech": {
		"--primary":    "#0F4C81",
		"--secondary":  "#1B9AAA",
		"--accent":     "#F5A623",
		"--background": "#F2F2F2",
		"--text":       "#222222",
	},
	"Earthy Organic": {
		"--primary":    "#6A994E",
		"--secondary":  "#A7C957",
		"--accent":     "#BC4749",
		"--background": "#FDF0D5",
		"--text":       "#1B1B1E",
	},
}

var themeOrder = []string{
	"Minimalist Neutral",
	"Elegant Midnight",
	"Soft Pastel",
	"Modern Tech",
	"Earthy Organic",
}

type Theme struct {
	Name    string  `json:"name"`
	Palette Palette `json:"palette"`
}

// Themes lists the built-in themes in display order.
func Themes() []Theme {
	out := make([]Theme, 0, len(themeOrder))
	for _, name := range themeOrder {
		out = append(out, Theme{Name: name, Palette: palettes[name]})
	}
	return out
}

func LookupTheme(name string) (Theme, bool) {
	p, ok := palettes[name]
	if !ok {
		return Theme{}, false
	}
	return Theme{Name: name, Palette: p}, true
}

// Colors returns the palette values in PaletteVars order.
func (p Palette) Colors() []string {
	out := make([]string, 0, len(PaletteVars))
	for _, v := range PaletteVars {
		if c, ok := p[v]; ok {
			out = append(out, c)
		}
	}
	return out
}

