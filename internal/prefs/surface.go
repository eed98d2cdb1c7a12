package prefs

// Surface is one themeable area of the page. Its value doubles as the
// storage key the chosen color is kept under.
type Surface string

const (
	SurfacePageBg      Surface = "--page-bg"
	SurfaceCardBg      Surface = "--card-bg"
	SurfaceHeaderColor Surface = "--header-color"
	SurfaceTextColor   Surface = "--text-color"
)

var Surfaces = []Surface{SurfacePageBg, SurfaceCardBg, SurfaceHeaderColor, SurfaceTextColor}

var surfaceAliases = map[string]Surface{
	"page-bg":      SurfacePageBg,
	"pageBg":       SurfacePageBg,
	"card-bg":      SurfaceCardBg,
	"cardBg":       SurfaceCardBg,
	"header-color": SurfaceHeaderColor,
	"headerColor":  SurfaceHeaderColor,
	"text-color":   SurfaceTextColor,
	"textColor":    SurfaceTextColor,
}

// ParseSurface accepts the CSS variable or a short name like "page-bg".
func ParseSurface(s string) (Surface, bool) {
	for _, sf := range Surfaces {
		if string(sf) == s {
			return sf, true
		}
	}
	sf, ok := surfaceAliases[s]
	return sf, ok
}

func (s Surface) Key() string {
	return string(s)
}
