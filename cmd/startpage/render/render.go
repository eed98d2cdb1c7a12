package render

import (
	"startpage/internal/prefs"
	"startpage/internal/view"
)

type Renderer interface {
	RenderPage(page view.Page, theme prefs.Theme) string
}
