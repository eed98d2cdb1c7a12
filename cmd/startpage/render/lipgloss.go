package render

import (
	"io"
	"os"
	"startpage/internal/prefs"
	"startpage/internal/view"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

type LipglossRenderer struct {
	width int
	r     *lipgloss.Renderer
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	return &LipglossRenderer{
		width: width,
		r:     lipgloss.NewRenderer(w),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

type styles struct {
	header lipgloss.Style
	count  lipgloss.Style
	title  lipgloss.Style
	match  lipgloss.Style
	url    lipgloss.Style
	status lipgloss.Style
}

// stylesFor colors the output with the page's palette so the terminal view
// follows the selected theme.
func (r *LipglossRenderer) stylesFor(theme prefs.Theme) styles {
	color := func(v string) lipgloss.TerminalColor {
		if c, ok := theme.Palette[v]; ok {
			return lipgloss.Color(c)
		}
		return lipgloss.NoColor{}
	}
	return styles{
		header: r.r.NewStyle().Bold(true).Foreground(color("--primary")),
		count:  r.r.NewStyle().Faint(true),
		title:  r.r.NewStyle(),
		match:  r.r.NewStyle().Underline(true).Foreground(color("--accent")),
		url:    r.r.NewStyle().Faint(true),
		status: r.r.NewStyle().Italic(true).Foreground(color("--accent")),
	}
}

func (r *LipglossRenderer) RenderPage(page view.Page, theme prefs.Theme) string {
	st := r.stylesFor(theme)

	if page.Stats.TotalLinks == 0 {
		return "No links yet. Add one with 'startpage add'.\n"
	}

	groups := page.VisibleGroups()
	var blocks []string
	for _, g := range groups {
		blocks = append(blocks, r.renderGroup(g, page.Term, st))
	}

	var sb strings.Builder
	if len(blocks) == 0 {
		sb.WriteString("No links match " + strconv.Quote(page.Term) + ".\n")
	} else {
		sb.WriteString(strings.Join(blocks, "\n\n"))
		sb.WriteString("\n")
	}
	if summary := page.Summary(); summary != "" {
		sb.WriteString("\n")
		sb.WriteString(st.status.Render(summary))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *LipglossRenderer) renderGroup(g view.Group, term string, st styles) string {
	count := strconv.Itoa(g.Total)
	if term != "" {
		count = strconv.Itoa(len(g.Links)) + "/" + count
	}
	lines := []string{st.header.Render(g.Category) + " " + st.count.Render("("+count+")")}

	for _, l := range g.Links {
		var title strings.Builder
		for _, seg := range view.Highlight(l.Title, term) {
			if seg.Match {
				title.WriteString(st.match.Render(seg.Text))
			} else {
				title.WriteString(st.title.Render(seg.Text))
			}
		}
		left := "  " + title.String()
		url := st.url.Render(l.URL)
		padding := max(1, r.width-lipgloss.Width(left)-lipgloss.Width(url))
		lines = append(lines, left+strings.Repeat(" ", padding)+url)
	}
	return strings.Join(lines, "\n")
}
