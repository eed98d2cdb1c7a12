package proptest

import (
	"startpage/internal/links"

	"pgregory.net/rapid"
)

var (
	iterDirGen = rapid.StringMatching(`[a-z]{8}`)
	queryGen   = rapid.StringMatching(`[a-zA-Z]{1,4}`)
	// A small pool keeps category collisions frequent.
	categoryGen = rapid.SampledFrom([]string{"Dev", "News", "Music", "Work", "Dev Tools", "Ünïcode"})
)

func titleGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,15}`),
		rapid.SampledFrom([]string{"Go", "Docs", "go", "日本語", "Émoji 🚀"}),
	)
}

func urlGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		host := rapid.StringMatching(`[a-z]{2,8}`).Draw(t, "host")
		tld := rapid.SampledFrom([]string{"com", "org", "dev", "net"}).Draw(t, "tld")
		return "https://" + host + "." + tld
	})
}

// paddedGen surrounds s with whitespace the repository is expected to trim.
func paddedGen(g *rapid.Generator[string]) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		pad := rapid.SampledFrom([]string{"", " ", "\t", "  "})
		return pad.Draw(t, "lpad") + g.Draw(t, "value") + pad.Draw(t, "rpad")
	})
}

func linkGen() *rapid.Generator[links.Link] {
	return rapid.Custom(func(t *rapid.T) links.Link {
		return links.Link{
			Title:    titleGen().Draw(t, "title"),
			URL:      urlGen().Draw(t, "url"),
			Category: categoryGen.Draw(t, "category"),
		}
	})
}

func blankGen() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"", " ", "\t", " \n "})
}

func malformedJSONGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{"),
		rapid.Just("[{"),
		rapid.Just(`{"title":"x"}`),
		rapid.Just(`[{"title":1}]`),
		rapid.Just(`"just a string"`),
		rapid.Just("null,"),
		rapid.StringMatching(`[^\[\]{}"]{1,30}`),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(1, 64).Draw(t, "size")
			bytes := make([]byte, size)
			for i := range bytes {
				bytes[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(bytes)
		}),
	)
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("- - - -\n  :"),
		rapid.Just("[\n["),
		rapid.Just("entries: [unclosed"),
		rapid.Just("entries: {unclosed"),
		rapid.Just("version: \"unmatched quote"),
		rapid.Just("entries:\n  - a\n - b"),
		rapid.Just("\t\ttabs: everywhere"),
	)
}
