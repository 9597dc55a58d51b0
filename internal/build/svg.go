package build

import (
	"regexp"
	"strings"
)

var (
	gradientFill     = regexp.MustCompile(`fill="url\(#linearGradient-1\)"`)
	resourceGroup    = regexp.MustCompile(`<g\b[^>]*\bid="Icon-Resource[^"]*"[^>]*>`)
	categoryGroup    = regexp.MustCompile(`<g\b[^>]*\bid="Icon-Architecture-Category[^"]*"[^>]*>`)
	literalColorForm = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)
)

// SVGOptions control the edits made before rasterizing.
type SVGOptions struct {
	// Color is the icon color; only literal hex colors are written into the SVG.
	Color string

	// Gradient replaces the legacy gradient fill with Color. PlantUML sprites
	// only have 16 gray levels, so gradients come out banded.
	Gradient bool

	// Transparent keeps resource and category icons on a transparent canvas.
	// Otherwise resource icons get a white backdrop and category icons a
	// backdrop in Color.
	Transparent bool
}

// PrepareSVG applies opts to an SVG document.
func PrepareSVG(svg []byte, opts SVGOptions) []byte {
	out := string(svg)
	hex := literalColorForm.MatchString(opts.Color)

	if opts.Gradient && hex {
		out = gradientFill.ReplaceAllString(out, `fill="`+opts.Color+`"`)
	}
	if !opts.Transparent {
		out = insertBackdrop(out, resourceGroup, "white")
		if hex {
			out = insertBackdrop(out, categoryGroup, opts.Color)
		}
	}
	return []byte(out)
}

// insertBackdrop adds a full-size rect as the first child of the first group
// matched by group.
func insertBackdrop(svg string, group *regexp.Regexp, fill string) string {
	loc := group.FindStringIndex(svg)
	if loc == nil || strings.HasSuffix(svg[loc[0]:loc[1]], "/>") {
		return svg
	}
	rect := `<rect width="100%" height="100%" fill="` + fill + `"/>`
	return svg[:loc[1]] + rect + svg[loc[1]:]
}
