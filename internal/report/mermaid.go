package report

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MermaidIconSize is the default edge length declared by the icon pack.
const MermaidIconSize = 48

var (
	svgOpenTag   = regexp.MustCompile(`<svg\b[^>]*>`)
	svgTitle     = regexp.MustCompile(`(?s)<title\b[^>]*/>|<title\b[^>]*>.*?</title>`)
	blankBetween = regexp.MustCompile(`>\s+<`)
	xmlnsAttr    = regexp.MustCompile(`\sxmlns[^"]*"[^"]*"`)
	pngSuffix    = regexp.MustCompile(`\.png$`)
)

// MermaidPack is an Iconify icon set as loaded by Mermaid's registerIconPacks.
type MermaidPack struct {
	Prefix       string                 `json:"prefix"`
	Info         MermaidInfo            `json:"info"`
	LastModified int64                  `json:"lastModified"`
	Width        int                    `json:"width"`
	Height       int                    `json:"height"`
	Icons        map[string]MermaidIcon `json:"icons"`
	Categories   map[string][]string    `json:"categories"`
}

// MermaidInfo describes the icon set.
type MermaidInfo struct {
	Name    string         `json:"name"`
	Total   int            `json:"total"`
	Version string         `json:"version"`
	Author  MermaidLink    `json:"author"`
	License MermaidLicense `json:"license"`
	Samples []string       `json:"samples"`
	Palette bool           `json:"palette"`
}

// MermaidLink is a named URL.
type MermaidLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MermaidLicense is the license of the icon set.
type MermaidLicense struct {
	Title string `json:"title"`
	SPDX  string `json:"spdx"`
	URL   string `json:"url"`
}

// MermaidIcon is one icon body; Width and Height are set only when they
// differ from the pack default.
type MermaidIcon struct {
	Body   string `json:"body"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// NewMermaidPack creates an empty pack for a release.
func NewMermaidPack(version string, released time.Time) *MermaidPack {
	return &MermaidPack{
		Prefix: "aws",
		Info: MermaidInfo{
			Name:    "AWS Icons",
			Version: version,
			Author:  MermaidLink{Name: "AWS", URL: "https://github.com/awslabs/aws-icons-for-plantuml"},
			License: MermaidLicense{
				Title: "Creative Commons Attribution No Derivatives 2.0",
				SPDX:  "CC-BY-ND-2.0",
				URL:   "https://github.com/awslabs/aws-icons-for-plantuml/blob/main/LICENSE",
			},
			Samples: []string{"ec2", "simple-storage-service", "lambda"},
			Palette: true,
		},
		LastModified: released.UTC().Unix(),
		Width:        MermaidIconSize,
		Height:       MermaidIconSize,
		Icons:        make(map[string]MermaidIcon),
		Categories:   make(map[string][]string),
	}
}

// MermaidSourcePath is the SVG used for an icon source: PNG sources are
// looked up as the sibling SVG of the same name.
func MermaidSourcePath(source string) (string, bool) {
	p := pngSuffix.ReplaceAllString(source, ".svg")
	return p, strings.HasSuffix(p, ".svg")
}

// Add parses svg and adds it to category under name.
func (p *MermaidPack) Add(category, name string, svg []byte) error {
	width, height, err := svgSize(svg)
	if err != nil {
		return err
	}
	body, err := svgBody(svg)
	if err != nil {
		return err
	}

	icon := MermaidIcon{Body: body}
	if width != p.Width {
		icon.Width = width
	}
	if height != p.Height {
		icon.Height = height
	}

	p.Info.Total++
	p.Categories[category] = append(p.Categories[category], name)
	p.Icons[name] = icon
	return nil
}

// svgSize reads width and height of the root element ("48" or "48px").
func svgSize(svg []byte) (int, int, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return 0, 0, errors.New("svg has no root element")
		}
		if err != nil {
			return 0, 0, fmt.Errorf("parse svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		var w, h string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				w = attr.Value
			case "height":
				h = attr.Value
			}
		}
		width, err := strconv.Atoi(strings.TrimSuffix(w, "px"))
		if err != nil {
			return 0, 0, fmt.Errorf("svg width %q: %w", w, err)
		}
		height, err := strconv.Atoi(strings.TrimSuffix(h, "px"))
		if err != nil {
			return 0, 0, fmt.Errorf("svg height %q: %w", h, err)
		}
		return width, height, nil
	}
}

// svgBody returns the markup inside the root element without <title>
// children, blank text between tags and namespace declarations.
func svgBody(svg []byte) (string, error) {
	s := string(svg)
	open := svgOpenTag.FindStringIndex(s)
	end := strings.LastIndex(s, "</svg>")
	if open == nil || end < open[1] {
		return "", errors.New("svg root element not found")
	}

	body := s[open[1]:end]
	body = blankBetween.ReplaceAllString(body, "><")
	body = svgTitle.ReplaceAllString(body, "")
	body = xmlnsAttr.ReplaceAllString(body, "")
	return strings.TrimSpace(body), nil
}
