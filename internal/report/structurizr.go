package report

import (
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

const (
	structurizrName        = "AWS Icons for PlantUML Structurizr theme"
	structurizrDescription = "This theme includes element styles with icons for each of the AWS services, based upon the AWS Architecture Icons (https://aws.amazon.com/architecture/icons/) and using tag names from AWS Icons for PlantUML (https://github.com/awslabs/aws-icons-for-plantuml)."
)

// StructurizrTheme is a Structurizr theme document.
type StructurizrTheme struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Elements    []StructurizrElement `json:"elements"`
}

// StructurizrElement is one element style, keyed by tag.
type StructurizrElement struct {
	Tag         string `json:"tag"`
	Shape       string `json:"shape,omitempty"`
	Color       string `json:"color,omitempty"`
	Stroke      string `json:"stroke,omitempty"`
	StrokeWidth int    `json:"strokeWidth,omitempty"`
	Background  string `json:"background,omitempty"`
	Border      string `json:"border,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Structurizr builds the theme with one element per icon.
func Structurizr(records []pumlicons.IconRecord) StructurizrTheme {
	theme := StructurizrTheme{
		Name:        structurizrName,
		Description: structurizrDescription,
		Elements: []StructurizrElement{{
			Tag:         "Element",
			Shape:       "Box",
			Color:       "#000000",
			Stroke:      "#000000",
			StrokeWidth: 2,
			Background:  "#ffffff",
		}},
	}

	for _, rec := range SortRecords(records) {
		if rec.Category == pumlicons.CategoryUncategorized {
			continue
		}
		el := StructurizrElement{Tag: rec.Identifier, Stroke: rec.Color}
		if rec.Color == pumlicons.FallbackColor {
			el.Stroke = "#000000"
		}
		if rec.GroupBorderStyle == "dashed" || rec.GroupBorderStyle == "dotted" {
			el.Border = rec.GroupBorderStyle
		}
		if !rec.SkipVisualAsset {
			el.Icon = rec.Category + "/" + rec.Identifier + ".png"
		}
		theme.Elements = append(theme.Elements, el)
	}
	return theme
}
