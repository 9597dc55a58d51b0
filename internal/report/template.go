package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pumlicons/internal/palette"
	"github.com/vvka-141/pumlicons/internal/resolve"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

const (
	duplicateTargetComment  = "******* Duplicate target name, must be made unique for All.puml ********"
	duplicateTarget2Comment = "******* Duplicate target2 name, must be made unique for aws-icons-mermaid.json ********"
)

// Field order is alphabetical so the template diffs cleanly between releases.
type templateIcon struct {
	Color         string `yaml:"Color,omitempty"`
	Source        string `yaml:"Source"`
	SourceDark    string `yaml:"SourceDark,omitempty"`
	SourceDir     string `yaml:"SourceDir"`
	SourceDirDark string `yaml:"SourceDirDark,omitempty"`
	Target        string `yaml:"Target"`
	Target2       string `yaml:"Target2"`
	ZComment      string `yaml:"ZComment,omitempty"`
	ZComment2     string `yaml:"ZComment2,omitempty"`
}

type templateCategory struct {
	Color string         `yaml:"Color,omitempty"`
	Icons []templateIcon `yaml:"Icons"`
}

type templateDocument struct {
	Categories map[string]*templateCategory `yaml:"Categories"`
}

// ConfigTemplate derives a curated config skeleton from the vendor sources.
// Group entries are not derived; a hand-maintained Groups block is appended.
// Duplicate targets are marked with ZComment/ZComment2 for review.
func ConfigTemplate(sources []resolve.Source) ([]byte, error) {
	doc := templateDocument{Categories: make(map[string]*templateCategory)}
	tracker := resolve.NewDuplicateTracker()

	for _, src := range sources {
		category, err := resolve.DeriveCategory(src.Rule, src.Descriptor.Path)
		if err != nil {
			return nil, err
		}
		if category == pumlicons.CategoryGroups {
			continue
		}
		target, target2, err := resolve.DeriveIdentifier(src.Rule, src.Descriptor.Path)
		if err != nil {
			return nil, err
		}

		entry := templateIcon{
			Source:    src.Descriptor.Name,
			SourceDir: src.Descriptor.RelativeDir,
			Target:    target,
			Target2:   target2,
		}
		if category == "General" {
			if target == "MarketplaceDark" {
				continue
			}
			entry.SourceDark = strings.ReplaceAll(entry.Source, "Light", "Dark")
			entry.SourceDirDark = strings.ReplaceAll(entry.SourceDir, "Light", "Dark")
		}
		if tracker.SeePrimary(target) {
			entry.ZComment = duplicateTargetComment
		}
		if tracker.SeeSecondary(target2) {
			entry.ZComment2 = duplicateTarget2Comment
		}
		if category == pumlicons.CategoryGroupIcons {
			if color, ok := palette.GroupIconColor(target); ok {
				entry.Color = color
			}
		}

		cat, ok := doc.Categories[category]
		if !ok {
			cat = &templateCategory{}
			if color, ok := palette.CategoryColor(category); ok {
				cat.Color = color
			}
			doc.Categories[category] = cat
		}
		cat.Icons = append(cat.Icons, entry)
	}

	for _, cat := range doc.Categories {
		sort.SliceStable(cat.Icons, func(i, j int) bool { return cat.Icons[i].Target < cat.Icons[j].Target })
	}

	var buf bytes.Buffer
	buf.WriteString(configDefaults)
	if len(doc.Categories) == 0 {
		buf.WriteString("Categories:\n")
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode config template: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	}
	buf.WriteString(configGroups)
	return buf.Bytes(), nil
}
