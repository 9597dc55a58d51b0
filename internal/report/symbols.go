package report

import (
	"fmt"
	"strings"

	"github.com/vvka-141/pumlicons/internal/palette"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Symbols renders the Markdown symbol sheet listing every icon by category.
func Symbols(records []pumlicons.IconRecord) (string, error) {
	sorted := SortRecords(records)

	var b strings.Builder
	b.WriteString(symbolsPrefix)

	for _, category := range categoriesOf(sorted) {
		switch category {
		case pumlicons.CategoryUncategorized:
			continue
		case pumlicons.CategoryGroupIcons:
		case pumlicons.CategoryGroups:
			fmt.Fprintf(&b, "**%s** | | | **%s/all.puml**\n", category, category)
		default:
			macro, ok := palette.CategoryMacro(category)
			if !ok {
				return "", fmt.Errorf("category %s has no palette color", category)
			}
			fmt.Fprintf(&b, "**%[1]s** | $AWSColor(%[1]s) / %[2]s | | **%[1]s/all.puml**\n", category, macro)
		}

		for _, rec := range sorted {
			if rec.Category != category {
				continue
			}
			writeSymbolRow(&b, rec)
		}
	}
	return b.String(), nil
}

func writeSymbolRow(b *strings.Builder, rec pumlicons.IconRecord) {
	cat, tgt := rec.Category, rec.Identifier
	img := fmt.Sprintf("![%[2]s](dist/%[1]s/%[2]s.png?raw=true)", cat, tgt)
	if rec.HasDarkVariant() {
		img = fmt.Sprintf("![%[2]s](dist/%[1]s/%[2]s.png?raw=true#gh-light-mode-only) ![%[2]s](dist/%[1]s/%[2]s_Dark.png?raw=true#gh-dark-mode-only)", cat, tgt)
	}

	switch {
	case cat == pumlicons.CategoryGroupIcons:
	case cat == pumlicons.CategoryGroups && rec.SkipVisualAsset:
		fmt.Fprintf(b, "%[1]s | %[2]sGroup  | - | %[1]s/%[2]s.puml\n", cat, tgt)
	case cat == pumlicons.CategoryGroups:
		fmt.Fprintf(b, "%[1]s | %[2]sGroup / $%[2]sIMG()  | %[3]s |%[1]s/%[2]s.puml\n", cat, tgt, img)
	default:
		fmt.Fprintf(b, "%[1]s | %[2]s / %[2]sParticipant / $%[2]sIMG()  | %[3]s |%[1]s/%[2]s.puml\n", cat, tgt, img)
	}
}
