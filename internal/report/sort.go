package report

import (
	"sort"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// SortRecords returns a copy of records ordered by category, identifier and
// placeholder flag.
func SortRecords(records []pumlicons.IconRecord) []pumlicons.IconRecord {
	sorted := append([]pumlicons.IconRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Identifier != b.Identifier {
			return a.Identifier < b.Identifier
		}
		return !a.SkipVisualAsset && b.SkipVisualAsset
	})
	return sorted
}

func categoriesOf(records []pumlicons.IconRecord) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, rec := range records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			categories = append(categories, rec.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
