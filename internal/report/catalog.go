package report

import (
	"github.com/google/uuid"

	"github.com/vvka-141/pumlicons/internal/identity"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Catalog lists every built icon with its stable identity.
type Catalog struct {
	Release string        `json:"release"`
	Icons   []CatalogIcon `json:"icons"`
}

// CatalogIcon is one catalog entry.
type CatalogIcon struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Target      string    `json:"target"`
	Target2     string    `json:"target2,omitempty"`
	Source      string    `json:"source"`
	SourceDir   string    `json:"sourceDir,omitempty"`
	Checksum    string    `json:"checksum,omitempty"`
	Color       string    `json:"color"`
	Group       bool      `json:"group,omitempty"`
	Placeholder bool      `json:"placeholder,omitempty"`
	Dark        bool      `json:"dark,omitempty"`
	Duplicate   bool      `json:"duplicate,omitempty"`
}

// NewCatalog builds the catalog of the categorized records.
func NewCatalog(release string, records []pumlicons.IconRecord) Catalog {
	catalog := Catalog{Release: release, Icons: []CatalogIcon{}}
	for _, rec := range SortRecords(records) {
		if rec.Category == pumlicons.CategoryUncategorized {
			continue
		}
		id := rec.ID
		if id == uuid.Nil {
			id = identity.IconID(rec.Category, rec.Identifier)
		}
		catalog.Icons = append(catalog.Icons, CatalogIcon{
			ID:          id,
			Category:    rec.Category,
			Target:      rec.Identifier,
			Target2:     rec.SecondaryIdentifier,
			Source:      rec.SourceFilename,
			SourceDir:   rec.SourceDirectoryRelative,
			Checksum:    rec.SourceChecksum,
			Color:       rec.Color,
			Group:       rec.IsGroupContainer,
			Placeholder: rec.SkipVisualAsset,
			Dark:        rec.HasDarkVariant(),
			Duplicate:   rec.DuplicateIdentifier || rec.DuplicateSecondary,
		})
	}
	return catalog
}
