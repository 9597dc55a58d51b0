package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/identity"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

var borderStyles = map[string]bool{"bold": true, "dotted": true, "dashed": true, "plain": true}

// Source pairs a discovered file with the rule that found it.
type Source struct {
	Descriptor pumlicons.SourceDescriptor
	Rule       pumlicons.IconRule
}

// Sources pairs every scan result with its rule, keeping rule order.
// scanned[i] must be the result of scanning rules[i].
func Sources(rules []pumlicons.IconRule, scanned [][]pumlicons.SourceDescriptor) []Source {
	var sources []Source
	for i, descriptors := range scanned {
		for _, d := range descriptors {
			sources = append(sources, Source{Descriptor: d, Rule: rules[i]})
		}
	}
	return sources
}

// Result is the outcome of a resolution run.
type Result struct {
	// Records has one entry per input source, in input order.
	Records  []pumlicons.IconRecord
	Warnings []pumlicons.Warning
}

// Duplicates returns the records flagged as duplicates in either namespace.
func (r *Result) Duplicates() []pumlicons.IconRecord {
	var dups []pumlicons.IconRecord
	for _, rec := range r.Records {
		if rec.DuplicateIdentifier || rec.DuplicateSecondary {
			dups = append(dups, rec)
		}
	}
	return dups
}

// Categories returns the sorted, distinct categories of the records.
func (r *Result) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, rec := range r.Records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			categories = append(categories, rec.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Resolver resolves sources against a curated configuration.
// A Resolver holds no per-run state and is safe for concurrent use.
type Resolver struct {
	curated *config.Curated
	logger  pumlicons.Logger
}

// NewResolver creates a Resolver. Panics if curated or logger is nil.
func NewResolver(curated *config.Curated, logger pumlicons.Logger) *Resolver {
	if curated == nil {
		panic("curated config cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Resolver{curated: curated, logger: logger}
}

// Resolve maps one source file to its record. The returned warnings describe
// the fallbacks taken. Duplicate detection is done by ResolveAll.
func (r *Resolver) Resolve(desc pumlicons.SourceDescriptor, rule pumlicons.IconRule) (pumlicons.IconRecord, []pumlicons.Warning, error) {
	category, err := DeriveCategory(rule, desc.Path)
	if err != nil {
		return pumlicons.IconRecord{}, nil, err
	}
	primary, secondary, err := DeriveIdentifier(rule, desc.Path)
	if err != nil {
		return pumlicons.IconRecord{}, nil, err
	}
	if r.curated.Defaults == nil {
		return pumlicons.IconRecord{}, nil, &pumlicons.ConfigShapeError{Key: "Defaults"}
	}

	rec := pumlicons.IconRecord{
		SourceFilename:          desc.Name,
		SourceDirectoryRelative: desc.RelativeDir,
		SourcePath:              desc.Path,
		Kind:                    desc.Kind,
		SourceChecksum:          desc.Checksum,
		SkipVisualAsset:         desc.Kind == pumlicons.FileKindPlaceholder,
		TargetSize:              r.targetSize(),
	}
	w := &warnings{subject: desc.Name}

	entry, cat, ok := r.curated.Lookup(desc.Name, category)
	if !ok {
		rec.Category = pumlicons.CategoryUncategorized
		rec.Identifier = primary
		rec.SecondaryIdentifier = secondary
		rec.Color = r.colorValue(r.curated.Defaults.Category.Color, w)
		w.add(pumlicons.WarningUncategorized, "no curated entry in category %s, derived %s", category, primary)
		rec.ID = identity.IconID(rec.Category, rec.Identifier)
		return rec, w.list, nil
	}

	rec.Curated = true
	rec.Category = cat.Name
	rec.Identifier = entry.Target
	rec.SecondaryIdentifier = secondary
	if entry.Target2 != "" {
		rec.SecondaryIdentifier = entry.Target2
	}
	rec.Color = r.color(entry, cat, w)

	if entry.HasDarkVariant() {
		dark := desc.Path
		if entry.SourceDir != "" {
			dark = strings.ReplaceAll(dark, entry.SourceDir, entry.SourceDirDark)
		}
		rec.DarkVariantPath = strings.ReplaceAll(dark, entry.Source, entry.SourceDark)
	}
	if strings.HasPrefix(desc.Name, pumlicons.ResourcePrefix) {
		rec.TargetSize = pumlicons.ResourceTargetSize
		rec.Transparent = true
	}
	if cat.Name == pumlicons.CategoryGroups {
		rec.IsGroupContainer = true
		rec.GroupBorderStyle = r.borderStyle(entry, w)
		rec.GroupLabel = r.groupLabel(entry, w)
	}

	rec.ID = identity.IconID(rec.Category, rec.Identifier)
	return rec, w.list, nil
}

// ResolveAll resolves every source in order and flags duplicate identifiers.
// Any error aborts the run and no partial result is returned.
func (r *Resolver) ResolveAll(ctx context.Context, sources []Source) (*Result, error) {
	result := &Result{Records: make([]pumlicons.IconRecord, 0, len(sources))}
	tracker := NewDuplicateTracker()

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, warns, err := r.Resolve(src.Descriptor, src.Rule)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", src.Descriptor.Path, err)
		}

		if tracker.SeePrimary(rec.Identifier) {
			rec.DuplicateIdentifier = true
			warns = append(warns, pumlicons.Warning{
				Kind:    pumlicons.WarningDuplicateIdentifier,
				Subject: rec.SourceFilename,
				Message: fmt.Sprintf("identifier %s already used, add an override to make it unique", rec.Identifier),
			})
		}
		if tracker.SeeSecondary(rec.SecondaryIdentifier) {
			rec.DuplicateSecondary = true
			warns = append(warns, pumlicons.Warning{
				Kind:    pumlicons.WarningDuplicateSecondary,
				Subject: rec.SourceFilename,
				Message: fmt.Sprintf("secondary identifier %s already used", rec.SecondaryIdentifier),
			})
		}

		for _, w := range warns {
			if w.Kind.Routine() {
				r.logger.Verbose("%s", w)
				continue
			}
			r.logger.Warn("%s", w)
		}
		r.logger.Verbose("%s -> %s/%s", src.Descriptor.Path, rec.Category, rec.Identifier)

		result.Records = append(result.Records, rec)
		result.Warnings = append(result.Warnings, warns...)
	}
	return result, nil
}

func (r *Resolver) targetSize() int {
	if size := r.curated.Defaults.TargetMaxSize; size > 0 {
		return size
	}
	return pumlicons.DefaultTargetSize
}

// color picks the icon color: icon, then category, then default category
// color, then the hard fallback.
func (r *Resolver) color(entry config.IconEntry, cat config.CategoryEntry, w *warnings) string {
	switch {
	case entry.Color != "":
		return r.colorValue(entry.Color, w)
	case cat.Color != "":
		w.add(pumlicons.WarningCategoryColor, "no icon color, using category %s color", cat.Name)
		return r.colorValue(cat.Color, w)
	case r.curated.Defaults.Category.Color != "":
		w.add(pumlicons.WarningMissingColor, "no icon or category color, using default category color")
		return r.colorValue(r.curated.Defaults.Category.Color, w)
	default:
		w.add(pumlicons.WarningMissingColor, "no color definition found, using %s", pumlicons.FallbackColor)
		return pumlicons.FallbackColor
	}
}

// colorValue returns literal colors ("#rrggbb", "$MACRO") verbatim and
// resolves palette names through Defaults.Colors.
func (r *Resolver) colorValue(value string, w *warnings) string {
	if strings.HasPrefix(value, "#") || strings.HasPrefix(value, "$") {
		return value
	}
	if hex, ok := r.curated.ColorByName(value); ok {
		return hex
	}
	w.add(pumlicons.WarningUnknownColorName, "color %s not found in Defaults.Colors, using %s", value, pumlicons.FallbackColor)
	return pumlicons.FallbackColor
}

func (r *Resolver) borderStyle(entry config.IconEntry, w *warnings) string {
	style := ""
	if entry.Group != nil {
		style = entry.Group.BorderStyle
	}
	if style == "" {
		style = r.curated.Defaults.Group.BorderStyle
	}
	if style == "" {
		w.add(pumlicons.WarningMissingGroupSetting, "no border style definition found, using %s", pumlicons.DefaultBorderStyle)
		return pumlicons.DefaultBorderStyle
	}
	if style = strings.ToLower(style); borderStyles[style] {
		return style
	}
	return pumlicons.DefaultBorderStyle
}

func (r *Resolver) groupLabel(entry config.IconEntry, w *warnings) string {
	switch {
	case entry.Label != "":
		return entry.Label
	case entry.Group != nil && entry.Group.Label != "":
		return entry.Group.Label
	case r.curated.Defaults.Group.Label != "":
		return r.curated.Defaults.Group.Label
	default:
		w.add(pumlicons.WarningMissingGroupSetting, "no label definition found, using %s", pumlicons.DefaultGroupLabel)
		return pumlicons.DefaultGroupLabel
	}
}

type warnings struct {
	subject string
	list    []pumlicons.Warning
}

func (w *warnings) add(kind pumlicons.WarningKind, format string, args ...interface{}) {
	w.list = append(w.list, pumlicons.Warning{Kind: kind, Subject: w.subject, Message: fmt.Sprintf(format, args...)})
}
