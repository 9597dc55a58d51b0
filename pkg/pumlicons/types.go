package pumlicons

import (
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// FileKind classifies a vendor source file by extension.
type FileKind int

const (
	FileKindUnknown FileKind = iota
	FileKindSVG
	FileKindPNG
	// FileKindPlaceholder is an empty ".touch" marker for a group without an image.
	FileKindPlaceholder
)

// String returns the extension-style name of the kind.
func (k FileKind) String() string {
	switch k {
	case FileKindSVG:
		return "svg"
	case FileKindPNG:
		return "png"
	case FileKindPlaceholder:
		return "touch"
	default:
		return "unknown"
	}
}

// KindFromName classifies a filename by its extension (case-insensitive).
func KindFromName(name string) FileKind {
	switch strings.ToLower(path.Ext(name)) {
	case ".svg":
		return FileKindSVG
	case ".png":
		return FileKindPNG
	case PlaceholderExtension:
		return FileKindPlaceholder
	default:
		return FileKindUnknown
	}
}

// SourceDescriptor is one discovered vendor file.
type SourceDescriptor struct {
	// Path is the slash-separated path as seen by the capture patterns,
	// i.e. the rule directory joined with the relative path.
	Path string

	// RelativeDir is the directory of the file relative to the rule directory.
	RelativeDir string

	// Name is the base filename.
	Name string

	Kind FileKind

	// Checksum is the SHA-256 of the file content.
	Checksum string
}

// IconRule describes how to discover and name one family of vendor files.
type IconRule struct {
	Name string

	// Dir is the root directory scanned for this rule.
	Dir string

	// Glob is matched against paths relative to Dir ("**" allowed).
	Glob string

	// CategoryPattern and IdentifierPattern are searched (unanchored) in the
	// descriptor path; each must have exactly one capture group.
	CategoryPattern   *regexp.Regexp
	IdentifierPattern *regexp.Regexp

	// Overrides are applied to the normalized capture (exact key match).
	CategoryOverrides   map[string]string
	IdentifierOverrides map[string]string
	SecondaryOverrides  map[string]string
}

// IconRecord is the fully resolved description of one icon.
type IconRecord struct {
	ID uuid.UUID

	SourceFilename          string
	SourceDirectoryRelative string
	SourcePath              string
	Kind                    FileKind

	// SourceChecksum is the scanner checksum of the source file, used by the
	// catalog to spot vendor changes between releases.
	SourceChecksum string

	Category            string
	Identifier          string
	SecondaryIdentifier string
	Color               string

	IsGroupContainer bool
	GroupBorderStyle string
	GroupLabel       string

	// DarkVariantPath is empty when the icon has no dark variant.
	DarkVariantPath string

	SkipVisualAsset bool
	TargetSize      int
	Transparent     bool

	// Curated is true when the record came from a curated config entry.
	Curated bool

	DuplicateIdentifier bool
	DuplicateSecondary  bool
}

// HasDarkVariant reports whether a dark image is rendered for the icon.
func (r IconRecord) HasDarkVariant() bool {
	return r.DarkVariantPath != ""
}

// WarningKind classifies a non-fatal resolution problem.
type WarningKind string

const (
	WarningDuplicateIdentifier WarningKind = "duplicate-identifier"
	WarningDuplicateSecondary  WarningKind = "duplicate-secondary"
	WarningCategoryColor       WarningKind = "category-color"
	WarningMissingColor        WarningKind = "missing-color"
	WarningUnknownColorName    WarningKind = "unknown-color-name"
	WarningMissingGroupSetting WarningKind = "missing-group-setting"
	WarningUncategorized       WarningKind = "uncategorized"
)

// Routine reports whether k is expected for most icons. Routine warnings are
// logged at verbose level and summarized by count only.
func (k WarningKind) Routine() bool {
	return k == WarningCategoryColor
}

// Warning is a non-fatal problem recorded during resolution.
type Warning struct {
	Kind WarningKind

	// Subject is the source filename or identifier the warning is about.
	Subject string

	Message string
}

// String formats the warning for log output.
func (w Warning) String() string {
	return string(w.Kind) + ": " + w.Subject + ": " + w.Message
}
