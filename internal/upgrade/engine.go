package upgrade

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

const headerPatternText = `^!define (.+) https://raw\.githubusercontent\.com/awslabs/aws-icons-for-plantuml/(.+)/dist`

// iconChange is one entry of a release's flattened icon table.
type iconChange struct {
	to      string
	removed bool
}

// tokenForms are the precompiled ways an icon name appears in diagram text.
type tokenForms struct {
	imgCall string         // $NameIMG(
	macro   *regexp.Regexp // $Name
	bare    *regexp.Regexp // Name, NameIMG(
}

// Engine owns the change history and every pattern derived from it.
// It is built once and is read-only afterwards, so a single Engine can be
// shared by goroutines rewriting different documents.
type Engine struct {
	versions     []string
	versionIndex map[string]int
	changes      map[string]ReleaseChanges

	// iconChanges flattens each release to icon -> change, ignoring category.
	iconChanges map[string]map[string]iconChange
	tokens      map[string]tokenForms

	iconPattern    *regexp.Regexp
	macroPattern   *regexp.Regexp
	macros         map[string]string
	headerPattern  *regexp.Regexp
	defaultInclude *regexp.Regexp
}

// NewEngine builds an Engine from the built-in change history.
func NewEngine() (*Engine, error) {
	return NewEngineFrom(SupportedVersions, breakingChanges, legacyColorMacros)
}

// MustNewEngine is NewEngine for package-level initialisation; it panics on
// an inconsistent built-in table.
func MustNewEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return e
}

// NewEngineFrom builds an Engine from an explicit version list, change table
// and legacy macro table. Every version must have a (possibly empty) entry in
// changes and vice versa.
func NewEngineFrom(versions []string, changes map[string]ReleaseChanges, macros map[string]string) (*Engine, error) {
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: no supported versions", pumlicons.ErrInvalidConfig)
	}

	e := &Engine{
		versions:     append([]string(nil), versions...),
		versionIndex: make(map[string]int, len(versions)),
		changes:      make(map[string]ReleaseChanges, len(versions)),
		iconChanges:  make(map[string]map[string]iconChange, len(versions)),
		tokens:       make(map[string]tokenForms),
		macros:       make(map[string]string, len(macros)),
	}

	for i, v := range versions {
		if _, dup := e.versionIndex[v]; dup {
			return nil, fmt.Errorf("%w: version %s listed twice", pumlicons.ErrInvalidConfig, v)
		}
		e.versionIndex[v] = i
		release, ok := changes[v]
		if !ok {
			return nil, fmt.Errorf("%w: no change entry for version %s", pumlicons.ErrInvalidConfig, v)
		}
		e.changes[v] = normalizeRelease(release)
		e.iconChanges[v] = flattenRelease(e.changes[v])
	}
	for v := range changes {
		if _, ok := e.versionIndex[v]; !ok {
			return nil, fmt.Errorf("%w: change entry for unknown version %s", pumlicons.ErrInvalidConfig, v)
		}
	}

	var icons []string
	for _, flat := range e.iconChanges {
		for icon := range flat {
			if _, seen := e.tokens[icon]; seen {
				continue
			}
			forms, err := compileTokenForms(icon)
			if err != nil {
				return nil, err
			}
			e.tokens[icon] = forms
			icons = append(icons, icon)
		}
	}

	var err error
	if len(icons) > 0 {
		e.iconPattern, err = regexp.Compile(`\b(` + alternation(icons) + `)(?:IMG\(|\(|\b)`)
		if err != nil {
			return nil, fmt.Errorf("compile icon pattern: %w", err)
		}
	}

	var macroNames []string
	for legacy, current := range macros {
		e.macros[legacy] = current
		macroNames = append(macroNames, legacy)
	}
	if len(macroNames) > 0 {
		e.macroPattern, err = regexp.Compile(`\b(` + alternation(macroNames) + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile macro pattern: %w", err)
		}
	}

	e.headerPattern = regexp.MustCompile(headerPatternText)
	e.defaultInclude = compileIncludePattern(pumlicons.DefaultDefine)
	return e, nil
}

// Versions returns a copy of the supported version list, oldest first.
func (e *Engine) Versions() []string {
	return append([]string(nil), e.versions...)
}

// Latest returns the newest supported version.
func (e *Engine) Latest() string {
	return e.versions[len(e.versions)-1]
}

// VersionsFrom returns the versions to replay for a document declaring
// version, starting with version itself. It returns an
// *pumlicons.UnsupportedVersionError for unknown versions.
func (e *Engine) VersionsFrom(version string) ([]string, error) {
	i, ok := e.versionIndex[version]
	if !ok {
		return nil, &pumlicons.UnsupportedVersionError{Version: version, Supported: e.Versions()}
	}
	return append([]string(nil), e.versions[i:]...), nil
}

// Changes returns the change entry of category in version.
func (e *Engine) Changes(version, category string) (CategoryChange, bool) {
	c, ok := e.changes[version][category]
	return c, ok
}

func normalizeRelease(release ReleaseChanges) ReleaseChanges {
	out := make(ReleaseChanges, len(release))
	for category, c := range release {
		n := CategoryChange{
			Renamed:  c.Renamed,
			Moved:    make(map[string]string, len(c.Moved)),
			Replaced: make(map[string]string, len(c.Replaced)),
			Removed:  make(map[string]struct{}, len(c.Removed)),
		}
		for k, v := range c.Moved {
			n.Moved[k] = v
		}
		for k, v := range c.Replaced {
			n.Replaced[k] = v
		}
		for k := range c.Removed {
			n.Removed[k] = struct{}{}
		}
		out[category] = n
	}
	return out
}

// flattenRelease merges the icon changes of all categories of one release.
// A replacement wins over a removal of the same name in another category.
func flattenRelease(release ReleaseChanges) map[string]iconChange {
	flat := make(map[string]iconChange)
	for _, c := range release {
		for icon := range c.Removed {
			if _, ok := flat[icon]; !ok {
				flat[icon] = iconChange{removed: true}
			}
		}
	}
	for _, c := range release {
		for old, replacement := range c.Replaced {
			flat[old] = iconChange{to: replacement}
		}
	}
	return flat
}

func compileTokenForms(icon string) (tokenForms, error) {
	quoted := regexp.QuoteMeta(icon)
	macro, err := regexp.Compile(`\$` + quoted + `\b`)
	if err != nil {
		return tokenForms{}, fmt.Errorf("compile token pattern for %s: %w", icon, err)
	}
	bare, err := regexp.Compile(`\b` + quoted + `(IMG\(|\b)`)
	if err != nil {
		return tokenForms{}, fmt.Errorf("compile token pattern for %s: %w", icon, err)
	}
	return tokenForms{imgCall: "$" + icon + "IMG(", macro: macro, bare: bare}, nil
}

// alternation joins names longest first so that a name never shadows a
// longer name it is a prefix of.
func alternation(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return strings.Join(quoted, "|")
}

func compileIncludePattern(define string) *regexp.Regexp {
	return regexp.MustCompile(`^!include(?:url)? ` + regexp.QuoteMeta(define) + `/(.+)/(.+)\.puml`)
}

// includePattern returns the include pattern for define, reusing the
// precompiled default.
func (e *Engine) includePattern(define string) *regexp.Regexp {
	if define == pumlicons.DefaultDefine {
		return e.defaultInclude
	}
	return compileIncludePattern(define)
}
