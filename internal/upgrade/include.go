package upgrade

import "strings"

// IncludeRef is an `!include <define>/<category>/<icon>.puml` reference.
type IncludeRef struct {
	Define   string
	Category string
	Icon     string
}

// Line renders the canonical include directive (without terminator).
func (r IncludeRef) Line() string {
	return "!include " + r.Define + "/" + r.Category + "/" + r.Icon + ".puml"
}

// wildcardIcon includes every icon of a category.
const wildcardIcon = "all"

// ParseInclude extracts the include reference from line for the given define.
func (e *Engine) ParseInclude(line, define string) (IncludeRef, bool) {
	body, _ := splitTerminator(line)
	m := e.includePattern(define).FindStringSubmatch(body)
	if m == nil {
		return IncludeRef{}, false
	}
	return IncludeRef{Define: define, Category: m[1], Icon: m[2]}, true
}

// RewriteInclude replays versions over an include line. It returns the
// rewritten line and true, or the input and false if no release touched the
// reference. A reference whose category or icon was removed comes back as a
// PlantUML comment naming the removing version.
//
// Within each version the category rename is applied first, then icon moves
// between categories, then icon replacement or removal, each step looking at
// the category produced by the step before.
func (e *Engine) RewriteInclude(line, define string, versions []string) (string, bool) {
	ref, ok := e.ParseInclude(line, define)
	if !ok {
		return line, false
	}
	_, terminator := splitTerminator(line)

	changed := false
	for _, version := range versions {
		release := e.changes[version]

		if c, ok := release[ref.Category]; ok {
			switch c.Renamed.Kind {
			case RenameRemoved:
				return removedLine(ref, version, terminator), true
			case RenameTo:
				ref.Category = c.Renamed.To
				changed = true
			}
		}

		if c, ok := release[ref.Category]; ok {
			if target, moved := c.Moved[ref.Icon]; moved {
				ref.Category = target
				changed = true
			}
		}

		if c, ok := release[ref.Category]; ok && ref.Icon != wildcardIcon {
			if replacement, replaced := c.Replaced[ref.Icon]; replaced {
				ref.Icon = replacement
				changed = true
			} else if _, removed := c.Removed[ref.Icon]; removed {
				return removedLine(ref, version, terminator), true
			}
		}
	}

	if !changed {
		return line, false
	}
	return ref.Line() + terminator, true
}

func removedLine(ref IncludeRef, version, terminator string) string {
	return "' " + ref.Line() + " ' removed in " + version + terminator
}

// splitTerminator separates a trailing "\n" or "\r\n" from the line body.
func splitTerminator(line string) (body, terminator string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}
