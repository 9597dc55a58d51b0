package upgrade

import "strings"

// RewriteLine upgrades the icon names and legacy color macros on a line that
// is not an include directive. It returns the rewritten line and true, or the
// input and false when nothing changed.
func (e *Engine) RewriteLine(line string, versions []string) (string, bool) {
	out := e.rewriteIcons(line, versions)
	out = e.rewriteMacros(out)
	if out == line {
		return line, false
	}
	return out, true
}

// rewriteIcons follows each referenced icon through every release, so a name
// replaced twice ends at its latest form.
func (e *Engine) rewriteIcons(line string, versions []string) string {
	if e.iconPattern == nil {
		return line
	}
	matches := e.iconPattern.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return line
	}

	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		icon := m[1]
		if seen[icon] {
			continue
		}
		seen[icon] = true

		current := icon
		for _, version := range versions {
			change, ok := e.iconChanges[version][current]
			if !ok || change.removed {
				continue
			}
			line = e.replaceToken(line, current, change.to)
			current = change.to
		}
	}
	return line
}

// replaceToken substitutes one icon name, preferring the image call form,
// then the sprite macro form, then the bare word.
func (e *Engine) replaceToken(line, old, replacement string) string {
	forms, ok := e.tokens[old]
	if !ok {
		compiled, err := compileTokenForms(old)
		if err != nil {
			return line
		}
		forms = compiled
	}

	switch {
	case strings.Contains(line, forms.imgCall):
		return strings.ReplaceAll(line, forms.imgCall, "$"+replacement+"IMG(")
	case forms.macro.MatchString(line):
		return forms.macro.ReplaceAllLiteralString(line, "$"+replacement)
	default:
		return forms.bare.ReplaceAllString(line, escapeDollar(replacement)+"${1}")
	}
}

// rewriteMacros prefixes legacy color macros with "$" and maps them to the
// current palette, leaving tokens that already carry the sigil alone.
func (e *Engine) rewriteMacros(line string) string {
	if e.macroPattern == nil {
		return line
	}
	locs := e.macroPattern.FindAllStringSubmatchIndex(line, -1)
	if locs == nil {
		return line
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[2], loc[3]
		if start > 0 && line[start-1] == '$' {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(e.macros[line[start:end]])
		last = end
	}
	if last == 0 {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

func escapeDollar(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
