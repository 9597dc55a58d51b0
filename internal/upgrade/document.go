package upgrade

import "strings"

// LineChange records one rewritten line. Number is 1-based.
type LineChange struct {
	Number int
	Before string
	After  string
}

// Result is the outcome of rewriting one document.
type Result struct {
	// Define is the include define name declared by the header, e.g. "AWSPuml".
	Define string

	// DeclaredVersion is the version the document was generated against.
	DeclaredVersion string

	// Lines has the same length and order as the input.
	Lines []string

	Changes []LineChange
}

// Changed reports whether any line differs from the input.
func (r *Result) Changed() bool {
	return r != nil && len(r.Changes) > 0
}

// Text joins the rewritten lines back into document text.
func (r *Result) Text() string {
	return strings.Join(r.Lines, "")
}

type documentState int

const (
	scanningForHeader documentState = iota
	upgrading
)

// RewriteDocument upgrades a whole document. Lines keep their terminators,
// as produced by SplitLines.
//
// It returns (nil, nil) when the document has no version header and an
// *pumlicons.UnsupportedVersionError when the header names an unknown
// version; in both cases the document must be left untouched. Lines before
// the header are passed through unchanged.
func (e *Engine) RewriteDocument(lines []string) (*Result, error) {
	state := scanningForHeader
	var (
		define   string
		versions []string
		result   = &Result{Lines: make([]string, len(lines))}
	)

	for i, line := range lines {
		out, changed := line, false

		switch state {
		case scanningForHeader:
			if !strings.HasPrefix(line, "!define ") {
				break
			}
			loc := e.headerPattern.FindStringSubmatchIndex(line)
			if loc == nil {
				break
			}
			define = line[loc[2]:loc[3]]
			declared := line[loc[4]:loc[5]]

			var err error
			versions, err = e.VersionsFrom(declared)
			if err != nil {
				return nil, err
			}
			result.Define = define
			result.DeclaredVersion = declared
			out = line[:loc[4]] + e.Latest() + line[loc[5]:]
			changed = out != line
			state = upgrading

		case upgrading:
			if _, ok := e.ParseInclude(line, define); ok {
				out, changed = e.RewriteInclude(line, define, versions)
			} else {
				out, changed = e.RewriteLine(line, versions)
			}
		}

		result.Lines[i] = out
		if changed {
			result.Changes = append(result.Changes, LineChange{Number: i + 1, Before: line, After: out})
		}
	}

	if state == scanningForHeader {
		return nil, nil
	}
	return result, nil
}

// SplitLines splits text after each "\n", keeping terminators, so that
// joining the parts reproduces the input exactly.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
