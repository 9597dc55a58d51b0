// Package upgrade rewrites diagrams written against an older release of the
// icon library so they reference the current release.
//
// An Engine replays the recorded change history (category renames, icon moves
// between categories, icon replacements and removals) from the version a
// document declares in its `!define ... /<version>/dist` header up to the
// latest version. Include directives are rewritten structurally; other lines
// have icon names and legacy color macros substituted in place. Removed
// references are commented out rather than deleted, so line numbers survive.
package upgrade
