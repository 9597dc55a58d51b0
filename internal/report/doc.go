// Package report renders the companion files of a build: the Markdown symbol
// sheet, the Structurizr theme, the Mermaid icon pack, the icon catalog and
// the curated config template.
//
// Renderers are pure functions of the resolved records. Writer puts their
// output in place through a filesystem provider.
package report
