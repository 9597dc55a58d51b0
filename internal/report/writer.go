package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Output file names inside the dist directory.
const (
	StructurizrFileName = "aws-icons-structurizr-theme.json"
	MermaidFileName     = "aws-icons-mermaid.json"
	CatalogFileName     = "aws-icons-catalog.json"
)

// Release identifies the vendor release a build was made from.
type Release struct {
	Version string
	Date    time.Time
}

// String formats the release as "19.0-2024.06.07".
func (r Release) String() string {
	return r.Version + "-" + r.Date.Format("2006.01.02")
}

// WriterOptions locate the report files.
type WriterOptions struct {
	DistDir     string
	SymbolsFile string
	Release     Release
}

// Writer renders all reports and writes them through a filesystem provider.
type Writer struct {
	fs     filesystem.FileSystemProvider
	logger pumlicons.Logger
	opts   WriterOptions
}

// NewWriter creates a Writer. Panics on nil dependencies.
func NewWriter(fs filesystem.FileSystemProvider, logger pumlicons.Logger, opts WriterOptions) *Writer {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Writer{fs: fs, logger: logger, opts: opts}
}

// WriteAll writes the symbol sheet, the Structurizr theme, the Mermaid pack
// and the catalog. Icons whose SVG cannot be read are left out of the
// Mermaid pack with a warning.
func (w *Writer) WriteAll(records []pumlicons.IconRecord) error {
	if err := w.WriteSymbols(records); err != nil {
		return err
	}
	if err := w.writeJSON(StructurizrFileName, Structurizr(records)); err != nil {
		return err
	}
	if err := w.writeJSON(MermaidFileName, w.Mermaid(records)); err != nil {
		return err
	}
	return w.writeJSON(CatalogFileName, NewCatalog(w.opts.Release.String(), records))
}

// WriteSymbols writes only the Markdown symbol sheet.
func (w *Writer) WriteSymbols(records []pumlicons.IconRecord) error {
	symbols, err := Symbols(records)
	if err != nil {
		return err
	}
	if err := w.fs.WriteFile(w.opts.SymbolsFile, []byte(symbols)); err != nil {
		return fmt.Errorf("write %s: %w", w.opts.SymbolsFile, err)
	}
	return nil
}

// Mermaid builds the icon pack from the SVG siblings of the sources.
func (w *Writer) Mermaid(records []pumlicons.IconRecord) *MermaidPack {
	pack := NewMermaidPack(w.opts.Release.Version, w.opts.Release.Date)
	for _, rec := range SortRecords(records) {
		if rec.Category == pumlicons.CategoryUncategorized {
			continue
		}
		w.addMermaid(pack, rec, rec.SourcePath, rec.SecondaryIdentifier)
		if rec.HasDarkVariant() {
			w.addMermaid(pack, rec, rec.DarkVariantPath, rec.SecondaryIdentifier+"-dark")
		}
	}
	return pack
}

func (w *Writer) addMermaid(pack *MermaidPack, rec pumlicons.IconRecord, source, name string) {
	svgPath, ok := MermaidSourcePath(source)
	if !ok {
		return
	}
	svg, err := w.fs.ReadFile(svgPath)
	if err == nil {
		err = pack.Add(rec.Category, name, svg)
	}
	if err != nil {
		w.logger.Warn("cannot add %s to %s: %v", name, MermaidFileName, err)
	}
}

func (w *Writer) writeJSON(name string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	p := path.Join(w.opts.DistDir, name)
	if err := w.fs.WriteFile(p, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}
