package build

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/retry"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Options configure a build run.
type Options struct {
	// SourceDir holds the hand-written library files (source/*.puml).
	SourceDir string

	// DistDir is removed and recreated by every run.
	DistDir string

	// Workers bounds the number of icons processed at once (default: CPUs).
	Workers int

	// ImageSize is the sprite edge length in pixels (default 64), also used
	// for records without a target size.
	ImageSize int
}

// Summary reports what a run produced.
type Summary struct {
	Icons      int
	Skipped    int
	Categories []string
}

// Service renders icon records into the dist directory.
// Safe for sequential Run calls; a single Run is internally concurrent.
type Service struct {
	fs         filesystem.FileSystemProvider
	rasterizer Rasterizer
	encoder    SpriteEncoder
	logger     pumlicons.Logger
	executor   *retry.Executor
	opts       Options
}

// NewService creates a build service. Panics on nil dependencies.
func NewService(fs filesystem.FileSystemProvider, rasterizer Rasterizer, encoder SpriteEncoder, logger pumlicons.Logger, opts Options) *Service {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if rasterizer == nil {
		panic("rasterizer cannot be nil")
	}
	if encoder == nil {
		panic("encoder cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ImageSize <= 0 {
		opts.ImageSize = pumlicons.DefaultTargetSize
	}

	s := &Service{fs: fs, rasterizer: rasterizer, encoder: encoder, logger: logger, opts: opts}
	s.executor = retry.Default().WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Warn("retrying in %s (attempt %d): %v", delay.Round(time.Millisecond), attempt+1, err)
	})
	return s
}

// WithExecutor returns a copy of s using executor for external tool calls.
func (s *Service) WithExecutor(executor *retry.Executor) *Service {
	clone := *s
	clone.executor = executor
	return &clone
}

// Buildable returns the records that produce artifacts, i.e. everything
// except Uncategorized icons.
func Buildable(records []pumlicons.IconRecord) []pumlicons.IconRecord {
	out := make([]pumlicons.IconRecord, 0, len(records))
	for _, rec := range records {
		if rec.Category != pumlicons.CategoryUncategorized {
			out = append(out, rec)
		}
	}
	return out
}

// Categories returns the sorted, distinct categories of records.
func Categories(records []pumlicons.IconRecord) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, rec := range records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			categories = append(categories, rec.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Run cleans the dist directory, copies the library files and renders every
// buildable record. The first icon failure cancels the remaining work.
func (s *Service) Run(ctx context.Context, records []pumlicons.IconRecord) (*Summary, error) {
	icons := Buildable(records)
	for _, rec := range records {
		if rec.Category == pumlicons.CategoryUncategorized {
			s.logger.Verbose("skipping Uncategorized %s", rec.SourceFilename)
		}
	}
	categories := Categories(icons)

	if err := s.prepareDist(categories); err != nil {
		return nil, err
	}

	var skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, rec := range icons {
		g.Go(func() error {
			if rec.SkipVisualAsset {
				skipped.Add(1)
			}
			if err := s.buildIcon(gctx, rec); err != nil {
				return fmt.Errorf("%s/%s (%s): %w", rec.Category, rec.Identifier, rec.SourcePath, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, category := range categories {
		if err := s.aggregate(category); err != nil {
			return nil, err
		}
	}

	return &Summary{Icons: len(icons), Skipped: int(skipped.Load()), Categories: categories}, nil
}

func (s *Service) prepareDist(categories []string) error {
	if err := s.fs.RemoveAll(s.opts.DistDir); err != nil {
		return fmt.Errorf("clean %s: %w", s.opts.DistDir, err)
	}
	if err := s.fs.MkdirAll(s.opts.DistDir); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(s.opts.SourceDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.opts.SourceDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".puml" {
			continue
		}
		data, err := s.fs.ReadFile(path.Join(s.opts.SourceDir, entry.Name()))
		if err != nil {
			return err
		}
		if err := s.fs.WriteFile(path.Join(s.opts.DistDir, entry.Name()), data); err != nil {
			return err
		}
	}

	for _, category := range categories {
		if err := s.fs.MkdirAll(path.Join(s.opts.DistDir, category)); err != nil {
			return err
		}
	}
	return nil
}

// buildIcon renders an opaque image for the sprite at the image size, then
// the final images at the record's target size, then the .puml file.
func (s *Service) buildIcon(ctx context.Context, rec pumlicons.IconRecord) error {
	dir := path.Join(s.opts.DistDir, rec.Category)
	if rec.SkipVisualAsset {
		s.logger.Verbose("skipping icon for %s", rec.SourceFilename)
		return s.fs.WriteFile(path.Join(dir, rec.Identifier+".puml"), []byte(RenderPuml(rec, "", Images{})))
	}

	opaque, err := s.render(ctx, rec, rec.SourcePath, s.opts.ImageSize, SVGOptions{Color: rec.Color, Gradient: true})
	if err != nil {
		return err
	}

	sprite, err := retry.Value(ctx, s.executor, func(ctx context.Context) (string, error) {
		return s.encoder.Encode(ctx, rec.Identifier, opaque)
	})
	if err != nil {
		return fmt.Errorf("encode sprite: %w", err)
	}

	final := SVGOptions{Color: rec.Color, Transparent: rec.Transparent}
	var images Images
	size := rec.TargetSize
	if size <= 0 {
		size = s.opts.ImageSize
	}
	if images.Light, err = s.render(ctx, rec, rec.SourcePath, size, final); err != nil {
		return err
	}
	if err := s.fs.WriteFile(path.Join(dir, rec.Identifier+".png"), images.Light); err != nil {
		return err
	}
	if rec.HasDarkVariant() {
		if images.Dark, err = s.render(ctx, rec, rec.DarkVariantPath, size, final); err != nil {
			return fmt.Errorf("dark variant: %w", err)
		}
		if err := s.fs.WriteFile(path.Join(dir, rec.Identifier+"_Dark.png"), images.Dark); err != nil {
			return err
		}
	}

	s.logger.Verbose("generating PUML for %s", rec.SourceFilename)
	return s.fs.WriteFile(path.Join(dir, rec.Identifier+".puml"), []byte(RenderPuml(rec, sprite, images)))
}

// render produces the PNG for one source file. PNG sources are used as is,
// except category tiles which are cropped and framed.
func (s *Service) render(ctx context.Context, rec pumlicons.IconRecord, source string, size int, opts SVGOptions) ([]byte, error) {
	data, err := s.fs.ReadFile(source)
	if err != nil {
		return nil, err
	}

	if pumlicons.KindFromName(source) == pumlicons.FileKindPNG {
		if strings.HasPrefix(rec.SourceFilename, "Arch-Category") {
			return CropCategoryImage(data)
		}
		return data, nil
	}

	svg := PrepareSVG(data, opts)
	png, err := retry.Value(ctx, s.executor, func(ctx context.Context) ([]byte, error) {
		return s.rasterizer.Rasterize(ctx, svg, size)
	})
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", source, err)
	}
	return png, nil
}

func (s *Service) aggregate(category string) error {
	dir := path.Join(s.opts.DistDir, category)
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return err
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".puml" {
			continue
		}
		data, err := s.fs.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		files[entry.Name()] = string(data)
	}
	return s.fs.WriteFile(path.Join(dir, AggregateFileName), []byte(Aggregate(files)))
}
