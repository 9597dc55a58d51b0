package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pumlicons/internal/build"
	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/logging"
	"github.com/vvka-141/pumlicons/internal/report"
	"github.com/vvka-141/pumlicons/internal/tui"
	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// Rasterizer choices of --rasterizer.
const (
	rasterizerBatik  = "batik"
	rasterizerNative = "native"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the icon libraries and companion files",
	Long: `Build resolves every icon of the release against the curated config and
writes the PlantUML libraries to the dist directory:

1. Scans the source directory with the release rules
2. Resolves names, categories, colors and group settings
3. Renders images and sprites (Batik or the native rasterizer, PlantUML)
4. Writes <dist>/<Category>/<Icon>.puml and <dist>/<Category>/all.puml
5. Writes the symbol sheet, Structurizr theme, Mermaid pack and catalog

Resolution problems that have a fallback are collected and summarised at
the end. Fatal errors abort before anything is written.

Examples:
  # Full build with the Batik rasterizer
  pumlicons build

  # No Batik needed, SVGs are rendered in-process
  pumlicons build --rasterizer native

  # Only regenerate AWSSymbols.md
  pumlicons build --symbols-only`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

type buildFlagValues struct {
	symbolsOnly bool
	rasterizer  string
	workers     int
}

var buildFlags buildFlagValues

// newTools creates the external tools of a build. Replaced in tests.
var newTools = defaultTools

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildFlags.symbolsOnly, "symbols-only", false,
		"Only write the Markdown symbol sheet; no images, sprites or dist files")
	buildCmd.Flags().StringVar(&buildFlags.rasterizer, "rasterizer", rasterizerBatik,
		"SVG rasterizer: batik (Java jar) or native (in-process)")
	buildCmd.Flags().IntVar(&buildFlags.workers, "workers", 0,
		"Icons processed concurrently (default: number of CPUs)")
}

func defaultTools(s config.Settings, rasterizer string) (build.Rasterizer, build.SpriteEncoder, error) {
	encoder := build.NewPlantUMLEncoder(s.Java, s.PlantUMLJar)
	switch rasterizer {
	case rasterizerBatik:
		return build.NewBatikRasterizer(s.Java, s.RasterizerJar), encoder, nil
	case rasterizerNative:
		return build.NewNativeRasterizer(), encoder, nil
	default:
		return nil, nil, fmt.Errorf("invalid argument %q for --rasterizer: want %s or %s", rasterizer, rasterizerBatik, rasterizerNative)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := logging.NewConsoleLogger(rootFlags.verbose)
	return buildRelease(cmd.Context(), filesystem.NewOSFileSystem(), settings, buildFlags, logger, tui.NewPrinter(os.Stderr))
}

func buildRelease(ctx context.Context, fs filesystem.FileSystemProvider, s config.Settings, flags buildFlagValues, logger pumlicons.Logger, printer *tui.Printer) error {
	res, err := resolveRelease(ctx, fs, s, logger)
	if err != nil {
		return err
	}
	records := res.result.Records

	writer := report.NewWriter(fs, logger, report.WriterOptions{
		DistDir:     s.DistDir,
		SymbolsFile: s.SymbolsFile,
		Release:     res.release,
	})

	if flags.symbolsOnly {
		if err := writer.WriteSymbols(records); err != nil {
			return err
		}
		printer.Success("Wrote %s", s.SymbolsFile)
		printer.Warnings(res.result.Warnings)
		return nil
	}

	rasterizer, encoder, err := newTools(s, flags.rasterizer)
	if err != nil {
		return err
	}
	svc := build.NewService(fs, rasterizer, encoder, logger, build.Options{
		SourceDir: s.SourceDir,
		DistDir:   s.DistDir,
		Workers:   flags.workers,
	})

	progress := logging.NewProgress(logger)
	summary, err := svc.Run(ctx, records)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	progress.Done(fmt.Sprintf("Built %d icons in %d categories (%d without image)", summary.Icons, len(summary.Categories), summary.Skipped))

	printer.Success("Release %s written to %s", res.release, s.DistDir)
	printer.Warnings(res.result.Warnings)
	return nil
}
