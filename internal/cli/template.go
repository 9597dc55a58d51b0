package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/files/filesystem"
	"github.com/vvka-141/pumlicons/internal/report"
	"github.com/vvka-141/pumlicons/internal/tui"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Derive a curated config template from the vendor sources",
	Long: `Template scans the source directory with the release rules and writes a
curated config skeleton with one entry per source file.

Duplicate targets are marked with ZComment/ZComment2 and must be made unique
before the template replaces config.yml. The Groups category is copied from a
maintained block rather than derived.

Examples:
  pumlicons template
  pumlicons template --output /tmp/config-template.yml --rules release-20.0.toml`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

var templateOutput string

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "config-template.yml", "Template file to write")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	return writeTemplate(filesystem.NewOSFileSystem(), settings, templateOutput, tui.NewPrinter(os.Stderr))
}

func writeTemplate(fs filesystem.FileSystemProvider, s config.Settings, output string, printer *tui.Printer) error {
	rs, err := loadRuleSet(s)
	if err != nil {
		return err
	}
	sources, err := discover(fs, s, rs)
	if err != nil {
		return err
	}
	data, err := report.ConfigTemplate(sources)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(output, data); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printer.Success("Wrote %s from %d source files", output, len(sources))
	return nil
}
