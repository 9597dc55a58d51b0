package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pumlicons/internal/config"
	"github.com/vvka-141/pumlicons/internal/palette"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Print the category color map for AWSCommon.puml",
	Long: `Colors prints the PlantUML assignment of the category color map:

  !$AWS_CATEGORY_COLORS = {
    "analytics": "#8C4FFF",
    ...
  }

Categories are taken from the curated config. Every category except Groups,
GroupIcons and Uncategorized must have a palette color.`,
	Args: cobra.NoArgs,
	RunE: runColors,
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}

func runColors(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	return printColors(cmd.OutOrStdout(), settings)
}

func printColors(out io.Writer, s config.Settings) error {
	curated, err := config.LoadCurated(s.ConfigPath)
	if err != nil {
		return err
	}
	line, err := palette.CategoryColorJSON(curated.CategoryNames())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, line)
	return err
}
