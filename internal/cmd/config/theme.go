package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/workorders/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the workorders TUI.

tui.theme takes either a built-in theme name or a path to a YAML theme
file. Use 'theme export' to start a custom theme from a built-in one.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a built-in theme to YAML",
	Long: `Export a built-in theme to YAML as a starting point for a custom theme.

If no output file is specified, the YAML is printed to stdout.

Examples:
  workorders config theme export nord
  workorders config theme export dracula ~/my-theme.yaml
  workorders config set tui.theme ~/my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name-or-file>",
	Short: "Show the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.ThemeNames() {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Any path to a YAML theme file is accepted as well.")
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsBuiltinTheme(themeName) {
		return fmt.Errorf("unknown theme: %s\n\nRun 'workorders config theme list' to see available themes", themeName)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(out, "Theme exported to: %s\n", outputPath)
		return nil
	}

	fmt.Fprint(out, string(data))
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	theme := args[0]
	palette, err := styles.ResolvePalette(theme)
	if err != nil {
		return fmt.Errorf("theme '%s' could not be loaded: %w", theme, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n", theme)
	if styles.IsBuiltinTheme(theme) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: File")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", palette.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", palette.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", palette.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", palette.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", palette.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", palette.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", palette.Text)
	fmt.Fprintf(out, "  Border:    %s\n", palette.Border)
	fmt.Fprintf(out, "  Link:      %s\n", palette.Link)
	return nil
}
