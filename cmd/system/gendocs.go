package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func NewGenDocsCommand() *cobra.Command {
	var (
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Write reference docs for every glowgrind command",
		Long: `Write reference docs for every glowgrind command.

Markdown goes to ./docs/cli by default. Use --format man for man pages
or --format yaml for machine-readable output.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := filepath.Abs(outDir)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", outDir, err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %q: %w", dir, err)
			}

			root := cmd.Root()
			root.DisableAutoGenTag = true

			switch format {
			case "markdown", "md":
				err = doc.GenMarkdownTree(root, dir)
			case "man":
				err = doc.GenManTree(root, &doc.GenManHeader{Title: "GLOWGRIND", Section: "1"}, dir)
			case "yaml":
				err = doc.GenYamlTree(root, dir)
			default:
				return fmt.Errorf("unknown format %q (want markdown, man or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("generate %s docs: %w", format, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s docs written to %s\n", format, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "docs/cli", "directory to write docs into")
	cmd.Flags().StringVar(&format, "format", "markdown", "markdown, man or yaml")

	return cmd
}
