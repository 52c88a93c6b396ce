package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpage/internal/content"
	"github.com/ziadkadry99/docpage/internal/render"
)

var renderTOC bool

var renderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Render one document to stdout",
	Long:  `Renders the document with the given slug and prints the resulting page markup. With --toc, prints the table of contents instead.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		slug, err := content.CleanSlug(args[0])
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		page := newPipeline(cfg, logger).Mount(cmd.Context(), render.Request{Slug: slug})
		if !page.OK() {
			return fmt.Errorf("%s: %s", slug, page.Failure.Message())
		}

		out := cmd.OutOrStdout()
		if renderTOC {
			if len(page.TOC) == 0 {
				fmt.Fprintf(os.Stderr, "%s has fewer than %d h2/h3 headings; no table of contents\n", slug, cfg.TOC.MinHeadings)
			}
			for _, e := range page.TOC {
				indent := strings.Repeat("  ", e.Level-2)
				fmt.Fprintf(out, "%s- %s (#%s)\n", indent, e.Label, e.ID)
			}
			return nil
		}
		fmt.Fprintln(out, page.HTML)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderTOC, "toc", false, "print the table of contents instead of the page")
	rootCmd.AddCommand(renderCmd)
}
