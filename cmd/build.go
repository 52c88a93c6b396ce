package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpage/internal/progress"
	"github.com/ziadkadry99/docpage/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a static snapshot of the documentation site",
	Long:  `Renders every document in docs_dir into a static site under output_dir. Snapshot pages have no live interaction session; their page script copies snippets, follows deep links and tracks the active section on its own.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DocsDir); os.IsNotExist(err) {
		return fmt.Errorf("docs directory not found at %s", cfg.DocsDir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	generator := site.NewGenerator(newPipeline(cfg, logger), newLibrary(cfg), outputDir, cfg.BasePath, progress.NewReporter(), logger)
	generator.CopyWindow = cfg.Interact.CopyReset
	generator.DeepLinkDelay = cfg.Interact.DeepLinkDelay
	pageCount, err := generator.Generate(cmd.Context())
	if err != nil {
		if pageCount == 0 {
			return fmt.Errorf("generating site: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Some pages failed to render:\n%v\n", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
