package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpage/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docpage",
	Short: "Render and serve Markdown documentation pages",
	Long: `docpage renders Markdown documents into interactive documentation
pages: syntax-highlighted code blocks with copy buttons, linkable headings
and a scroll-synced table of contents. Pages can be served live or built
into a static snapshot.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
