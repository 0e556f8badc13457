package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docfind",
	Short: "Index and search a Markdown Q&A knowledge base",
	Long: `Docfind ingests a folder tree of Markdown Q&A documents, builds an
inverted index, and answers ranked keyword queries. It can also serve
the index over HTTP, expose it to AI agents via MCP, and render the
corpus as a static site.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docfind.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
