// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
)

// docCmd groups the generators for man pages, Markdown and completion.
var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Documentation generator",
	Long:  `Generators for documentation and shell completion.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return os.MkdirAll(viper.GetString("output"), 0755)
	},
}

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages",
	Long:  `Generates a man page for sensorlog and each of its subcommands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "SENSORLOG",
			Section: "1",
		}
		return doc.GenManTree(RootCmd, header, viper.GetString("output"))
	},
}

var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Generate Markdown documentation",
	Long:  `Generates documentation for sensorlog in Markdown format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doc.GenMarkdownTree(RootCmd, viper.GetString("output"))
	},
}

var bashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate Bash autocompletion file",
	Long:  `Writes sensorlog_completions.sh to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RootCmd.GenBashCompletionFile(filepath.Join(viper.GetString("output"), "sensorlog_completions.sh"))
	},
}

func init() {
	RootCmd.AddCommand(docCmd)
	docCmd.AddCommand(manCmd, markdownCmd, bashCmd)

	docCmd.PersistentFlags().String("output", "./", "Output directory")
	viper.BindPFlags(docCmd.PersistentFlags())
}
