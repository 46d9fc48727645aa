// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quillpress",
	Short: "QuillPress is a self-hosted content-management backend for blogs",
	Long: `QuillPress is a self-hosted content-management backend for blogs
that serves a public blog, a JSON content API and an admin dashboard
for managing posts, pages, themes, settings and media.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
