package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dombili",
		Short: "Query and rewrite HTML documents",
		Long: `Dombili is a command line companion for the dombili library.

It loads an HTML document from a file, URL, S3 object, or stdin,
runs CSS selector queries against it, applies mutations, and
prints the result. It can also run the document inspection server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		queryCmd(),
		rewriteCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
