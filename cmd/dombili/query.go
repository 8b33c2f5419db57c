package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdullah/dombili"
	"github.com/abdullah/dombili/pkg/source"
)

func queryCmd() *cobra.Command {
	var (
		text  bool
		attr  string
		count bool
		first bool
	)

	cmd := &cobra.Command{
		Use:   "query <selector> [ref]",
		Short: "Run a CSS selector against a document",
		Long: `Run a CSS selector against an HTML document and print the matches.

The document reference may be a file path, an http(s) URL, an
s3://bucket/key object, or "-" for stdin (the default).

Examples:
  dombili query "a[href]" page.html
  dombili query ".price" https://example.com/catalog
  curl -s https://example.com | dombili query "h1" --text
  dombili query "#main" s3://snapshots/page.html --attr class`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := "-"
			if len(args) == 2 {
				ref = args[1]
			}
			return runQuery(cmd, args[0], ref, text, attr, count, first)
		},
	}

	cmd.Flags().BoolVarP(&text, "text", "t", false, "Print text content instead of outer HTML")
	cmd.Flags().StringVarP(&attr, "attr", "a", "", "Print the named attribute of each match")
	cmd.Flags().BoolVarP(&count, "count", "c", false, "Print only the number of matches")
	cmd.Flags().BoolVarP(&first, "first", "1", false, "Stop after the first match")

	return cmd
}

func runQuery(cmd *cobra.Command, selector, ref string, text bool, attr string, count, first bool) error {
	doc, err := loadDocument(cmd, ref)
	if err != nil {
		return err
	}

	matches := doc.SelectAll(selector)
	if matches == nil {
		return fmt.Errorf("query %q: document does not support selection", selector)
	}
	if first && len(matches) > 1 {
		matches = matches[:1]
	}

	out := cmd.OutOrStdout()
	if count {
		fmt.Fprintln(out, len(matches))
		return nil
	}

	for _, n := range matches {
		switch {
		case attr != "":
			if v, ok := dombili.GetAttribute(n, attr); ok {
				fmt.Fprintln(out, v)
			}
		case text:
			fmt.Fprintln(out, dombili.Text(n))
		default:
			fmt.Fprintln(out, dombili.OuterHTML(n))
		}
	}
	return nil
}

// loadDocument resolves ref, fetches it, and parses it into a document
// façade.
func loadDocument(cmd *cobra.Command, ref string) (*dombili.Document, error) {
	src, err := source.Resolve(ref)
	if err != nil {
		return nil, err
	}

	rc, err := src.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	defer rc.Close()

	doc, err := dombili.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name(), err)
	}
	return doc, nil
}
