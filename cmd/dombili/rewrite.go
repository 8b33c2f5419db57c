package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdullah/dombili"
)

func rewriteCmd() *cobra.Command {
	var (
		removes  []string
		setAttrs []string
		setDatas []string
		setHTMLs []string
		appends  []string
		prepends []string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "rewrite [ref]",
		Short: "Apply mutations to a document and print the result",
		Long: `Load an HTML document, apply the given mutations in flag order
per group, and print the rewritten document.

Mutations that take a value use "selector:rest" syntax, where rest is
"name=value" for attributes and raw markup for HTML fragments.

Examples:
  dombili rewrite page.html --remove ".ad" --remove "script"
  dombili rewrite page.html --set-attr "a:rel=nofollow"
  dombili rewrite page.html --set-data "#app:state=ready"
  dombili rewrite page.html --append "ul#nav:<li>extra</li>" --out clean.html
  curl -s https://example.com | dombili rewrite --set-html "#banner:<p>hi</p>"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := "-"
			if len(args) == 1 {
				ref = args[0]
			}
			return runRewrite(cmd, ref, rewriteFlags{
				removes:  removes,
				setAttrs: setAttrs,
				setDatas: setDatas,
				setHTMLs: setHTMLs,
				appends:  appends,
				prepends: prepends,
				out:      out,
			})
		},
	}

	cmd.Flags().StringArrayVar(&removes, "remove", nil, "Remove all nodes matching selector (repeatable)")
	cmd.Flags().StringArrayVar(&setAttrs, "set-attr", nil, `Set an attribute, "selector:name=value" (repeatable)`)
	cmd.Flags().StringArrayVar(&setDatas, "set-data", nil, `Set a data- attribute, "selector:name=value" (repeatable)`)
	cmd.Flags().StringArrayVar(&setHTMLs, "set-html", nil, `Replace inner HTML, "selector:markup" (repeatable)`)
	cmd.Flags().StringArrayVar(&appends, "append", nil, `Append parsed markup, "selector:markup" (repeatable)`)
	cmd.Flags().StringArrayVar(&prepends, "prepend", nil, `Prepend parsed markup, "selector:markup" (repeatable)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the result to a file instead of stdout")

	return cmd
}

type rewriteFlags struct {
	removes  []string
	setAttrs []string
	setDatas []string
	setHTMLs []string
	appends  []string
	prepends []string
	out      string
}

func runRewrite(cmd *cobra.Command, ref string, flags rewriteFlags) error {
	doc, err := loadDocument(cmd, ref)
	if err != nil {
		return err
	}

	for _, sel := range flags.removes {
		for _, n := range doc.SelectAll(sel) {
			dombili.Remove(n)
		}
	}
	for _, spec := range flags.setAttrs {
		sel, name, value, err := splitAttrSpec(spec)
		if err != nil {
			return fmt.Errorf("--set-attr %q: %w", spec, err)
		}
		for _, n := range doc.SelectAll(sel) {
			dombili.SetAttribute(n, name, value)
		}
	}
	for _, spec := range flags.setDatas {
		sel, name, value, err := splitAttrSpec(spec)
		if err != nil {
			return fmt.Errorf("--set-data %q: %w", spec, err)
		}
		for _, n := range doc.SelectAll(sel) {
			dombili.SetDataAttribute(n, name, value)
		}
	}
	for _, spec := range flags.setHTMLs {
		sel, markup, err := splitMarkupSpec(spec)
		if err != nil {
			return fmt.Errorf("--set-html %q: %w", spec, err)
		}
		for _, n := range doc.SelectAll(sel) {
			dombili.SetInnerHTML(n, markup)
		}
	}
	for _, spec := range flags.appends {
		sel, markup, err := splitMarkupSpec(spec)
		if err != nil {
			return fmt.Errorf("--append %q: %w", spec, err)
		}
		for _, n := range doc.SelectAll(sel) {
			insertMarkup(doc, n, markup, false)
		}
	}
	for _, spec := range flags.prepends {
		sel, markup, err := splitMarkupSpec(spec)
		if err != nil {
			return fmt.Errorf("--prepend %q: %w", spec, err)
		}
		for _, n := range doc.SelectAll(sel) {
			insertMarkup(doc, n, markup, true)
		}
	}

	w := cmd.OutOrStdout()
	if flags.out != "" {
		f, err := os.Create(flags.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return dombili.Render(w, doc.Root())
}

// insertMarkup parses markup in a scratch element and moves the parsed
// nodes into target, keeping their order.
func insertMarkup(doc *dombili.Document, target dombili.Node, markup string, prepend bool) {
	scratch := doc.CreateElement("div", markup)
	if scratch == nil {
		return
	}
	ref := target.FirstChild()
	for c := scratch.FirstChild(); c != nil; c = scratch.FirstChild() {
		if prepend && ref != nil {
			doc.InsertBefore(c, ref)
		} else {
			doc.Append(c, target)
		}
	}
}

// splitAttrSpec parses "selector:name=value".
func splitAttrSpec(spec string) (sel, name, value string, err error) {
	sel, rest, ok := strings.Cut(spec, ":")
	if !ok || sel == "" {
		return "", "", "", fmt.Errorf("want \"selector:name=value\"")
	}
	name, value, ok = strings.Cut(rest, "=")
	if !ok || name == "" {
		return "", "", "", fmt.Errorf("want \"selector:name=value\"")
	}
	return sel, name, value, nil
}

// splitMarkupSpec parses "selector:markup".
func splitMarkupSpec(spec string) (sel, markup string, err error) {
	sel, markup, ok := strings.Cut(spec, ":")
	if !ok || sel == "" {
		return "", "", fmt.Errorf("want \"selector:markup\"")
	}
	return sel, markup, nil
}
