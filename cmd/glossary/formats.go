package main

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/JuniperGlossary/core/plugins"
	"github.com/FocuswithJustin/JuniperGlossary/internal/formats"
)

// FormatsCmd lists the registered readers and writers.
type FormatsCmd struct {
	Options bool `help:"Show writer options, tools and notes"`
}

func (c *FormatsCmd) Run() error {
	var rows [][]string
	for _, f := range plugins.List() {
		rows = append(rows, []string{
			f.Lname, f.Description, f.ExtensionCreate, string(f.Kind),
		})
	}
	fmt.Fprintln(stdout, "Writers:")
	fmt.Fprintln(stdout, renderTable([]string{"Name", "Description", "Extension", "Kind"}, rows, nil))

	rows = rows[:0]
	for _, h := range formats.List() {
		rows = append(rows, []string{h.Name, h.Description, strings.Join(h.Extensions, " ")})
	}
	fmt.Fprintln(stdout, "\nReaders:")
	fmt.Fprintln(stdout, renderTable([]string{"Name", "Description", "Extensions"}, rows, nil))
	fmt.Fprintln(stdout, "Readers also accept .xz and .gz compressed inputs.")

	if !c.Options {
		return nil
	}
	for _, f := range plugins.List() {
		printFormatDetails(f)
	}
	return nil
}

func printFormatDetails(f *plugins.Format) {
	fmt.Fprintf(stdout, "\n%s (%s)\n", f.Name, f.Lname)
	if f.Wiki != "" {
		fmt.Fprintf(stdout, "Wiki: %s\n", f.Wiki)
	}

	if len(f.Options) > 0 {
		var rows [][]string
		for _, o := range f.Options {
			status := ""
			if o.Disabled {
				status = "disabled"
			}
			rows = append(rows, []string{o.Name, o.Type.String(), status, o.Comment})
		}
		fmt.Fprintln(stdout, renderTable([]string{"Option", "Type", "Status", "Comment"}, rows, nil))
	}

	if len(f.Tools) > 0 {
		var rows [][]string
		for _, t := range f.Tools {
			rows = append(rows, []string{t.Name, strings.Join(t.Platforms, ", "), t.License, t.Web})
		}
		fmt.Fprintln(stdout, renderTable([]string{"Tool", "Platforms", "License", "Website"}, rows, nil))
	}

	for _, d := range f.ExtraDocs {
		fmt.Fprintf(stdout, "%s: %s\n", d.Title, d.Body)
	}
}
