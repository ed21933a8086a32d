// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"issue-wordmap/internal/core"
	"issue-wordmap/internal/issues"
)

func newSectionsCmd(globals *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		repairJSON bool
		noColor    bool
		top        int
	)

	cmd := &cobra.Command{
		Use:   "sections [input.json]",
		Short: "List the markdown headings found in issue bodies and how many issues use each",
		Long: `sections surveys the issue bodies of a collection and counts, per heading,
how many issues contain it. Use it to pick a value for --heading.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			settings, _, err := loadSettings(globals, stderr)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				settings.Input = args[0]
			}
			if c.Flags().Changed("repair-json") {
				settings.RepairJSON = repairJSON
			}
			configureColor(noColor || settings.NoColor, stdout)

			docs, err := issues.Load(settings.Input, issues.Options{Repair: settings.RepairJSON})
			if err != nil {
				return err
			}

			survey := core.SurveySections(docs)
			fmt.Fprintf(stdout, "Loaded %d issues\n", len(docs))
			if len(survey) == 0 {
				fmt.Fprintln(stdout, "No headings found.")
				return nil
			}

			heading := color.New(color.FgGreen)
			for i, h := range survey {
				if top > 0 && i >= top {
					break
				}
				fmt.Fprintf(stdout, "%5d  %s\n", h.Documents, heading.Sprint(strings.Repeat("#", h.Level)+" "+h.Title))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&repairJSON, "repair-json", false, "Attempt to repair malformed JSON input")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Show only the most common headings")
	return cmd
}
