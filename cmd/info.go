// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"issue-wordmap/internal/formatters"
	"issue-wordmap/internal/version"
)

func newProfilesCmd(globals *globalFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configuration profiles",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, cfg, err := loadSettings(globals, c.ErrOrStderr())
			if err != nil {
				return err
			}

			profiles := cfg.ListProfiles()
			if len(profiles) == 0 {
				fmt.Fprintln(stdout, "No profiles defined in configuration file.")
				return nil
			}
			fmt.Fprintln(stdout, "Available profiles:")
			for _, name := range profiles {
				profile := cfg.GetProfile(name)
				if profile != nil && profile.Description != "" {
					fmt.Fprintf(stdout, "  - %s: %s\n", name, profile.Description)
				} else {
					fmt.Fprintf(stdout, "  - %s\n", name)
				}
			}
			return nil
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			if all {
				fmt.Fprintln(stdout, version.Info())
				return
			}
			fmt.Fprintln(stdout, version.Short())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Print all version information")
	return cmd
}

func newFormatsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List console output formats",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(stdout, "Available formats:")
			for _, info := range formatters.GetSupportedFormats() {
				fmt.Fprintf(stdout, "  %-6s %-20s %s\n", info.Name, info.MimeType, info.Description)
			}
		},
	}
}
