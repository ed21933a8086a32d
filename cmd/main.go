// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"issue-wordmap/internal/config"
	_ "issue-wordmap/internal/formatters/csv"
	_ "issue-wordmap/internal/formatters/json"
	_ "issue-wordmap/internal/formatters/table"
	_ "issue-wordmap/internal/formatters/text"
	_ "issue-wordmap/internal/formatters/yaml"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configFile string
	profile    string
	envFile    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	globals := &globalFlags{}

	root := &cobra.Command{
		Use:   "wordmap",
		Short: "Keyword frequency word maps from issue-tracker exports",
		Long: `wordmap reads a JSON export of issues, extracts the "### Description"
section of every issue body, counts its keywords and writes a word map image
plus a Keyword,Frequency CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&globals.configFile, "config", "c", "", "Configuration file (default: wordmap.yaml or the user config dir)")
	root.PersistentFlags().StringVarP(&globals.profile, "profile", "p", "", "Configuration profile to apply")
	root.PersistentFlags().StringVar(&globals.envFile, "env-file", ".env", "Dotenv file with WORDMAP_* overrides")

	generate := newGenerateCmd(globals, stdout, stderr)
	root.AddCommand(
		generate,
		newSectionsCmd(globals, stdout, stderr),
		newProfilesCmd(globals, stdout),
		newFormatsCmd(stdout),
		newVersionCmd(stdout),
	)

	// "wordmap [input]" is shorthand for "wordmap generate [input]"
	root.Args = generate.Args
	root.Flags().AddFlagSet(generate.Flags())
	root.RunE = generate.RunE

	return root
}

// loadSettings resolves defaults < config file < profile < environment.
// Command-line flags are applied by the caller.
func loadSettings(globals *globalFlags, stderr io.Writer) (config.Settings, *config.Config, error) {
	configPath := globals.configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if globals.configFile != "" {
			return config.Settings{}, nil, err
		}
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}

	settings, err := cfg.Resolve(globals.profile)
	if err != nil {
		return config.Settings{}, nil, err
	}

	if err := config.ApplyEnv(&settings, globals.envFile); err != nil {
		return config.Settings{}, nil, err
	}
	return settings, cfg, nil
}

// configureColor disables color when asked to or when w is not a terminal
func configureColor(noColor bool, w io.Writer) {
	if noColor {
		color.NoColor = true
		return
	}
	f, ok := w.(*os.File)
	color.NoColor = !ok || !isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
