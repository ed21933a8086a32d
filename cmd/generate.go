// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"issue-wordmap/internal/config"
	"issue-wordmap/internal/core"
	"issue-wordmap/internal/formatters"
	"issue-wordmap/internal/metrics"
	"issue-wordmap/internal/observability"
	"issue-wordmap/internal/paths"
	"issue-wordmap/internal/wordcloud"
)

// generateFlags holds command line flag values for generate
type generateFlags struct {
	input           string
	outputDir       string
	imageFile       string
	csvFile         string
	pdfFile         string
	metricsFile     string
	format          string
	top             int
	heading         string
	stemmer         string
	workers         int
	width           int
	height          int
	maxWords        int
	minFontSize     int
	relativeScaling float64
	background      string
	title           string
	repairJSON      bool
	noImage         bool
	noCSV           bool
	verbose         bool
	debug           bool
	noColor         bool
}

func newGenerateCmd(globals *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [input.json]",
		Short: "Count Description keywords and write the word map and CSV",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		settings, _, err := loadSettings(globals, stderr)
		if err != nil {
			return err
		}
		applyGenerateFlags(&settings, flags, c.Flags())
		if len(args) == 1 {
			settings.Input = args[0]
		}
		if flags.noImage {
			settings.ImageFile = ""
			settings.PDFFile = ""
		}
		if flags.noCSV {
			settings.CSVFile = ""
		}
		return runGenerate(settings, stdout, stderr)
	}

	defaults := config.DefaultSettings()
	f := cmd.Flags()
	f.StringVarP(&flags.input, "input", "i", defaults.Input, "JSON array of issues to analyze")
	f.StringVarP(&flags.outputDir, "output-dir", "o", defaults.OutputDir, "Directory for relative artifact paths")
	f.StringVar(&flags.imageFile, "image", defaults.ImageFile, "Word map PNG file")
	f.StringVar(&flags.csvFile, "csv", defaults.CSVFile, "Keyword,Frequency CSV file")
	f.StringVar(&flags.pdfFile, "pdf", "", "Also wrap the word map in a PDF at this path")
	f.StringVar(&flags.metricsFile, "metrics", "", "Write Prometheus textfile metrics to this path")
	f.StringVarP(&flags.format, "format", "f", defaults.Format, "Console listing format: text, table, csv, json, yaml")
	f.IntVarP(&flags.top, "top", "n", defaults.Top, "Number of keywords in the console listing")
	f.StringVar(&flags.heading, "heading", defaults.Heading, "Issue-form section to analyze")
	f.StringVar(&flags.stemmer, "stemmer", defaults.Stemmer, "Stemmer for keywords without a canonical form: none, simple, snowball")
	f.IntVar(&flags.workers, "workers", defaults.Workers, "Documents analyzed concurrently; 1 is sequential, 0 picks one per CPU")
	f.IntVar(&flags.width, "width", defaults.Width, "Word map width in pixels")
	f.IntVar(&flags.height, "height", defaults.Height, "Word map height in pixels")
	f.IntVar(&flags.maxWords, "max-words", defaults.MaxWords, "Maximum number of words on the map")
	f.IntVar(&flags.minFontSize, "min-font-size", defaults.MinFontSize, "Smallest font size on the map")
	f.Float64Var(&flags.relativeScaling, "relative-scaling", defaults.RelativeScaling, "How strongly font size follows frequency (0-1)")
	f.StringVar(&flags.background, "background", defaults.Background, "Word map background color")
	f.StringVar(&flags.title, "title", defaults.Title, "Word map title; empty for none")
	f.BoolVar(&flags.repairJSON, "repair-json", false, "Attempt to repair malformed JSON input")
	f.BoolVar(&flags.noImage, "no-image", false, "Skip the word map image (and PDF)")
	f.BoolVar(&flags.noCSV, "no-csv", false, "Skip the CSV export")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Include the run summary in json and yaml output")
	f.BoolVar(&flags.debug, "debug", false, "Trace pipeline steps to stderr")
	f.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// applyGenerateFlags copies explicitly set flags over the resolved settings
func applyGenerateFlags(s *config.Settings, flags *generateFlags, set *pflag.FlagSet) {
	changed := set.Changed

	if changed("input") {
		s.Input = flags.input
	}
	if changed("output-dir") {
		s.OutputDir = flags.outputDir
	}
	if changed("image") {
		s.ImageFile = flags.imageFile
	}
	if changed("csv") {
		s.CSVFile = flags.csvFile
	}
	if changed("pdf") {
		s.PDFFile = flags.pdfFile
	}
	if changed("metrics") {
		s.MetricsFile = flags.metricsFile
	}
	if changed("format") {
		s.Format = flags.format
	}
	if changed("top") {
		s.Top = flags.top
	}
	if changed("heading") {
		s.Heading = flags.heading
	}
	if changed("stemmer") {
		s.Stemmer = flags.stemmer
	}
	if changed("workers") {
		s.Workers = flags.workers
	}
	if changed("width") {
		s.Width = flags.width
	}
	if changed("height") {
		s.Height = flags.height
	}
	if changed("max-words") {
		s.MaxWords = flags.maxWords
	}
	if changed("min-font-size") {
		s.MinFontSize = flags.minFontSize
	}
	if changed("relative-scaling") {
		s.RelativeScaling = flags.relativeScaling
	}
	if changed("background") {
		s.Background = flags.background
	}
	if changed("title") {
		s.Title = flags.title
	}
	if changed("repair-json") {
		s.RepairJSON = flags.repairJSON
	}
	if changed("verbose") {
		s.Verbose = flags.verbose
	}
	if changed("debug") {
		s.Debug = flags.debug
	}
	if changed("no-color") {
		s.NoColor = flags.noColor
	}
}

// wordcloudOptions maps settings onto renderer options
func wordcloudOptions(s config.Settings) wordcloud.Options {
	opts := wordcloud.DefaultOptions()
	opts.Width = s.Width
	opts.Height = s.Height
	opts.MaxWords = s.MaxWords
	opts.MinFontSize = s.MinFontSize
	opts.RelativeScaling = s.RelativeScaling
	opts.Background = s.Background
	opts.Title = s.Title
	return opts
}

// runGenerate performs one analysis run. Status lines go to stdout for the
// human-readable formats and to stderr otherwise, keeping machine output clean.
func runGenerate(s config.Settings, stdout, stderr io.Writer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := formatters.Get(s.Format); !ok {
		return fmt.Errorf("unsupported format '%s'. Available formats: %v", s.Format, formatters.List())
	}
	cloudOpts := wordcloudOptions(s)
	if s.ImageFile != "" {
		if err := cloudOpts.Validate(); err != nil {
			return err
		}
	}

	configureColor(s.NoColor, stdout)

	status := stdout
	if s.Format != "text" && s.Format != "table" {
		status = stderr
	}
	info := color.New(color.FgCyan)
	success := color.New(color.FgGreen)

	observer := observability.NewObserver(s.Debug, stderr)
	started := time.Now()

	result, err := core.AnalyzeFile(core.AnalyzeConfig{
		InputPath:  s.Input,
		RepairJSON: s.RepairJSON,
		Debug:      s.Debug,
		Observer:   observer,
		Pipeline: core.PipelineOptions{
			Heading: s.Heading,
			Stemmer: s.Stemmer,
			Workers: s.Workers,
		},
	})
	if result != nil {
		info.Fprintf(status, "Loaded %d issues\n", result.Documents)
		info.Fprintf(status, "Processed %d issues with descriptions\n", result.WithSection)
		info.Fprintf(status, "Total unique keywords: %d\n", result.Table.Len())
	}
	if errors.Is(err, core.ErrNoKeywords) {
		color.New(color.FgYellow).Fprintln(status, "No keywords found!")
		return nil
	}
	if err != nil {
		return err
	}

	summary := &formatters.Summary{
		RunID:       observer.RunID(),
		Documents:   result.Documents,
		WithSection: result.WithSection,
		Keywords:    result.Keywords,
		Distinct:    result.Table.Len(),
		Stemmer:     s.Stemmer,
	}
	listing, err := formatters.Export(s.Format, result.Table, formatters.FormatterOptions{
		Top:     s.Top,
		NoColor: s.NoColor,
		Verbose: s.Verbose && s.Format != "text",
		Summary: summary,
	})
	if err != nil {
		return fmt.Errorf("error formatting results: %w", err)
	}
	if s.Format == "text" {
		fmt.Fprintln(stdout)
	}
	fmt.Fprint(stdout, listing)
	if len(listing) > 0 && listing[len(listing)-1] != '\n' {
		fmt.Fprintln(stdout)
	}

	var runMetrics *metrics.RunMetrics
	if s.MetricsFile != "" {
		runMetrics = metrics.NewRunMetrics()
	}

	if err := paths.EnsureDir(paths.NormalizePath(s.OutputDir)); err != nil {
		return err
	}

	imagePath := paths.Resolve(s.OutputDir, s.ImageFile)
	if imagePath != "" {
		finish := observer.Step("wordcloud", "render", imagePath)
		if err := ensureParent(imagePath); err != nil {
			return err
		}
		layout, err := wordcloud.SavePNG(imagePath, result.Table, cloudOpts)
		if err != nil {
			finish(false, err.Error())
			return fmt.Errorf("failed to render word map: %w", err)
		}
		finish(true, fmt.Sprintf("%d words placed, %d dropped", len(layout.Placements), layout.Dropped))
		success.Fprintf(status, "\nWord map saved to: %s\n", imagePath)
		if runMetrics != nil {
			runMetrics.ArtifactWritten("png")
		}

		if pdfPath := paths.Resolve(s.OutputDir, s.PDFFile); pdfPath != "" {
			if err := ensureParent(pdfPath); err != nil {
				return err
			}
			if err := wordcloud.ExportPDF(imagePath, pdfPath); err != nil {
				return err
			}
			success.Fprintf(status, "Word map PDF saved to: %s\n", pdfPath)
			if runMetrics != nil {
				runMetrics.ArtifactWritten("pdf")
			}
		}
	}

	if csvPath := paths.Resolve(s.OutputDir, s.CSVFile); csvPath != "" {
		content, err := formatters.Export("csv", result.Table, formatters.FormatterOptions{})
		if err != nil {
			return fmt.Errorf("error formatting CSV: %w", err)
		}
		if err := ensureParent(csvPath); err != nil {
			return err
		}
		if err := os.WriteFile(csvPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("error writing CSV file: %w", err)
		}
		success.Fprintf(status, "Keyword frequencies saved to: %s\n", csvPath)
		if runMetrics != nil {
			runMetrics.ArtifactWritten("csv")
		}
	}

	if runMetrics != nil {
		metricsPath := paths.Resolve(s.OutputDir, s.MetricsFile)
		runMetrics.Observe(result.Documents, result.WithSection, result.Keywords, result.Table.Len(), time.Since(started))
		if err := ensureParent(metricsPath); err != nil {
			return err
		}
		if err := runMetrics.WriteTextfile(metricsPath); err != nil {
			return err
		}
		observer.Detail("metrics", "written to "+metricsPath)
	}

	return nil
}

func ensureParent(path string) error {
	return paths.EnsureDir(filepath.Dir(path))
}
