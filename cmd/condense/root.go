package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	targetFlag string
	quiet      bool
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "condense",
	Short: "Compress a PDF to a target file size",
	Long: fmt.Sprintf(`
%s - compress a PDF to a target file size

Picks the first PDF from the input directory and searches for the
compression settings that land its size at or below the target.

%s
  • %s    Ordered strategy search: tries transforms from least to most
              aggressive and stops as soon as one lands close enough.
  • %s        Exhaustive grid search: evaluates every width/quality pair
              and keeps the largest result still under the target.

%s
  condense strategy --target 5MB
  condense grid --target 4.5MB
  condense grid                      Prompts for the target size`,
		bold("condense"),
		bold("Modes:"),
		cyan("strategy"),
		cyan("grid"),
		bold("Examples:"),
	),
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "Target size (e.g. 5MB); prompts when omitted")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
}

func printInfo(msg string) {
	if !quiet {
		fmt.Println(cyan("→"), msg)
	}
}

func printSuccess(msg string) {
	if !quiet {
		fmt.Println(green("✓"), msg)
	}
}

func printWarning(msg string) {
	if !quiet {
		fmt.Println(yellow("⚠"), msg)
	}
}
