package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is the semantic version of the CLI. Can be overridden at build
// time via -ldflags.
var version = "0.1.0-dev"

var (
	versionNameColor = color.New(color.FgCyan, color.Bold)
	versionNumColor  = color.New(color.FgYellow)
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", versionNameColor.Sprint("sumic"), versionNumColor.Sprint(version))
	},
}
