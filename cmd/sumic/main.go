// Command sumic is the Sumi (S2L) shader compiler CLI.
//
// Usage:
//
//	sumic build shader.s2l                 # compile to stdout (WGSL-like)
//	sumic build -t metal -o out.metal in    # compile to a file
//	sumic build -t markdown shader.s2l     # extract documentation
//	sumic tokenize shader.s2l              # dump the token stream
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "sumic",
	Short: "Sumi shader language compiler",
	Long:  `sumic compiles S2L shader sources to WGSL-like, Metal-like or Markdown output`,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// useColor resolves the --color flag against the stream's terminal-ness.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch flag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
