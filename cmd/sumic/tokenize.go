package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gyosho/sumi/s2l"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.s2l",
	Short: "Tokenize a shader source file",
	Long:  `Tokenize breaks an S2L source file into its constituent tokens, for debugging the front end`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	lexer := s2l.NewLexer(string(data))
	tokens := lexer.Tokenize()

	for _, lexErr := range lexer.Errors() {
		msg := lexErr.Error()
		if useColor(cmd, os.Stderr) {
			msg = color.New(color.FgYellow).Sprint(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
	}

	switch format {
	case "pretty":
		for _, tok := range tokens {
			fmt.Printf("%4d:%-4d %-12s %s\n", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
		}
		return nil
	case "json":
		type jsonToken struct {
			Kind   string `json:"kind"`
			Lexeme string `json:"lexeme,omitempty"`
			Line   int    `json:"line"`
			Column int    `json:"column"`
		}
		out := make([]jsonToken, 0, len(tokens))
		for _, tok := range tokens {
			out = append(out, jsonToken{
				Kind:   tok.Kind.String(),
				Lexeme: tok.Lexeme,
				Line:   tok.Line,
				Column: tok.Column,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
