package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gyosho/sumi"
	"github.com/gyosho/sumi/internal/cache"
	"github.com/gyosho/sumi/internal/project"
	"github.com/gyosho/sumi/preprocess"
	"github.com/gyosho/sumi/s2l"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.s2l]",
	Short: "Compile a shader source file",
	Long: `Build preprocesses, parses and compiles an S2L shader source file.

When no input file is given, the entry from the nearest sumi.toml is
compiled instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	buildCmd.Flags().StringP("target", "t", "wgsl", "output target (wgsl|metal|markdown)")
	buildCmd.Flags().Bool("stdlib", false, "metal only: emit a native stdlib header")
	buildCmd.Flags().Bool("cache", false, "reuse cached output for unchanged sources")
}

func runBuild(cmd *cobra.Command, args []string) error {
	targetFlag, _ := cmd.Flags().GetString("target")
	output, _ := cmd.Flags().GetString("output")
	stdlib, _ := cmd.Flags().GetBool("stdlib")
	useCache, _ := cmd.Flags().GetBool("cache")

	input, targetFlag, err := resolveInput(cmd, args, targetFlag)
	if err != nil {
		return err
	}

	target, err := sumi.ParseTarget(targetFlag)
	if err != nil {
		return err
	}
	opts := sumi.Options{Target: target, MetalStdLib: stdlib}

	source, err := preprocess.New().Process(input)
	if err != nil {
		return fmt.Errorf("preprocess error: %w", err)
	}

	selector := target.String()
	if stdlib {
		selector += "+stdlib"
	}

	var store *cache.DiskCache
	if useCache {
		store, err = cache.Open("sumic")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	key := cache.KeyFor(source, selector)
	if store != nil {
		if payload, ok, err := store.Get(key); err != nil {
			return err
		} else if ok {
			return writeOutput(output, payload.Output)
		}
	}

	code, err := sumi.Compile(source, opts)
	if err != nil {
		reportCompileError(cmd, err, source)
		return err
	}

	if store != nil {
		if err := store.Put(key, selector, code); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write cache: %v\n", err)
		}
	}

	return writeOutput(output, code)
}

// resolveInput picks the input path from the positional argument or the
// nearest project manifest, which may also supply a default target.
func resolveInput(cmd *cobra.Command, args []string, targetFlag string) (string, string, error) {
	if len(args) > 0 {
		return args[0], targetFlag, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	manifest, err := project.Find(cwd)
	if err != nil {
		return "", "", fmt.Errorf("no input file given and %w", err)
	}
	if manifest.Target != "" && !cmd.Flags().Changed("target") {
		targetFlag = manifest.Target
	}
	return manifest.EntryPath(), targetFlag, nil
}

// reportCompileError prints a parse error with source context and a
// caret, colorized when stderr is a terminal.
func reportCompileError(cmd *cobra.Command, err error, source string) {
	var parseErr *s2l.ParseError
	if !errors.As(err, &parseErr) {
		return
	}
	msg := parseErr.FormatWithContext(source)
	if useColor(cmd, os.Stderr) {
		msg = color.New(color.FgRed).Sprint(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

func writeOutput(path, code string) error {
	if path == "" {
		fmt.Println(code)
		return nil
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
