package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chapterquiz/internal/config"
)

// initInput is a test seam for the init confirmation prompt.
var initInput io.Reader

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dir := flags.String("dir", "", "Project directory (default: current directory)")
		yes := flags.Bool("yes", false, "Skip the confirmation prompt")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		root := strings.TrimSpace(*dir)
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
		}
		root, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: %q is not a directory\n", root)
			return ExitError
		}

		if !*yes {
			in := initInput
			if in == nil {
				in = os.Stdin
			}
			confirm, err := promptYesNo(bufio.NewReader(in), stdout, fmt.Sprintf("Initialize quiz config in %s?", config.ConfigDir(root)), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		if err := config.Scaffold(root); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", config.ConfigPath(root))
		fmt.Fprintf(stdout, "Wrote %s\n", filepath.Join(root, config.ChaptersDir, config.SampleChapterID+".csv"))
		return ExitOK
	}
}
