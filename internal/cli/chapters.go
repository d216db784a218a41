package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// runChapters builds the handler for the chapters command.
func runChapters(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .quiz/config.yml)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		proj, err := loadProject(*configPath, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		if len(proj.cfg.Chapters) == 0 {
			fmt.Fprintln(stdout, "No chapters configured.")
			return ExitOK
		}

		width := 0
		for _, chapter := range proj.cfg.Chapters {
			width = max(width, len(chapter.ID))
		}
		for _, chapter := range proj.cfg.Chapters {
			marker := " "
			if chapter.ID == proj.cfg.DefaultChapter {
				marker = "*"
			}
			fmt.Fprintf(stdout, "%s %-*s  %s (%s)\n", marker, width, chapter.ID, chapter.Title, chapter.Source)
		}
		return ExitOK
	}
}
