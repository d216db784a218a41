package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"chapterquiz/internal/deck"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .quiz/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		sources := flags.Args()

		var targets []string
		baseDir := ""
		proj, err := loadProject(*configPath, len(sources) > 0 && *configPath == "")
		switch {
		case err != nil:
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		case proj.path != "":
			fmt.Fprintln(stdout, "Config OK")
			baseDir = proj.baseDir
			if len(sources) == 0 {
				for _, chapter := range proj.cfg.Chapters {
					targets = append(targets, chapter.Source)
				}
			}
		}
		if len(sources) > 0 {
			if baseDir == "" {
				wd, wdErr := os.Getwd()
				if wdErr != nil {
					fmt.Fprintf(stderr, "Validation failed: %v\n", wdErr)
					return ExitError
				}
				baseDir = wd
			}
			targets = sources
		}

		loader := deck.NewLoader(deck.Fetcher{BaseDir: baseDir}, nil, zerolog.Nop())
		if !inspectSources(context.Background(), loader, targets, stdout, stderr) {
			return ExitError
		}
		return ExitOK
	}
}

// inspectSources prints accepted and rejected row counts per source. It
// reports false when any source cannot be read.
func inspectSources(ctx context.Context, loader *deck.Loader, sources []string, stdout, stderr io.Writer) bool {
	ok := true
	for _, source := range sources {
		result, err := loader.Inspect(ctx, source)
		if err != nil {
			ok = false
			fmt.Fprintf(stderr, "%s: %v\n", source, err)
			continue
		}
		fmt.Fprintf(stdout, "%s: %d questions, %d rejected rows\n", source, len(result.Questions), len(result.Rejected))
		for _, rejection := range result.Rejected {
			fmt.Fprintf(stdout, "  line %d: %s\n", rejection.Line, rejection.Reason)
		}
		if len(result.Questions) == 0 {
			fmt.Fprintf(stdout, "  warning: no valid questions\n")
		}
	}
	return ok
}
