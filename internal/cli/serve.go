package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"chapterquiz/internal/deck"
	"chapterquiz/internal/logging"
	"chapterquiz/internal/quiz"
	"chapterquiz/internal/web"
)

// serveQuiz is a test seam for running the web server.
var serveQuiz = web.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .quiz/config.yml)")
		addr := fs.String("addr", "", "Address to listen on (default: serve.addr from config)")
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
			fmt.Fprintln(stderr, "No chapters configured")
			return ExitError
		}

		cfg := web.Config{
			Addr:           proj.cfg.Serve.Addr,
			AllowedOrigins: proj.cfg.Serve.AllowedOrigins,
			Chapters:       proj.cfg.Chapters,
			DefaultChapter: proj.cfg.DefaultChapter,
			Quiz: quiz.Config{
				QuestionsPerRun:    proj.cfg.Quiz.QuestionsPerRun,
				SecondsPerQuestion: proj.cfg.Quiz.SecondsPerQuestion,
			},
			Fetcher: deck.Fetcher{BaseDir: proj.baseDir},
			Logger:  logging.Setup(proj.cfg.Log.Level, proj.cfg.Log.Format, stderr),
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving quiz at http://%s\n", bound)
			},
		}
		if trimmed := strings.TrimSpace(*addr); trimmed != "" {
			cfg.Addr = trimmed
		}

		ctx, stop := commandContext()
		defer stop()
		if err := serveQuiz(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
