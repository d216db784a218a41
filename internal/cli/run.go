package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"chapterquiz/internal/deck"
	"chapterquiz/internal/logging"
	"chapterquiz/internal/quiz"
	"chapterquiz/internal/ui/live"
	"chapterquiz/internal/ui/plain"
)

// runInput is a test seam for the terminal input of run.
var runInput io.Reader

// runOptions are the parsed flags of the run command.
type runOptions struct {
	configPath string
	chapter    string
	source     string
	count      int
	seconds    int
	uiMode     string
	logPath    string
	seed       uint64
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		var opts runOptions
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .quiz/config.yml)")
		fs.StringVar(&opts.chapter, "chapter", "", "Chapter id from the config (default: default_chapter)")
		fs.StringVar(&opts.source, "source", "", "CSV path or http(s) URL; overrides --chapter")
		fs.IntVar(&opts.count, "count", 0, "Questions per run (default: from config)")
		fs.IntVar(&opts.seconds, "seconds", 0, "Seconds per question (default: from config)")
		fs.StringVar(&opts.uiMode, "ui", "auto", "UI mode: auto|live|plain")
		fs.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stderr")
		fs.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if opts.count < 0 || opts.seconds < 0 {
			fmt.Fprintln(stderr, "--count and --seconds must be positive")
			return ExitUsage
		}
		if opts.chapter != "" && opts.source != "" {
			fmt.Fprintln(stderr, "--chapter and --source are mutually exclusive")
			return ExitUsage
		}

		decision, err := resolveUIMode(opts.uiMode, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		proj, err := loadProject(opts.configPath, opts.source != "")
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		source, title, err := selectSource(proj, opts)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}

		cfg := proj.cfg.Quiz
		if opts.count > 0 {
			cfg.QuestionsPerRun = opts.count
		}
		if opts.seconds > 0 {
			cfg.SecondsPerQuestion = opts.seconds
		}
		quizCfg := quiz.Config{QuestionsPerRun: cfg.QuestionsPerRun, SecondsPerQuestion: cfg.SecondsPerQuestion}

		logOut, closeLog, err := openLog(opts.logPath, decision.useLive, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log: %v\n", err)
			return ExitError
		}
		defer closeLog()
		logger := logging.Setup(proj.cfg.Log.Level, proj.cfg.Log.Format, logOut)
		loader := deck.NewLoader(deck.Fetcher{BaseDir: proj.baseDir}, deck.NewRand(opts.seed), logger)

		ctx, stop := commandContext()
		defer stop()

		in := runInput
		if in == nil {
			in = os.Stdin
		}
		run := runPlain
		if decision.useLive {
			run = runLive
		}
		status, err := run(ctx, quizRun{
			cfg:    quizCfg,
			loader: loader,
			logger: logger,
			seed:   opts.seed,
			source: source,
			title:  title,
			in:     in,
			out:    stdout,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		if status == quiz.StatusFailed {
			return ExitError
		}
		return ExitOK
	}
}

// selectSource picks the deck source from --source, --chapter or the
// default chapter.
func selectSource(proj project, opts runOptions) (string, string, error) {
	if source := strings.TrimSpace(opts.source); source != "" {
		return source, path.Base(source), nil
	}
	id := strings.TrimSpace(opts.chapter)
	if id == "" {
		id = proj.cfg.DefaultChapter
	}
	if id == "" {
		return "", "", fmt.Errorf("no chapter selected; pass --chapter, --source or set default_chapter")
	}
	chapter, ok := proj.cfg.Chapter(id)
	if !ok {
		return "", "", fmt.Errorf("unknown chapter %q", id)
	}
	return chapter.Source, chapter.Title, nil
}

// openLog picks the log destination. The live UI owns the terminal, so it
// logs only to a file.
func openLog(logPath string, useLive bool, stderr io.Writer) (io.Writer, func(), error) {
	if logPath == "" {
		if useLive {
			return nil, func() {}, nil
		}
		return stderr, func() {}, nil
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}

// quizRun bundles what a front end needs to drive one session.
type quizRun struct {
	cfg    quiz.Config
	loader quiz.DeckLoader
	logger zerolog.Logger
	seed   uint64
	source string
	title  string
	in     io.Reader
	out    io.Writer
}

// runPlain drives a session with the line-oriented front end and returns
// the final status.
func runPlain(ctx context.Context, r quizRun) (quiz.Status, error) {
	console := plain.NewConsole(r.out)
	machine := quiz.NewMachine(r.cfg, plain.NewRenderer(console), nil, deck.NewRand(r.seed))
	session := quiz.NewSession(machine, r.loader, r.logger)

	runCtx, cancel := context.WithCancel(ctx)
	go session.Run(runCtx)
	err := plain.Run(runCtx, r.in, console, session, r.source)
	cancel()
	<-session.Done()
	return machine.Status(), err
}

// runLive drives a session with the Bubble Tea front end.
func runLive(ctx context.Context, r quizRun) (quiz.Status, error) {
	controller := live.NewController()
	machine := quiz.NewMachine(r.cfg, controller, nil, deck.NewRand(r.seed))
	session := quiz.NewSession(machine, r.loader, r.logger)

	runCtx, cancel := context.WithCancel(ctx)
	go session.Run(runCtx)
	controller.Launch(runCtx, r.out, r.in, live.Options{
		NoColor:  os.Getenv("NO_COLOR") != "",
		Commands: session,
		Source:   r.source,
		Title:    r.title,
	})
	controller.Wait()
	cancel()
	<-session.Done()
	return machine.Status(), nil
}
