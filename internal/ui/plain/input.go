package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chapterquiz/internal/quiz"
)

// Run starts source and then reads one command per line from in until q,
// end of input, or ctx is done.
func Run(ctx context.Context, in io.Reader, console *Console, commands quiz.Commander, source string) error {
	// Load failures are reported by the renderer; r retries.
	if err := commands.Start(ctx, source); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		case line := <-lines:
			if quit := handleLine(ctx, line, console, commands); quit {
				return nil
			}
		}
	}
}

// handleLine applies one command and reports whether the user quit.
func handleLine(ctx context.Context, line string, console *Console, commands quiz.Commander) bool {
	input := strings.ToLower(strings.TrimSpace(line))
	switch input {
	case "q", "quit":
		return true
	case "", "n", "next":
		commands.Advance()
	case "e", "end":
		commands.End()
	case "r", "restart":
		if err := commands.Restart(ctx); err != nil && errors.Is(err, quiz.ErrNoSource) {
			console.Printf("Nothing to restart.\n")
		}
	default:
		choice, err := strconv.Atoi(input)
		if err != nil {
			console.Printf("Unknown command %q.\n", line)
			return false
		}
		if !commands.Answer(choice - 1) {
			console.Printf("Option %d is not available.\n", choice)
		}
	}
	return false
}
