package deck

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

type rawRow struct {
	line        int
	text        string
	options     string
	answer      string
	explanation string
}

// blank reports whether every column of the row is empty.
func (r rawRow) blank() bool {
	return strings.TrimSpace(r.text) == "" &&
		strings.TrimSpace(r.options) == "" &&
		strings.TrimSpace(r.answer) == "" &&
		strings.TrimSpace(r.explanation) == ""
}

// normalizeRow trims and validates a row, then shuffles its options.
func normalizeRow(row rawRow, rng *rand.Rand) (Question, *Rejection) {
	reject := func(format string, args ...any) (Question, *Rejection) {
		return Question{}, &Rejection{Line: row.line, Reason: fmt.Sprintf(format, args...)}
	}

	text := strings.TrimSpace(row.text)
	if text == "" {
		return reject("question text is empty")
	}

	options := splitOptions(row.options)
	if len(options) == 0 {
		return reject("no options")
	}

	rawAnswer := strings.TrimSpace(row.answer)
	answer, err := strconv.Atoi(rawAnswer)
	if err != nil {
		return reject("answer %q is not an integer", rawAnswer)
	}
	if answer < 0 || answer >= len(options) {
		return reject("answer %d out of range for %d options", answer, len(options))
	}

	shuffled, correct := shuffleOptions(rng, options, answer)
	return Question{
		Text:         text,
		Options:      shuffled,
		CorrectIndex: correct,
		Explanation:  strings.TrimSpace(row.explanation),
	}, nil
}

// splitOptions splits on the option separator and drops blank entries.
func splitOptions(value string) []string {
	parts := strings.Split(value, OptionSeparator)
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		options = append(options, part)
	}
	return options
}
