package deck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

// Column names expected in the header row.
const (
	ColumnQuestion    = "q"
	ColumnOptions     = "options"
	ColumnAnswer      = "answer"
	ColumnExplanation = "explain"
)

// OptionSeparator joins option texts inside the options column.
const OptionSeparator = "|"

// ErrMissingHeader indicates the source had no header row.
var ErrMissingHeader = errors.New("missing header row")

// ErrMissingColumn indicates a required header column was absent.
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{ColumnQuestion, ColumnOptions, ColumnAnswer}

// Parse reads a CSV deck, validating and shuffling each row.
//
// Invalid rows are collected in Result.Rejected and never fail the parse.
// Malformed CSV or a missing header does.
func Parse(r io.Reader, rng *rand.Rand) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("parse deck: %w", ErrMissingHeader)
	}
	if err != nil {
		return Result{}, fmt.Errorf("parse deck header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return Result{}, fmt.Errorf("parse deck header: %w", err)
	}

	var result Result
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("parse deck: %w", err)
		}
		line, _ := reader.FieldPos(0)
		row := rawRow{
			line:        line,
			text:        columns.value(record, ColumnQuestion),
			options:     columns.value(record, ColumnOptions),
			answer:      columns.value(record, ColumnAnswer),
			explanation: columns.value(record, ColumnExplanation),
		}
		if row.blank() {
			continue
		}
		question, rejection := normalizeRow(row, rng)
		if rejection != nil {
			result.Rejected = append(result.Rejected, *rejection)
			continue
		}
		result.Questions = append(result.Questions, question)
	}
	return result, nil
}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	columns := columnIndex{}
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func (c columnIndex) value(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
