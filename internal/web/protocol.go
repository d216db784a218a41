package web

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"chapterquiz/internal/quiz"
)

// Action is a browser to server command.
type Action string

const (
	ActionStart   Action = "start"
	ActionAnswer  Action = "answer"
	ActionAdvance Action = "advance"
	ActionEnd     Action = "end"
	ActionRestart Action = "restart"
)

// Event is a server to browser message kind.
type Event string

const (
	EventLoading     Event = "loading"
	EventLoadError   Event = "load_error"
	EventNoQuestions Event = "no_questions"
	EventQuestion    Event = "question"
	EventTick        Event = "tick"
	EventAnswered    Event = "answered"
	EventTimedOut    Event = "timed_out"
	EventScore       Event = "score"
	EventFinished    Event = "finished"
	EventError       Event = "error"
)

// Request is a decoded browser command.
type Request struct {
	Action  Action `json:"action"`
	Chapter string `json:"chapter,omitempty"`
	Option  int    `json:"option,omitempty"`
}

// StatusMessage carries events without a payload.
type StatusMessage struct {
	Event Event `json:"event"`
}

type ErrorMessage struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type QuestionMessage struct {
	Event   Event    `json:"event"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Number  int      `json:"number"`
	Total   int      `json:"total"`
}

type TickMessage struct {
	Event     Event `json:"event"`
	Remaining int   `json:"remaining"`
	Total     int   `json:"total"`
}

// RevealMessage reports an answer or a timeout together with the correct
// option. Chosen is -1 on timeout.
type RevealMessage struct {
	Event       Event  `json:"event"`
	Chosen      int    `json:"chosen"`
	Correct     int    `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

type ScoreMessage struct {
	Event Event `json:"event"`
	Score int   `json:"score"`
}

type FinishedMessage struct {
	Event   Event        `json:"event"`
	Summary quiz.Summary `json:"summary"`
}

const requestSchema = `{
  "type": "object",
  "required": ["action"],
  "additionalProperties": false,
  "properties": {
    "action": {"enum": ["start", "answer", "advance", "end", "restart"]},
    "chapter": {"type": "string", "minLength": 1},
    "option": {"type": "integer", "minimum": 0}
  },
  "allOf": [
    {
      "if": {"properties": {"action": {"const": "start"}}},
      "then": {"required": ["chapter"]}
    },
    {
      "if": {"properties": {"action": {"const": "answer"}}},
      "then": {"required": ["option"]}
    }
  ]
}`

const requestSchemaURL = "mem://chapterquiz/request.json"

// RequestDecoder validates raw browser messages against the request schema.
type RequestDecoder struct {
	schema *jsonschema.Schema
}

// NewRequestDecoder compiles the request schema.
func NewRequestDecoder() (*RequestDecoder, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(requestSchemaURL, strings.NewReader(requestSchema)); err != nil {
		return nil, fmt.Errorf("add request schema: %w", err)
	}
	schema, err := compiler.Compile(requestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	return &RequestDecoder{schema: schema}, nil
}

// Decode parses and validates one message.
func (d *RequestDecoder) Decode(data []byte) (Request, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if err := d.schema.Validate(doc); err != nil {
		return Request{}, fmt.Errorf("invalid request: %w", err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
