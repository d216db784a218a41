package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chapterquiz/internal/quiz"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 5 * time.Minute
)

// buildUpgrader accepts any origin when allowedOrigins is empty.
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
					return true
				}
			}
			return false
		},
	}
}

// client forwards quiz events of one connection to the browser.
type client struct {
	conn   *websocket.Conn
	logger zerolog.Logger

	mu sync.Mutex
}

func (c *client) write(v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(v); err != nil {
		c.logger.Debug().Err(err).Msg("Write failed")
	}
}

func (c *client) writeError(message string) {
	c.write(ErrorMessage{Event: EventError, Error: message})
}

func (c *client) OnLoading() {
	c.write(StatusMessage{Event: EventLoading})
}

func (c *client) OnLoadError(message string) {
	c.write(ErrorMessage{Event: EventLoadError, Error: message})
}

func (c *client) OnNoQuestions() {
	c.write(StatusMessage{Event: EventNoQuestions})
}

func (c *client) OnQuestionRendered(text string, options []string, number, total int) {
	c.write(QuestionMessage{Event: EventQuestion, Text: text, Options: options, Number: number, Total: total})
}

func (c *client) OnTimerTick(remaining, total int) {
	c.write(TickMessage{Event: EventTick, Remaining: remaining, Total: total})
}

func (c *client) OnAnswered(chosen, correct int, explanation string) {
	c.write(RevealMessage{Event: EventAnswered, Chosen: chosen, Correct: correct, Explanation: explanation})
}

func (c *client) OnTimedOut(correct int, explanation string) {
	c.write(RevealMessage{Event: EventTimedOut, Chosen: quiz.NoChoice, Correct: correct, Explanation: explanation})
}

func (c *client) OnScoreChanged(score int) {
	c.write(ScoreMessage{Event: EventScore, Score: score})
}

func (c *client) OnFinished(summary quiz.Summary) {
	c.write(FinishedMessage{Event: EventFinished, Summary: summary})
}

// serveWS runs one quiz session per connection until the browser leaves or
// the server shuts down.
func (h *handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	logger := h.logger.With().Str("conn_id", uuid.NewString()).Logger()
	c := &client{conn: conn, logger: logger}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	machine := quiz.NewMachine(h.cfg.Quiz, c, h.cfg.Scheduler, nil)
	session := quiz.NewSession(machine, h.loader, logger)
	go session.Run(ctx)
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	logger.Info().Msg("Browser connected")
	h.readLoop(ctx, conn, c, session)
	cancel()
	<-session.Done()
}

func (h *handler) readLoop(ctx context.Context, conn *websocket.Conn, c *client, session *quiz.Session) {
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				c.logger.Warn().Err(err).Msg("Unexpected close")
			} else {
				c.logger.Debug().Msg("Connection closed")
			}
			return
		}
		req, err := h.decoder.Decode(data)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Rejected message")
			c.writeError(err.Error())
			continue
		}
		h.dispatch(ctx, c, session, req)
	}
}

func (h *handler) dispatch(ctx context.Context, c *client, session *quiz.Session, req Request) {
	switch req.Action {
	case ActionStart:
		chapter, ok := h.chapter(req.Chapter)
		if !ok {
			c.writeError("unknown chapter: " + req.Chapter)
			return
		}
		c.logger.Debug().Str("chapter", chapter.ID).Msg("Starting chapter")
		go h.await(c, func() error { return session.Start(ctx, chapter.Source) })
	case ActionRestart:
		go h.await(c, func() error { return session.Restart(ctx) })
	case ActionAnswer:
		session.Answer(req.Option)
	case ActionAdvance:
		session.Advance()
	case ActionEnd:
		session.End()
	}
}

// await reports start failures that no observer event covers. Load errors
// already reach the browser through OnLoadError.
func (h *handler) await(c *client, start func() error) {
	err := start()
	switch {
	case errors.Is(err, quiz.ErrLoading):
		c.writeError("a chapter is still loading")
	case errors.Is(err, quiz.ErrNoSource):
		c.writeError("nothing to restart")
	}
}
