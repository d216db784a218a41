package web

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"chapterquiz/internal/config"
	"chapterquiz/internal/deck"
	"chapterquiz/internal/quiz"
	"chapterquiz/internal/testutil"
)

const twoQuestions = `q,options,answer,explain
"First?","yes",0,"Only one way"
"Second?","yes",0,
`

type fakeScheduler struct {
	*testutil.FakeScheduler
}

func (f fakeScheduler) Every(interval time.Duration) quiz.Countdown {
	return f.FakeScheduler.Every(interval)
}

func newFakeScheduler() fakeScheduler {
	return fakeScheduler{testutil.NewFakeScheduler(time.Unix(0, 0))}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.csv"), []byte(twoQuestions), 0o644); err != nil {
		t.Fatalf("write chapter: %v", err)
	}
	return Config{
		Addr: "127.0.0.1:0",
		Chapters: []config.ChapterConfig{
			{ID: "one", Title: "Chapter <One>", Source: "one.csv"},
			{ID: "broken", Title: "Broken", Source: "missing.csv"},
		},
		DefaultChapter: "one",
		Quiz:           quiz.Config{QuestionsPerRun: 10, SecondsPerQuestion: 2},
		Fetcher:        deck.Fetcher{BaseDir: dir},
		Scheduler:      newFakeScheduler(),
		Logger:         zerolog.Nop(),
	}
}

func startServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readUntil returns the first message with the given event, skipping others.
func readUntil(t *testing.T, conn *websocket.Conn, event Event) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(testutil.DefaultTimeout))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", event, err)
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode message %s: %v", data, err)
		}
		if msg["event"] == string(event) {
			return msg
		}
	}
}
