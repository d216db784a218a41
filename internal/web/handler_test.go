package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestNewHandlerServesPage ensures the root path lists the configured chapters.
func TestNewHandlerServesPage(t *testing.T) {
	handler, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`<option value="one" selected>Chapter &lt;One&gt;</option>`,
		`<option value="broken">Broken</option>`,
		`/assets/quiz.js`,
		`/assets/style.css`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page, got %s", want, body)
		}
	}
}

// TestNewHandlerListsChapters verifies the chapter endpoint hides sources.
func TestNewHandlerListsChapters(t *testing.T) {
	handler, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/chapters", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "one.csv") {
		t.Fatalf("expected sources to stay private, got %s", resp.Body.String())
	}
	var views []ChapterView
	if err := json.Unmarshal(resp.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 2 || views[0].ID != "one" || !views[0].Default || views[1].Default {
		t.Fatalf("unexpected chapters: %+v", views)
	}
}

// TestNewHandlerServesAssets verifies embedded assets are reachable.
func TestNewHandlerServesAssets(t *testing.T) {
	handler, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	for _, path := range []string{"/assets/quiz.js", "/assets/style.css"} {
		req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", path, resp.Code)
		}
		if resp.Body.Len() == 0 {
			t.Fatalf("%s: expected content", path)
		}
	}
}

// TestNewHandlerRequiresChapters verifies an empty catalogue is rejected.
func TestNewHandlerRequiresChapters(t *testing.T) {
	cfg := testConfig(t)
	cfg.Chapters = nil
	if _, err := NewHandler(cfg); err == nil {
		t.Fatalf("expected error")
	}
}
