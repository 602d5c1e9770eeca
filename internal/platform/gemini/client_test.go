package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, srv *httptest.Server, retries int) Client {
	t.Helper()
	c, err := NewClient(logger.Nop(), Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gemini-test", MaxRetries: retries})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.(*client).initialBackoff = time.Millisecond
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{APIKey: "  "}); err == nil {
		t.Fatalf("NewClient: want error without key")
	}
}

func TestGenerateReply(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Errorf("path: got=%q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header missing")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  I'm here for you.  "}]}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	reply, err := c.GenerateReply(context.Background(), Prompt{
		System:  "be kind",
		History: []Turn{{Sender: "user", Message: "hi"}, {Sender: "ai", Message: "hello"}},
		Message: "I feel low",
	})
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply != "I'm here for you." {
		t.Fatalf("reply: want=%q got=%q", "I'm here for you.", reply)
	}
	if got.GenerationConfig.MaxOutputTokens != 150 {
		t.Fatalf("maxOutputTokens: want=150 got=%d", got.GenerationConfig.MaxOutputTokens)
	}
	parts := got.Contents[0].Parts
	if len(parts) != 3 || parts[0].Text != "be kind" || parts[2].Text != "I feel low" {
		t.Fatalf("parts: got=%+v", parts)
	}
	if !strings.Contains(parts[1].Text, "user: hi") || !strings.Contains(parts[1].Text, "ai: hello") {
		t.Fatalf("history part: got=%q", parts[1].Text)
	}
}

func TestGenerateReplyRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestClient(t, srv, 3).GenerateReply(context.Background(), Prompt{Message: "x"})
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply != "ok" || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("want ok after 3 calls, got reply=%q calls=%d", reply, calls)
	}
}

func TestGenerateReplyDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, 3).GenerateReply(context.Background(), Prompt{Message: "x"})
	var httpErr *geminiHTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("error: want 400 geminiHTTPError got=%v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}
}

func TestGenerateReplyEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv, 0).GenerateReply(context.Background(), Prompt{Message: "x"}); !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("error: want ErrEmptyReply got=%v", err)
	}
}
