package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/data/repos/testutil"
	types "github.com/yungbote/mindwell-backend/internal/domain"
	"github.com/yungbote/mindwell-backend/internal/platform/gemini"
	"github.com/yungbote/mindwell-backend/internal/sentiment"
)

type fakeLLM struct {
	reply   string
	err     error
	prompts []gemini.Prompt
}

func (f *fakeLLM) GenerateReply(_ context.Context, p gemini.Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

func newChat(t *testing.T, f *fixture, llm gemini.Client) *chatService {
	t.Helper()
	lex, err := sentiment.Default()
	if err != nil {
		t.Fatalf("sentiment.Default: %v", err)
	}
	return NewChatService(f.db, f.log, repos.NewConversationRepo(f.db, f.log), f.moodService(), llm, lex).(*chatService)
}

func TestChatSendPersistsBothTurns(t *testing.T) {
	f := newFixture(t)
	llm := &fakeLLM{reply: "That sounds hard. What helped last time?"}
	svc := newChat(t, f, llm)
	u := f.user(t, "chat-send@example.com")
	ctx := as(f.ctx, u)
	testutil.SeedMood(t, f.ctx, f.db, u.ID, 4, time.Now().UTC().Add(-time.Hour))

	reply, err := svc.Send(ctx, "  I feel so sad today  ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Message != llm.reply {
		t.Fatalf("reply: want=%q got=%q", llm.reply, reply.Message)
	}
	if reply.SentimentScore >= 0 {
		t.Fatalf("sentiment: want negative got=%v", reply.SentimentScore)
	}
	if got := llm.prompts[0].Message; got != "I feel so sad today" {
		t.Fatalf("prompt message: got=%q", got)
	}
	if !strings.Contains(llm.prompts[0].System, "supportive mental health chatbot") {
		t.Fatalf("system prompt missing")
	}

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history: want=2 got=%d", len(history))
	}
	if history[0].Sender != types.SenderUser || history[0].SentimentScore == nil {
		t.Fatalf("user turn: got sender=%q sentiment=%v", history[0].Sender, history[0].SentimentScore)
	}
	if history[1].Sender != types.SenderAI || history[1].SentimentScore != nil {
		t.Fatalf("ai turn: got sender=%q sentiment=%v", history[1].Sender, history[1].SentimentScore)
	}

	latest, err := repos.NewMoodAnalysisRepo(f.db, f.log).Latest(f.ctx, nil, u.ID)
	if err != nil {
		t.Fatalf("mood analysis after chat: %v", err)
	}
	if latest.AverageMood != 4 {
		t.Fatalf("average_mood: want=4 got=%v", latest.AverageMood)
	}
}

func TestChatContextIsLastFiveTurns(t *testing.T) {
	f := newFixture(t)
	llm := &fakeLLM{reply: "ok"}
	svc := newChat(t, f, llm)
	u := f.user(t, "chat-context@example.com")
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		testutil.SeedConversation(t, f.ctx, f.db, u.ID, types.SenderUser, testutil.Float(0), base.Add(time.Duration(i)*time.Minute))
	}

	if _, err := svc.Send(as(f.ctx, u), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := len(llm.prompts[0].History); got != chatContextTurns {
		t.Fatalf("history turns: want=%d got=%d", chatContextTurns, got)
	}
}

func TestChatFailures(t *testing.T) {
	f := newFixture(t)
	llm := &fakeLLM{err: errors.New("upstream 503")}
	svc := newChat(t, f, llm)
	u := f.user(t, "chat-fail@example.com")
	ctx := as(f.ctx, u)

	_, err := svc.Send(ctx, "   ")
	wantAPIError(t, err, http.StatusBadRequest, "empty_message")
	if len(llm.prompts) != 0 {
		t.Fatalf("empty message reached the model")
	}

	_, err = svc.Send(ctx, "hello")
	wantAPIError(t, err, http.StatusBadGateway, "chat_unavailable")

	history, err := svc.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history after model failure: want=0 got=%d", len(history))
	}
}
