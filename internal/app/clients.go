package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yungbote/mindwell-backend/internal/platform/gemini"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/platform/ratelimit"
	"github.com/yungbote/mindwell-backend/internal/platform/reportstore"
	"github.com/yungbote/mindwell-backend/internal/sentiment"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type Clients struct {
	Gemini      gemini.Client
	ReportStore reportstore.Store
	ChatLimiter ratelimit.Limiter
	Sentiment   *sentiment.Lexicon

	closers []io.Closer
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var c Clients

	llm, err := gemini.NewClient(log, gemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.GeminiTimeout,
		MaxRetries: cfg.GeminiMaxRetries,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	}
	c.Gemini = llm

	lex, err := sentiment.Default()
	if err != nil {
		return Clients{}, fmt.Errorf("load sentiment lexicon: %w", err)
	}
	c.Sentiment = lex

	store, storeCloser, err := resolveReportStore(ctx, log, cfg)
	if err != nil {
		return Clients{}, err
	}
	c.ReportStore = store
	c.closers = append(c.closers, storeCloser)

	// Redis
	if cfg.RedisAddr != "" {
		rl, err := ratelimit.NewRedis(log, cfg.RedisAddr, cfg.ChatRateLimitPerMin, time.Minute)
		if err != nil {
			c.Close()
			return Clients{}, fmt.Errorf("init redis rate limiter: %w", err)
		}
		c.ChatLimiter = rl
		c.closers = append(c.closers, rl)
	} else {
		log.Info("REDIS_ADDR not set; chat rate limit is per-process")
		c.ChatLimiter = ratelimit.NewMemory(cfg.ChatRateLimitPerMin, time.Minute)
	}
	return c, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if c.closers[i] != nil {
			_ = c.closers[i].Close()
		}
	}
	c.closers = nil
}
