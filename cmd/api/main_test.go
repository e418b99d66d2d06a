package main

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"fast-zero/internal/config"
)

func TestNewEmailSender_NilWithoutSMTP(t *testing.T) {
	if sender := newEmailSender(&config.Config{}, zap.NewNop()); sender != nil {
		t.Fatalf("expected no sender without SMTP host, got %T", sender)
	}
	if sender := newEmailSender(&config.Config{SMTPHost: "smtp.exemplo.com"}, zap.NewNop()); sender != nil {
		t.Fatalf("expected no sender when SMTP config is invalid, got %T", sender)
	}
	cfg := &config.Config{SMTPHost: "smtp.exemplo.com", SMTPPort: 587, SMTPFrom: "noreply@exemplo.com"}
	if sender := newEmailSender(cfg, zap.NewNop()); sender == nil {
		t.Fatalf("expected SMTP sender when configured")
	}
}

func TestNewLoginLimiter_FallsBackToMemory(t *testing.T) {
	cfg := &config.Config{LoginMaxAttempts: 1, LoginWindowMinutes: 1}
	limiter, closeLimiter := newLoginLimiter(context.Background(), cfg, zap.NewNop())
	defer closeLimiter()

	if !limiter.Allow("alice@exemplo.com") || limiter.Allow("alice@exemplo.com") {
		t.Fatalf("expected in-memory limiter with one attempt")
	}
}

func TestNewLoginLimiter_UnreachableRedisFallsBack(t *testing.T) {
	// 127.0.0.1:1 no acepta conexiones.
	cfg := &config.Config{RedisAddr: "127.0.0.1:1", LoginMaxAttempts: 1, LoginWindowMinutes: 1}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	limiter, closeLimiter := newLoginLimiter(ctx, cfg, zap.NewNop())
	defer closeLimiter()

	if !limiter.Allow("alice@exemplo.com") || limiter.Allow("alice@exemplo.com") {
		t.Fatalf("expected in-memory fallback when redis is unreachable")
	}
}
