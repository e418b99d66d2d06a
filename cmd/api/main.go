package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fast-zero/internal/config"
	"fast-zero/internal/db"
	"fast-zero/internal/email"
	apihttp "fast-zero/internal/http"
	"fast-zero/internal/repository"
	"fast-zero/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	jwtSvc, err := service.NewJWTService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL())
	if err != nil {
		logger.Fatal("jwt service", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	limiter, closeLimiter := newLoginLimiter(ctx, cfg, logger)
	defer closeLimiter()
	emailSender := newEmailSender(cfg, logger)

	userSvc := service.NewUserService(logger, userRepo, hasher, emailSender)
	authSvc := service.NewAuthService(logger, userRepo, hasher, jwtSvc, limiter)

	router := apihttp.NewRouter(logger,
		apihttp.NewSystemHandler(logger, pool),
		apihttp.NewUserHandler(logger, userSvc),
		apihttp.NewAuthHandler(logger, authSvc),
		authSvc,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	userSvc.Wait()
}

// newLoginLimiter usa Redis si esta configurado y responde; si no, memoria.
// La funcion devuelta libera el cliente Redis.
func newLoginLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.LoginLimiter, func()) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory login limiter", zap.Error(err))
			_ = client.Close()
		} else {
			closeClient := func() {
				if err := client.Close(); err != nil {
					logger.Warn("redis close", zap.Error(err))
				}
			}
			return service.NewRedisLoginLimiter(client, cfg.LoginWindow(), cfg.LoginMaxAttempts), closeClient
		}
	}
	return service.NewLoginLimiter(cfg.LoginWindow(), cfg.LoginMaxAttempts), func() {}
}

// newEmailSender devuelve nil sin SMTP configurado: no se envian correos de bienvenida.
func newEmailSender(cfg *config.Config, logger *zap.Logger) email.Sender {
	if cfg.SMTPHost == "" {
		logger.Info("smtp not configured, welcome emails disabled")
		return nil
	}
	sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
	if err != nil {
		logger.Warn("smtp sender init failed, welcome emails disabled", zap.Error(err))
		return nil
	}
	return sender
}
