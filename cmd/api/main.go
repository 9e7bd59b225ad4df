package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "staybook/internal/adapters/http_server"
	"staybook/internal/adapters/jwtauth"
	"staybook/internal/adapters/observability"
	"staybook/internal/adapters/razorpay"
	redisad "staybook/internal/adapters/redis"
	"staybook/internal/app"
	"staybook/internal/domain"
	"staybook/internal/shared"
	"staybook/internal/storage"
	"staybook/internal/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// store
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store init failed")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	// redis is optional: without it there is no read cache, logout only
	// drops the client token and the overlap guard is process-local
	var (
		cache   domain.Cache
		revoker domain.TokenRevoker
		locker  domain.BookingLocker
	)
	if cfg.RedisAddr != "" {
		rc, err := redisad.Dial(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		defer rc.Close()
		cache = redisad.New(rc)
		revoker = redisad.NewRevoker(rc)
		if cfg.OverlapGuard {
			locker = redisad.NewLocker(rc)
		}
	} else {
		log.Warn().Msg("REDIS_ADDR empty: cache and token revocation disabled")
		if cfg.OverlapGuard {
			locker = memory.NewLocker()
		}
	}

	// deps
	gateway, err := razorpay.New(cfg.RazorpayBase, cfg.RazorpayKey, cfg.RazorpaySecret, cfg.RazorpayRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize payment gateway")
	}
	tokens, err := jwtauth.New(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token issuer")
	}

	h := &server.Handlers{
		Hotels:       app.NewHotelService(store, cache, cfg.CacheTTL),
		Bookings:     app.NewBookingService(store, gateway, locker, cfg.Currency),
		Ratings:      app.NewRatingService(store),
		Categories:   app.NewCategoryService(store, cache, cfg.CacheTTL),
		Auth:         app.NewAuthService(store, tokens, revoker),
		LegacyStatus: cfg.LegacyStatus,
	}

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("store", cfg.StoreDriver).
			Bool("legacy_status", cfg.LegacyStatus).
			Bool("overlap_guard", cfg.OverlapGuard).
			Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
