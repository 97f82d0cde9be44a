package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "kejayangu/cmd/api/router/v1"
	"kejayangu/internal/infrastructure/auth"
	cacheAdapter "kejayangu/internal/infrastructure/cache/adapter"
	cacheport "kejayangu/internal/infrastructure/cache/port"
	"kejayangu/internal/infrastructure/config"
	"kejayangu/internal/infrastructure/database"
	"kejayangu/internal/infrastructure/logger"
	queueAdapter "kejayangu/internal/infrastructure/queue/adapter"
	qport "kejayangu/internal/infrastructure/queue/port"
	"kejayangu/internal/infrastructure/realtime"
	"kejayangu/internal/lib/sl"
	"kejayangu/internal/pkg/chat/application/task"
	chathttp "kejayangu/internal/pkg/chat/presentation/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// .env is optional outside local development
		_ = err
	}

	conf := config.MustLoad()
	lg := logger.SetupLogger(conf.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := database.Connect(bootCtx, conf.DatabaseURL)
	if err != nil {
		lg.With(sl.Err(err)).Error("failed to connect to database")
		return
	}
	defer pool.Close()

	if err := database.EnsureSchema(bootCtx, pool); err != nil {
		lg.With(sl.Err(err)).Error("failed to ensure schema")
		return
	}
	lg.Info("database ready")

	router := realtime.NewRouter()
	defer router.Close()

	// Redis-backed pieces are optional: without them the service falls back
	// to direct counts and in-process broadcast.
	var cache cacheport.Cache
	var queueClient qport.Client
	var queueServer qport.Server
	if conf.RedisURL != "" {
		if c, err := cacheAdapter.NewRedisAdapter(conf.RedisURL); err != nil {
			lg.With(sl.Err(err)).Warn("redis cache unavailable")
		} else {
			cache = c
			defer c.Close()
		}

		if qc, err := queueAdapter.NewAsynqClient(conf.RedisURL); err != nil {
			lg.With(sl.Err(err)).Warn("queue client unavailable")
		} else {
			queueClient = qc
			defer qc.Close()
		}

		if qs, err := queueAdapter.NewAsynqServer(conf.RedisURL, 10, lg); err != nil {
			lg.With(sl.Err(err)).Warn("queue worker unavailable")
		} else {
			queueServer = qs
			task.RegisterNotifyMessageTask(qs, pool, router, cache, lg)
			go func() {
				if err := qs.Run(ctx); err != nil {
					lg.With(sl.Err(err)).Error("queue worker stopped")
				}
			}()
		}
	}

	signer := auth.NewSigner(conf.Auth.TokenSecret, time.Duration(conf.Auth.TokenTTLHrs)*time.Hour)

	if conf.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(engine, signer, chathttp.Options{
		Pool:        pool,
		Queue:       queueClient,
		Cache:       cache,
		Router:      router,
		Log:         lg,
		SendBuffer:  conf.Realtime.SendBuffer,
		MaxFrameLen: conf.Realtime.MaxFrameLen,
	})

	srv := &http.Server{
		Addr:              conf.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("starting http server", slog.String("addr", conf.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.With(sl.Err(err)).Error("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if queueServer != nil {
		_ = queueServer.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.With(sl.Err(err)).Error("http shutdown")
	}
}
