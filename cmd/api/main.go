package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/harentsoaR/doctor-appointment-api/internal/config"
	"github.com/harentsoaR/doctor-appointment-api/internal/handlers"
	"github.com/harentsoaR/doctor-appointment-api/internal/logging"
	"github.com/harentsoaR/doctor-appointment-api/internal/metrics"
	"github.com/harentsoaR/doctor-appointment-api/internal/middleware"
	"github.com/harentsoaR/doctor-appointment-api/internal/services"
	"github.com/harentsoaR/doctor-appointment-api/internal/store"
	"github.com/harentsoaR/doctor-appointment-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.App.LogLevel)
	log.WithFields(logrus.Fields{
		"port":     cfg.App.Port,
		"database": cfg.Mongo.Database,
	}).Info("configuration loaded")

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	client, err := store.Connect(ctx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()

	db := store.New(client.Database(cfg.Mongo.Database))
	ctx, cancel = context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	err = db.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}
	log.Info("connected to MongoDB")

	// --- Initialize Services ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	accounts := services.NewAccounts(db, tokens, log)
	mailbox := services.NewMailbox(db, rec, log)

	h := handlers.NewHandler(
		accounts,
		mailbox,
		services.NewAvailabilityChecker(db),
		services.NewBooking(db, db, db, mailbox, rec, log),
		services.NewDoctors(db, db, mailbox, log),
		log,
	)

	// --- Gin Router ---
	gin.SetMode(cfg.App.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), rec.Middleware())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if cfg.App.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.App.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// --- Routes ---
	r.GET("/metrics", rec.Handler())
	h.RegisterRoutes(r, handlers.Guards{
		Public:    []gin.HandlerFunc{middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))},
		Protected: []gin.HandlerFunc{middleware.AuthMiddleware(tokens)},
		Admin:     []gin.HandlerFunc{middleware.RequireAdmin(accounts)},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
