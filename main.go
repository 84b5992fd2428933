package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beautyStore/config"
	"beautyStore/handlers"
	"beautyStore/logger"
	"beautyStore/notifier"
	"beautyStore/repository"
	"beautyStore/services"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// storefront hash-password <secret> prints a value for admin.password_hash
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := services.HashAdminPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		// logger config is part of cfg, so fall back to a default logger
		logger.New(logger.Config{Level: "info", Format: "console"}).Fatal("config", zap.Error(err))
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	pR, err := repository.NewProductRepository(db, log)
	if err != nil {
		log.Fatal("database is not reachable", zap.Error(err))
	}
	cR, err := repository.NewCategoryRepository(db, log)
	if err != nil {
		log.Fatal("category repository", zap.Error(err))
	}
	bR, err := repository.NewBrandRepository(db, log)
	if err != nil {
		log.Fatal("brand repository", zap.Error(err))
	}
	oR, err := repository.NewOrderRepository(db, log)
	if err != nil {
		log.Fatal("order repository", zap.Error(err))
	}
	log.Info("db connected")

	ctx := context.Background()
	local, closeLocal, err := openLocalStore(ctx, cfg)
	if err != nil {
		log.Fatal("local store", zap.String("driver", cfg.Local.Driver), zap.Error(err))
	}
	defer closeLocal()
	log.Info("local store ready", zap.String("driver", cfg.Local.Driver))

	n := notifier.New(notifier.Config{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
		APIBase:  cfg.Telegram.APIBase,
		Timeout:  cfg.Telegram.Timeout,
	}, &http.Client{}, log)

	store, err := services.NewStore(ctx, services.StoreParams{
		Products:          pR,
		Categories:        cR,
		Brands:            bR,
		Orders:            oR,
		Local:             local,
		Notifier:          n,
		Log:               log,
		AdminPasswordHash: cfg.Admin.PasswordHash,
		PollInterval:      cfg.Orders.PollInterval,
		WhatsAppNumber:    cfg.WhatsApp.Number,
	})
	if err != nil {
		log.Fatal("store", zap.Error(err))
	}
	defer store.Close()

	store.FetchProducts(ctx)
	store.FetchCategories(ctx)
	store.FetchBrands(ctx)
	if store.IsAdminAuthenticated() {
		store.FetchOrders(ctx)
	}

	ha := handlers.NewHandler(store, log)
	srv := &http.Server{
		Addr:              cfg.App.ListenAddr,
		Handler:           handlers.NewRouter(ha),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", cfg.App.ListenAddr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	if tg, ok := n.(*notifier.Telegram); ok {
		tg.Wait()
	}
}

func openLocalStore(ctx context.Context, cfg *config.Config) (repository.LocalStore, func(), error) {
	switch cfg.Local.Driver {
	case "memory":
		return repository.NewMemoryLocalStore(), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		ls, err := repository.NewRedisLocalStore(pingCtx, rdb, cfg.Redis.KeyPrefix)
		if err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis is not working: %w", err)
		}
		return ls, func() { rdb.Close() }, nil
	default:
		db, err := repository.OpenSQLite(cfg.Local.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		ls, err := repository.NewSQLiteLocalStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return ls, func() { db.Close() }, nil
	}
}
