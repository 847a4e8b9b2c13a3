package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orderfront/internal/cart"
	"orderfront/internal/config"
	"orderfront/internal/db"
	"orderfront/internal/httpserver"
	cartsessionrepo "orderfront/internal/repository/cartsession"
	fulfillmentrepo "orderfront/internal/repository/fulfillment"
	productrepo "orderfront/internal/repository/product"
	promotionrepo "orderfront/internal/repository/promotion"
	storerepo "orderfront/internal/repository/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	sessions := cartsessionrepo.NewPostgres(dbpool)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		StoreRepo:       storerepo.NewPostgres(dbpool),
		ProductRepo:     productrepo.NewPostgres(dbpool),
		FulfillmentRepo: fulfillmentrepo.NewPostgres(dbpool),
		PromotionRepo:   promotionrepo.NewPostgres(dbpool),
		CartStorage: func(storeID, sessionID string) cart.Storage {
			return sessions.ForSession(storeID, sessionID)
		},
		CORSOrigins: cfg.CORSOrigins,
		HorizonDays: cfg.HorizonDays,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
