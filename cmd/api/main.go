package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"kantinho-pos/internal/cart"
	"kantinho-pos/internal/checkout"
	"kantinho-pos/internal/config"
	"kantinho-pos/internal/db"
	"kantinho-pos/internal/httpserver"
	menurepo "kantinho-pos/internal/repository/menu"
	orderrepo "kantinho-pos/internal/repository/order"
	tokenrepo "kantinho-pos/internal/repository/token"
	userrepo "kantinho-pos/internal/repository/user"
	menusvc "kantinho-pos/internal/service/menu"
	salessvc "kantinho-pos/internal/service/sales"
	tillsvc "kantinho-pos/internal/service/till"
	usersvc "kantinho-pos/internal/service/user"
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

	menuRepo := menurepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	menuService := menusvc.New(menuRepo)
	userService := usersvc.New(userRepo, tokenRepo)
	salesService := salessvc.New(orderRepo)

	assembler := checkout.New(orderRepo, userService, logger)
	tillService := tillsvc.New(cart.New(), menuService, assembler)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Users:  userService,
		Menu:   menuService,
		Till:   tillService,
		Orders: orderRepo,
		Sales:  salesService,
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
