package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lattzaw/group_order/internal/config"
	"github.com/lattzaw/group_order/internal/es"
	"github.com/lattzaw/group_order/internal/httpserver"
	"github.com/lattzaw/group_order/internal/logging"
	loggingmw "github.com/lattzaw/group_order/internal/middleware/logging"
	"github.com/lattzaw/group_order/internal/mykafka"
	"github.com/lattzaw/group_order/internal/repo"
	"github.com/lattzaw/group_order/internal/service"
)

func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	r := repo.New(db)

	deps := httpserver.Deps{
		DB: db,
		OrderHandler: &httpserver.OrderHandler{
			Svc:      &service.OrderService{Repo: r},
			Producer: prod,
		},
		OrderItemHandler: &httpserver.OrderItemHandler{
			Svc:      &service.OrderItemService{Repo: r},
			Repo:     r,
			Producer: prod,
			ES:       esClient,
			Index:    "product",
		},
		MessageHandler: &httpserver.MessageHandler{
			Svc:      &service.MessageService{Repo: r},
			Producer: prod,
		},
		CatalogHandler: &httpserver.CatalogHandler{
			Repo:  r,
			ES:    esClient,
			Index: "product",
		},
		UserHandler: &httpserver.UserHandler{
			Svc: &service.UserService{Repo: r},
		},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
