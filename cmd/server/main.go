package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/basciYusuf/e-commerce/internal/config"
	"github.com/basciYusuf/e-commerce/internal/es"
	"github.com/basciYusuf/e-commerce/internal/httpserver"
	"github.com/basciYusuf/e-commerce/internal/logging"
	loggingmw "github.com/basciYusuf/e-commerce/internal/middleware/logging"
	"github.com/basciYusuf/e-commerce/internal/mykafka"
	"github.com/basciYusuf/e-commerce/internal/repo"
	"github.com/basciYusuf/e-commerce/internal/search"
	"github.com/basciYusuf/e-commerce/internal/service"
)

const productsIndex = "products"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	catalog := &service.CatalogService{Repo: repo.NewGormRepo(db)}
	auth := &service.AuthService{Repo: repo.NewGormRepo(db), JWTSecret: []byte(cfg.JWT_SECRET)}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
		catalog.Events = producer
	}

	var searchHandler *httpserver.SearchHTTP
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		sc := search.NewClient(esClient, productsIndex)
		catalog.Index = sc
		searchHandler = &httpserver.SearchHTTP{Client: sc}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: auth},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalog},
		SearchHandler:  searchHandler,
		JWTSecret:      []byte(cfg.JWT_SECRET),
	})

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
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
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
