package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/category"
	"inventory-backend/internal/config"
	"inventory-backend/internal/customer"
	"inventory-backend/internal/db"
	apihttp "inventory-backend/internal/handler/http"
	"inventory-backend/internal/order"
	"inventory-backend/internal/product"
	"inventory-backend/internal/stock"
	"inventory-backend/internal/supplier"
	"inventory-backend/internal/user"
	"inventory-backend/internal/warehouse"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Info().Msg("Starting inventory-api...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	mongoDB, err := db.New(cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := user.EnsureIndexes(context.Background(), mongoDB.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	productRepo := product.NewRepository(mongoDB.Database)
	customerRepo := customer.NewRepository(mongoDB.Database)
	orderRepo := order.NewRepository(mongoDB.Database)

	productHandler := apihttp.NewProductHandler(product.NewService(productRepo))
	warehouseHandler := apihttp.NewWarehouseHandler(warehouse.NewService(warehouse.NewRepository(mongoDB.Database)))
	userHandler := apihttp.NewUserHandler(user.NewService(user.NewRepository(mongoDB.Database)))
	supplierHandler := apihttp.NewSupplierHandler(supplier.NewService(supplier.NewRepository(mongoDB.Database)))
	stockHandler := apihttp.NewStockHandler(stock.NewService(stock.NewRepository(mongoDB.Database)))
	categoryHandler := apihttp.NewCategoryHandler(category.NewService(category.NewRepository(mongoDB.Database)))
	customerHandler := apihttp.NewCustomerHandler(customer.NewService(customerRepo))
	orderHandler := apihttp.NewOrderHandler(order.NewService(orderRepo, customerRepo, productRepo))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Route("/api", func(r chi.Router) {
		productHandler.RegisterRoutes(r)
		warehouseHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		supplierHandler.RegisterRoutes(r)
		stockHandler.RegisterRoutes(r)
		categoryHandler.RegisterRoutes(r)
		customerHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.App.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	mongoDB.Close()

	log.Info().Msg("inventory-api stopped gracefully")
}
