package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/happyfood/happyfood-backend/api/routes"
	"github.com/happyfood/happyfood-backend/internal/addresses"
	"github.com/happyfood/happyfood-backend/internal/auth"
	"github.com/happyfood/happyfood-backend/internal/cart"
	"github.com/happyfood/happyfood-backend/internal/catalog"
	checkoutsvc "github.com/happyfood/happyfood-backend/internal/checkout"
	"github.com/happyfood/happyfood-backend/internal/deliveries"
	"github.com/happyfood/happyfood-backend/internal/orders"
	"github.com/happyfood/happyfood-backend/internal/payments"
	"github.com/happyfood/happyfood-backend/internal/reviews"
	"github.com/happyfood/happyfood-backend/internal/users"
	"github.com/happyfood/happyfood-backend/pkg/config"
	"github.com/happyfood/happyfood-backend/pkg/db"
	"github.com/happyfood/happyfood-backend/pkg/logger"
	"github.com/happyfood/happyfood-backend/pkg/migrate"
	"github.com/happyfood/happyfood-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gdb := dbClient.DB()
	usersRepo := users.NewRepository(gdb)
	catalogRepo := catalog.NewRepository(gdb)
	addressesRepo := addresses.NewRepository(gdb)
	cartRepo := cart.NewRepository(gdb)
	ordersRepo := orders.NewRepository(gdb)
	deliveriesRepo := deliveries.NewRepository(gdb)
	paymentsRepo := payments.NewRepository(gdb)
	reviewsRepo := reviews.NewRepository(gdb)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	addressesService, err := addresses.NewService(addressesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create addresses service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	sequencer, err := orders.NewSequencer(cfg.Checkout.MaxOrderNumber)
	if err != nil {
		logg.Error(context.Background(), "failed to create order sequencer", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Tx:          dbClient,
		Carts:       cartRepo,
		Orders:      ordersRepo,
		Sequencer:   sequencer,
		Addresses:   addressesRepo,
		Restaurants: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:        ordersRepo,
		Restaurants: catalogRepo,
		Couriers:    deliveriesRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(paymentsRepo, ordersService)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	deliveriesService, err := deliveries.NewService(deliveries.ServiceParams{
		Repo:        deliveriesRepo,
		Orders:      ordersRepo,
		Restaurants: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create deliveries service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:        reviewsRepo,
		Restaurants: catalogRepo,
		Products:    catalogRepo,
		Users:       usersRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, redisClient, routes.Services{
			Auth:       authService,
			Catalog:    catalogService,
			Addresses:  addressesService,
			Cart:       cartService,
			Checkout:   checkoutService,
			Orders:     ordersService,
			Payments:   paymentsService,
			Deliveries: deliveriesService,
			Reviews:    reviewsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
