package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/external/analytics"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/external/cartsync"
	mt "github.com/ImmanuelNashville/Gospel-Culture-sub000/external/midtrans"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/config"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/db"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/repository"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/services"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/storage"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG + INFRA
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatal(err)
	}

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS (advisory collaborators may be disabled)
	// ======================
	var tracker services.EventTracker
	if cfg.AnalyticsURL != "" {
		t, err := analytics.NewClient(cfg.AnalyticsURL, cfg.AnalyticsKey)
		if err != nil {
			log.Fatal(err)
		}
		tracker = t
	} else {
		log.Println("analytics disabled: ANALYTICS_URL not set")
	}

	var syncer services.CartSyncer
	if cfg.CartSyncURL != "" {
		sc, err := cartsync.NewClient(cfg.CartSyncURL)
		if err != nil {
			log.Fatal(err)
		}
		syncer = sc
	} else {
		log.Println("remote cart sync disabled: CART_SYNC_URL not set")
	}

	snapClient := mt.NewSnapClient(cfg.MidtransServerKey, cfg.MidtransProduction)

	// ======================
	// REPOSITORIES
	// ======================
	catalogRepo := repository.NewCatalogRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	entitlementRepo := repository.NewEntitlementRepository(pool)
	cartKV := storage.NewPgKV(pool)

	// ======================
	// SERVICES
	// ======================
	promoValidator := services.NewPromoValidatorService(promoRepo)
	cartSvc := services.NewCartService(cartKV, promoValidator, catalogRepo, saleRepo, tracker, syncer)
	catalogSvc := services.NewCatalogService(catalogRepo, saleRepo)
	checkoutSvc := services.NewCheckoutService(orderRepo, paymentRepo, entitlementRepo, cartSvc, snapClient, cfg.MidtransServerKey)
	orderSvc := services.NewOrderQueryService(orderRepo)
	librarySvc := services.NewLibraryService(entitlementRepo, catalogRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/marketplace")
	secret := []byte(cfg.JWTSecret)

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerCatalogRoutes(api, catalogSvc)
	registerCartRoutes(api, cartSvc, secret)
	registerCheckoutRoutes(api, checkoutSvc, orderSvc, secret)
	registerLibraryRoutes(api, librarySvc, secret)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
