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

	"elite_market/internal/auth"
	"elite_market/internal/cache"
	"elite_market/internal/clock"
	"elite_market/internal/config"
	"elite_market/internal/database"
	"elite_market/internal/database/migrations"
	"elite_market/internal/intent"
	"elite_market/internal/models"
	"elite_market/internal/routes"
	"elite_market/internal/services"
	"elite_market/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.Stripe.SecretKey == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY missing: checkouts will answer a configuration error")
	}

	ctx := context.Background()
	conns, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer conns.Close()

	if err := migrations.Apply(ctx, conns.Scylla); err != nil {
		log.Fatalf("❌ Migrations failed: %v", err)
	}

	if _, err := auth.Setup(cfg); err != nil {
		log.Printf("⚠️ OAuth login disabled: %v", err)
	}

	hashKey, blockKey, err := utils.CookieKeys(cfg.SessionSecret, "checkout-intent")
	if err != nil {
		log.Fatalf("❌ Checkout cookie keys: %v", err)
	}

	clk := clock.NewSystem()
	products := database.NewProductStore(conns.Scylla)
	orders := database.NewOrderStore(conns.Scylla)
	shipments := database.NewShipmentStore(conns.Scylla)
	profiles := database.NewProfileStore(conns.Scylla)
	audit := database.NewAuditStore(conns.Scylla)

	mailer := utils.NewMailer(cfg.SMTP)
	var notifier services.Notifier
	var orderNotifier *utils.OrderNotifier
	if mailer.Configured() {
		orderNotifier = utils.NewOrderNotifier(mailer, cfg.SiteURL(), cfg.Stripe.Currency)
		notifier = orderNotifier
	} else {
		log.Println("⚠️ SMTP not configured: buyer e-mails disabled")
	}

	storefront := services.NewStorefrontService(products, clk).
		WithCache(cache.NewProductCache(conns.Redis)).
		WithAudit(audit)
	if conns.Elastic != nil {
		storefront.WithSearch(services.NewProductIndex(conns.Elastic, cfg.Elastic.Index))
	}
	if conns.MinIO != nil {
		storefront.WithImages(services.NewImageStore(conns.MinIO, cfg.MinIO.Bucket, cfg.MinIO.PublicURL))
	}

	gateway := services.NewStripeGateway(cfg.Stripe)
	checkout := services.NewCheckoutService(products, orders, gateway, clk).
		WithAudit(audit)
	fulfillment := services.NewFulfillmentService(products, orders, shipments, profiles, clk).
		WithAudit(audit)
	if notifier != nil {
		checkout.WithNotifier(notifier)
		fulfillment.WithNotifier(notifier)
	}
	profileSvc := services.NewProfileService(profiles, orders, shipments, products)

	warmupProductCache(ctx, storefront)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Clock:       clk,
		Checkouts:   checkout,
		Gateway:     gateway,
		Intents:     intent.NewStore(cfg.SecureCookies, hashKey, blockKey),
		Fulfillment: fulfillment,
		Publisher:   storefront,
		Activity:    fulfillment,
		Profiles:    profileSvc,
		Storefront:  storefront,
		Countries:   profileSvc,
		Logins:      profileSvc,
		Orders:      profileSvc,
		Receipts:    utils.RenderReceiptPDF,
		Limiter:     cache.NewCounter(conns.Redis),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("🚀 Elite Market API listening on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-stopCtx.Done()
	log.Println("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("❌ Shutdown: %v", err)
	}
	if orderNotifier != nil {
		orderNotifier.Wait()
	}
}

// warmupProductCache loads every served country's listing into Redis so the
// first visitors do not pay for the Scylla round trips.
func warmupProductCache(ctx context.Context, storefront *services.StorefrontService) {
	for _, country := range models.Countries {
		listing := storefront.List(ctx, country)
		log.Printf("🔥 %s: %d products cached", country, len(listing.Products))
	}
}
