package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"elite_market/internal/clock"
	"elite_market/internal/config"
	"elite_market/internal/handlers"
	authh "elite_market/internal/handlers/auth"
	"elite_market/internal/handlers/payment"
	"elite_market/internal/handlers/product"
	"elite_market/internal/handlers/seller"
	"elite_market/internal/handlers/user"
	"elite_market/internal/middleware"
	"elite_market/internal/services"
	"elite_market/internal/utils"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	Config      *config.Config
	Clock       clock.Clock
	Checkouts   payment.Checkouts
	Gateway     services.Gateway
	Intents     payment.IntentStore
	Fulfillment seller.Fulfillment
	Publisher   seller.Publisher
	Activity    seller.ActivityLog
	Profiles    user.Profiles
	Storefront  product.Storefront
	Countries   product.CountryResolver
	Logins      authh.Logins
	Orders      user.OrderSource
	Receipts    utils.ReceiptRenderer
	// Limiter is optional; without it nothing is rate limited.
	Limiter middleware.Counter
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	limit := func(name string, max int64, window time.Duration) gin.HandlerFunc {
		if d.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(d.Limiter, name, max, window)
	}
	optional := middleware.AuthOptional(cfg.JWTSecret)
	required := middleware.AuthRequired(cfg.JWTSecret)
	returnURLs := handlers.ReturnURLsFromOrigin(cfg.CORSOrigins, cfg.BaseURL)

	r.GET("/health", handlers.Health)

	// Auth
	r.GET("/auth/login", authh.HandleLogin)
	r.GET("/auth/callback", authh.HandleCallback(d.Logins, gothic.CompleteUserAuth, authh.CallbackConfig{
		JWTSecret:     cfg.JWTSecret,
		SecureCookies: cfg.SecureCookies,
		RedirectURL:   cfg.FrontendURL,
		Now:           d.Clock.Now,
	}))
	r.GET("/auth/logout", authh.HandleLogout(cfg.SecureCookies))
	r.POST("/auth/logout", authh.HandleLogout(cfg.SecureCookies))

	// Hosted session for an arbitrary title and price
	r.POST("/checkout", limit("checkout", middleware.CheckoutMaxRequests, middleware.CheckoutWindow),
		payment.HandleCreateSession(d.Gateway, returnURLs))

	api := r.Group("/api", middleware.RequestMeta())

	// Storefront
	api.GET("/categories", product.HandleCategories)
	api.GET("/products", optional, product.HandleList(d.Storefront, d.Countries))
	api.GET("/products/search", limit("search", middleware.SearchMaxRequests, middleware.SearchWindow),
		product.HandleSearch(d.Storefront))
	api.GET("/products/:id", product.HandleDetail(d.Storefront))

	// Checkout
	api.POST("/products/:id/checkout", optional,
		limit("checkout", middleware.CheckoutMaxRequests, middleware.CheckoutWindow),
		payment.HandleStartCheckout(d.Checkouts, d.Intents, returnURLs))
	api.GET("/checkout/return", optional, payment.HandleCheckoutReturn(d.Checkouts, d.Intents))

	// Buyer
	profile := api.Group("/profile", required)
	profile.GET("", user.HandleProfile(d.Profiles))
	profile.PUT("/country", user.HandleSetCountry(d.Profiles))
	profile.GET("/orders/:id/receipt", user.HandleReceipt(d.Orders, user.ReceiptConfig{
		Render:   d.Receipts,
		SiteURL:  cfg.SiteURL(),
		Currency: cfg.Stripe.Currency,
	}))

	// Seller
	sellers := api.Group("/seller", required)
	sellers.GET("/dashboard", seller.HandleDashboard(d.Fulfillment))
	sellers.POST("/orders/:id/dispatch", seller.HandleDispatchOrder(d.Fulfillment))
	sellers.POST("/subscriptions/shipments", seller.HandleDispatchMonthly(d.Fulfillment))
	sellers.POST("/products", seller.HandlePublish(d.Publisher))
	sellers.GET("/activity", seller.HandleActivity(d.Activity))
}
