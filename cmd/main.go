package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	flogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/arjunvn/shopstack/internal/auth"
	"github.com/arjunvn/shopstack/internal/config"
	"github.com/arjunvn/shopstack/internal/db"
	"github.com/arjunvn/shopstack/internal/docserv"
	"github.com/arjunvn/shopstack/internal/handlers"
	"github.com/arjunvn/shopstack/internal/hooks"
	"github.com/arjunvn/shopstack/internal/logger"
	"github.com/arjunvn/shopstack/internal/mailer"
	"github.com/arjunvn/shopstack/internal/middleware"
	"github.com/arjunvn/shopstack/internal/schema"
	"github.com/arjunvn/shopstack/internal/services"
	"github.com/arjunvn/shopstack/internal/storage"
	"github.com/arjunvn/shopstack/internal/store"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	if cfg.JWTSecret == "" {
		zlog.Fatal("JWT_SECRET is required")
	}

	mongoDB, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	st := store.NewMongo(mongoDB)

	images, err := storage.NewImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		zlog.Fatal("object storage init failed", zap.Error(err))
	}

	tokens := auth.NewJWTVerifier(cfg.JWTSecret)

	// The API verifier is selected by configuration; the google sign-in
	// endpoint always uses the identity provider when one is configured.
	var apiVerifier auth.Verifier = tokens
	var google auth.Verifier
	if cfg.OIDCIssuer != "" {
		oidcVerifier, err := auth.NewOIDCVerifier(context.Background(), cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			zlog.Fatal("oidc init failed", zap.Error(err))
		}
		google = oidcVerifier
		if cfg.AuthMode == "oidc" {
			apiVerifier = oidcVerifier
		}
	}

	mail := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	docs := docserv.New(st, zlog)
	authSvc := services.NewAuthService(st, tokens, mail, zlog, cfg.TokenTTL, cfg.ResetBaseURL)

	app := fiber.New()
	app.Use(flogger.New())
	app.Use(cors.New())

	authHandler := handlers.NewAuthHandler(authSvc, google, zlog)
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	// Existing clients call the doubled path.
	authGroup.Post("/auth/google", authHandler.GoogleAuth)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/set-password", authHandler.GetSetPassword)
	authGroup.Post("/set-password", authHandler.PostSetPassword)

	users := handlers.NewUsers(docs, st, zlog)
	products := handlers.NewResource(docs, "products", schema.Product, nil)
	categories := handlers.NewResource(docs, "categories", schema.Category, nil)
	orders := handlers.NewResource(docs, "orders", schema.Order, hooks.Order(st, zlog))
	bills := handlers.NewResource(docs, "bills", schema.Bill, hooks.Bill(st))
	transactions := handlers.NewResource(docs, "transactions", schema.Transaction, nil)
	addresses := handlers.NewResource(docs, "addresses", schema.Address, nil)
	cartItems := handlers.NewResource(docs, "cart-items", schema.CartItem, nil)
	reviews := handlers.NewResource(docs, "reviews", schema.Review, nil)
	productImages := handlers.NewProductImages(docs, images, zlog)

	// Product catalog is browsable without a token.
	app.Get("/api/products", products.List)

	admin := middleware.RequireRole(auth.RoleAdmin)
	sellerOrAdmin := middleware.RequireRole(auth.RoleAdmin, auth.RoleSeller)

	// Role probes for clients that check their access level after login.
	authGroup.Get("/admin", middleware.Auth(apiVerifier), admin, welcome("Welcome Admin"))
	authGroup.Get("/seller", middleware.Auth(apiVerifier), middleware.RequireRole(auth.RoleSeller), welcome("Welcome Seller"))
	authGroup.Get("/customer", middleware.Auth(apiVerifier), middleware.RequireRole(auth.RoleCustomer), welcome("Welcome Customer"))

	api := app.Group("/api", middleware.Auth(apiVerifier))

	api.Get("/users", admin, users.List)
	api.Post("/users", admin, users.Create)
	api.Get("/users/:id", users.Find)
	api.Put("/users/:id", users.Update)
	api.Delete("/users/:id", admin, users.Delete)

	api.Post("/products", sellerOrAdmin, products.Create)
	api.Get("/products/:id", products.Find)
	api.Put("/products/:id", sellerOrAdmin, products.Update)
	api.Delete("/products/:id", admin, products.Delete)
	api.Post("/products/:id/image", sellerOrAdmin, productImages.Upload)

	api.Get("/categories", categories.List)
	api.Post("/categories", sellerOrAdmin, categories.Create)
	api.Get("/categories/:id", categories.Find)
	api.Put("/categories/:id", sellerOrAdmin, categories.Update)
	api.Delete("/categories/:id", admin, categories.Delete)

	api.Get("/orders", orders.List)
	api.Post("/orders", orders.Create)
	api.Get("/orders/:id", orders.Find)
	api.Put("/orders/:id", orders.Update)
	api.Delete("/orders/:id", admin, orders.Delete)

	api.Get("/bills", bills.List)
	api.Post("/bills", admin, bills.Create)
	api.Get("/bills/:id", bills.Find)
	api.Put("/bills/:id", admin, bills.Update)
	api.Delete("/bills/:id", admin, bills.Delete)

	api.Get("/transactions", transactions.List)
	api.Post("/transactions", admin, transactions.Create)
	api.Get("/transactions/:id", transactions.Find)
	api.Put("/transactions/:id", admin, transactions.Update)
	api.Delete("/transactions/:id", admin, transactions.Delete)

	api.Get("/addresses", addresses.List)
	api.Post("/addresses", addresses.Create)
	api.Get("/addresses/:id", addresses.Find)
	api.Put("/addresses/:id", addresses.Update)
	api.Delete("/addresses/:id", admin, addresses.Delete)

	api.Get("/cart-items", cartItems.List)
	api.Post("/cart-items", cartItems.Create)
	api.Get("/cart-items/:id", cartItems.Find)
	api.Put("/cart-items/:id", cartItems.Update)
	api.Delete("/cart-items/:id", admin, cartItems.Delete)

	api.Get("/reviews", reviews.List)
	api.Post("/reviews", reviews.Create)
	api.Get("/reviews/:id", reviews.Find)
	api.Put("/reviews/:id", reviews.Update)
	api.Delete("/reviews/:id", admin, reviews.Delete)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}

func welcome(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": message})
	}
}
