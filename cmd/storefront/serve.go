package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frameart/storefront/internal/api/handlers"
	"github.com/frameart/storefront/internal/api/middleware"
	"github.com/frameart/storefront/internal/cache"
	"github.com/frameart/storefront/internal/catalog"
	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/events"
	"github.com/frameart/storefront/internal/health"
	"github.com/frameart/storefront/internal/identity"
	"github.com/frameart/storefront/internal/localstore"
	"github.com/frameart/storefront/internal/metrics"
	repository "github.com/frameart/storefront/internal/repositories"
	service "github.com/frameart/storefront/internal/services"
	"github.com/frameart/storefront/internal/session"
	"github.com/frameart/storefront/internal/tracing"
	"github.com/frameart/storefront/pkg/sendgrid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts.cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, &cfg.Otel)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	var db *sql.DB

	if cfg.Store.Backend == config.StoreBackendPostgres {
		repo, err := repository.NewPostgres(&cfg.Database)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))

			return err
		}

		defer func() {
			if err := repo.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}()

		db = repo.DB
	}

	stores, closeStores, err := repository.NewStores(ctx, &cfg.Store, db)
	if err != nil {
		slog.Error("❌ Error opening the document store", slog.String("backend", cfg.Store.Backend), slog.String("error", err.Error()))

		return err
	}
	defer closeStores()

	// Redis setup
	redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))

		return err
	}
	defer redisClient.Close()

	publisher, err := events.NewPublisher(&cfg.Kafka)
	if err != nil {
		slog.Error("❌ Error connecting to Kafka", slog.String("error", err.Error()))

		return err
	}
	defer publisher.Close()

	provider, err := newIdentityProvider(ctx, cfg, stores, redisClient)
	if err != nil {
		slog.Error("❌ Error initializing the identity provider", slog.String("error", err.Error()))

		return err
	}

	policy, err := service.ParseMergePolicy(cfg.Cart.MergePolicy)
	if err != nil {
		return err
	}

	var mailer sendgrid.EmailService
	if cfg.Sendgrid.APIKey != "" {
		mailer = sendgrid.NewEmailService(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromEmail, cfg.Sendgrid.FromName)
	} else {
		slog.Info("No SendGrid API key configured, order receipts are disabled")
	}

	galleryCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	galleryService := service.NewGalleryService(stores.Artworks, catalog.NewUnsplashClient(&cfg.Catalog), galleryCache, cfg.Cache.DefaultTTL)
	publicationService := service.NewPublicationService(stores.Profiles, stores.Artworks, stores.FavoritesIndex, stores.CartIndex, publisher)
	accountService := service.NewAccountService(provider, stores.Profiles)
	checkoutService := service.NewCheckoutService(stores.Profiles, publisher, mailer)

	localStores := newLocalStoreFactory(cfg, redisClient)

	registry := session.NewRegistry(func(id string) *session.Session {
		local := localStores(id)

		return session.New(
			id,
			local,
			service.NewCartEngine(stores.Profiles, local, policy),
			service.NewFavoritesEngine(stores.Profiles, stores.Artworks),
		)
	}, cfg.Session.IdleTimeout)

	go registry.Run(ctx)

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("version", health.Version),
		slog.String("store", cfg.Store.Backend),
		slog.String("merge_policy", cfg.Cart.MergePolicy),
	)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Firestore: stores.Firestore})
	if err != nil {
		return fmt.Errorf("health checks: %w", err)
	}

	sessionHandler := handlers.NewSessionHandler()
	accountHandler := handlers.NewAccountHandler(accountService)
	cartHandler := handlers.NewCartHandler()
	favoritesHandler := handlers.NewFavoritesHandler()
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	artworkHandler := handlers.NewArtworkHandler(publicationService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)

	// Session-scoped routes
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/v1/session", sessionHandler.Current())
	apiMux.HandleFunc("POST /api/v1/session/guest", sessionHandler.ContinueAsGuest())
	apiMux.HandleFunc("POST /api/v1/auth/signup", accountHandler.SignUp())
	apiMux.HandleFunc("POST /api/v1/auth/login", accountHandler.Login())
	apiMux.HandleFunc("POST /api/v1/auth/logout", accountHandler.Logout())
	apiMux.HandleFunc("GET /api/v1/profile", accountHandler.Profile())
	apiMux.HandleFunc("PATCH /api/v1/profile", accountHandler.UpdateProfile())
	apiMux.HandleFunc("POST /api/v1/profile/artist", accountHandler.BecomeArtist())
	apiMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	apiMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	apiMux.HandleFunc("PATCH /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	apiMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	apiMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	apiMux.HandleFunc("GET /api/v1/favorites", favoritesHandler.ListFavorites())
	apiMux.HandleFunc("GET /api/v1/favorites/refresh", favoritesHandler.RefreshFavorites())
	apiMux.HandleFunc("POST /api/v1/favorites/toggle", favoritesHandler.ToggleFavorite())
	apiMux.HandleFunc("GET /api/v1/favorites/{id}", favoritesHandler.FavoriteStatus())
	apiMux.HandleFunc("GET /api/v1/gallery", galleryHandler.ListArtworks())
	apiMux.HandleFunc("GET /api/v1/gallery/{id}", galleryHandler.GetArtwork())
	apiMux.HandleFunc("GET /api/v1/artist/artworks", artworkHandler.ListArtworks())
	apiMux.HandleFunc("POST /api/v1/artist/artworks", artworkHandler.CreateArtwork())
	apiMux.HandleFunc("GET /api/v1/artist/artworks/{id}", artworkHandler.GetArtwork())
	apiMux.HandleFunc("PATCH /api/v1/artist/artworks/{id}", artworkHandler.UpdateArtwork())
	apiMux.HandleFunc("DELETE /api/v1/artist/artworks/{id}", artworkHandler.DeleteArtwork())
	apiMux.HandleFunc("POST /api/v1/artist/artworks/{id}/publish", artworkHandler.PublishArtwork())
	apiMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())

	sessionIDs := session.NewIDs(cfg.Security.JWTKey)
	sessionMiddleware := middleware.NewSessionMiddleware(registry, provider, sessionIDs, cfg.Session.CookieName, cfg.Session.SecureCookie)

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("/api/", sessionMiddleware.Handle(apiMux))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(apiRouter{root: routerMux, api: apiMux})(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	serverErr := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		slog.Error("❌ Failed to start server", slog.String("error", err.Error()))

		return err
	case <-ctx.Done():
	}

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))

		return err
	}

	slog.Info("✅ Server shut down gracefully. All connections closed.")

	return nil
}

func newIdentityProvider(ctx context.Context, cfg *config.Config, stores *repository.Stores, client *redis.Client) (identity.Provider, error) {
	switch cfg.Identity.Provider {
	case "firebase":
		authClient, err := identity.NewFirebaseAuthClient(ctx, &cfg.Store)
		if err != nil {
			return nil, err
		}

		return identity.NewFirebaseProvider(authClient, cfg.Identity), nil
	case "local":
		return identity.NewLocalProvider(
			stores.Documents,
			repository.NewRateLimitRepo(client, cfg.RateConfig),
			repository.NewTokenDenylist(client),
			cfg.Security,
		), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", cfg.Identity.Provider)
	}
}

func newLocalStoreFactory(cfg *config.Config, client *redis.Client) localstore.Factory {
	if cfg.Cache.LocalBackend == "memory" {
		return localstore.MemoryFactory()
	}

	return localstore.RedisFactory(client, cfg.Cache.GuestTTL)
}

// apiRouter resolves route patterns through the inner api mux so metrics
// are labelled with "/api/v1/cart/items/{id}" rather than "/api/".
type apiRouter struct {
	root *http.ServeMux
	api  *http.ServeMux
}

func (a apiRouter) Handler(r *http.Request) (http.Handler, string) {
	h, pattern := a.root.Handler(r)
	if pattern == "/api/" {
		return a.api.Handler(r)
	}

	return h, pattern
}
