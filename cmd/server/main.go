package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"parts-storefront/internal/cache"
	"parts-storefront/internal/cart"
	"parts-storefront/internal/config"
	"parts-storefront/internal/data"
	"parts-storefront/internal/handler"
	"parts-storefront/internal/logger"
	"parts-storefront/internal/service"
	"parts-storefront/internal/siteurl"
	"parts-storefront/internal/view"
	"parts-storefront/web"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/sync/errgroup"
)

const purgeInterval = 10 * time.Minute

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, nil)

	// --- Backend API Client ---
	api := data.NewAPIClient(cfg.Backend, log)
	defer api.Close()
	log.Info(fmt.Sprintf("Using backend API at %s", cfg.Backend.BaseURL))

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}

	// --- Cache Initialization ---
	log.Info(fmt.Sprintf("Initializing %s cache...", cfg.Cache.Driver))
	docCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	cartStore := docCache
	if cartStore == nil {
		// Carts always need somewhere to live; fall back to a private SQLite file.
		cartStore, err = cache.NewSQLiteStore(cfg.Cache.FilePath)
		if err != nil {
			log.Fatal(err, "Failed to initialize cart store")
		}
	}
	defer cartStore.Close()

	// --- Dependency Injection and Handler Initialization ---
	resolver := siteurl.NewResolver(cfg.Site.URL)
	categoryService := service.NewCategoryService(data.NewCategoryRepository(api), log)
	productService := service.NewProductService(data.NewProductRepository(api))
	newsService := service.NewNewsService(data.NewNewsRepository(api))

	seoHandler := handler.NewSeoHandler(categoryService, productService, newsService, resolver, docCache, log)
	categoryHandler := handler.NewCategoryHandler(categoryService, viewService, log)
	cartHandler := handler.NewCartHandler(cart.NewService(cartStore), log)

	// --- Router Setup ---
	router := handler.NewRouter(seoHandler, categoryHandler, cartHandler, resolver, cfg.Auth.CookieName, log, viewService)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			err = server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if purger, ok := cartStore.(*cache.SQLiteStore); ok {
		g.Go(func() error {
			ticker := time.NewTicker(purgeInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					n, err := purger.PurgeExpired(ctx)
					if err != nil {
						log.Error(err, "Failed to purge expired cache items")
						continue
					}
					if n > 0 {
						log.Debug(fmt.Sprintf("Purged %d expired cache items", n))
					}
				}
			}
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Warn("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(err, "Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server exiting")
}
