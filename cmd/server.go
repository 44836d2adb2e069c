package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"jukebox/config"
	"jukebox/handlers"
	"jukebox/middleware"
	"jukebox/services"
	"jukebox/websocket"

	"github.com/gin-gonic/gin"
)

// StartWebServer prepares the content roots and serves until SIGINT or SIGTERM
func StartWebServer(cfg *config.Config) {
	gin.SetMode(cfg.GinMode)

	PrepareRoots(services.NewAssetSeeder(cfg.PublicDir, cfg.AudioDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	hub := websocket.NewHub()
	go hub.Run(ctx)

	index := services.NewAudioIndex(cfg.AudioDir, cfg.ScanWorkers)

	watcher := services.NewLibraryWatcher(index, hub, cfg.WatchInterval)
	go watcher.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: NewRouter(cfg, index, hub),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running at http://localhost:%d", cfg.Port)

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// PrepareRoots creates the content roots and seeds default assets. Failures
// are logged and never stop the server from starting.
func PrepareRoots(seeder *services.AssetSeeder) {
	if err := seeder.EnsureRoots(); err != nil {
		log.Printf("Error creating directories: %v", err)
	}

	written, err := seeder.Seed()
	if err != nil {
		log.Printf("Error seeding default assets: %v", err)
	}
	if len(written) > 0 {
		log.Printf("Seeded default assets: %v", written)
	}
}

// NewRouter builds the engine with middleware and every route
func NewRouter(cfg *config.Config, index services.AudioIndex, hub websocket.Hub) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Security())

	fileHandler := handlers.NewFileHandler(index)
	assetHandler := handlers.NewAssetHandler(cfg.PublicDir)
	healthHandler := handlers.NewHealthHandler(cfg)
	feedHandler := handlers.NewFeedHandler(index, hub)

	setupRoutes(r, fileHandler, assetHandler, healthHandler, feedHandler)

	return r
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, fileHandler *handlers.FileHandler, assetHandler *handlers.AssetHandler, healthHandler *handlers.HealthHandler, feedHandler *handlers.FeedHandler) {
	r.GET("/health", healthHandler.HealthCheck)

	r.GET("/", assetHandler.Index)

	// Audio root
	r.GET(services.AudioRoutePrefix+"/*filepath", fileHandler.ServeAudio)
	r.HEAD(services.AudioRoutePrefix+"/*filepath", fileHandler.ServeAudio)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)
		apiGroup.GET("/audio-files", fileHandler.ListAudioFiles)
		apiGroup.GET("/ws/audio-files", feedHandler.Subscribe)
	}

	// Everything else comes from the public root
	r.NoRoute(assetHandler.Serve)
}
