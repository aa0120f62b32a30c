package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/admin"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/config"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/internal/container"
	"github.com/corricelli/NGSS-Dynamic-Data-Gem/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level), appConfig.Logging.Format)
	defer logger.Sync()

	if err := run(appConfig, logger); err != nil {
		logger.Error("%v", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(appConfig *config.Config, logger *internal.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		return err
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Init(ctx); err != nil {
		return err
	}

	gin.SetMode(appConfig.Server.GinMode)
	server, err := ui.NewServer(appContainer.Forms, ui.Options{
		AutoRedirect:    appConfig.Form.AutoRedirect,
		ShutdownTimeout: appConfig.Server.ShutdownTimeout,
	}, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx, net.JoinHostPort("", appConfig.Server.Port))
	})

	if appConfig.Profiling.Enabled {
		adminServer := admin.NewServer(admin.Info{
			CatalogSource:      appConfig.Catalog.Source,
			CatalogFingerprint: appContainer.Forms.Catalog().Fingerprint().String(),
			Phenomena:          appContainer.Forms.Catalog().IDs(),
			Endpoint:           appContainer.Forms.Endpoint(),
		}, logger)
		g.Go(func() error {
			return adminServer.Serve(gctx, net.JoinHostPort("", appConfig.Profiling.Port))
		})
	}

	logger.Info("DDG form ready on port %s, submissions go to %s", appConfig.Server.Port, appContainer.Forms.Endpoint())
	return g.Wait()
}
